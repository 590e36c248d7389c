package objc

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Ref: owning reference to a foreign object
// ---------------------------------------------------------------------------

// Ref owns one retain count on a foreign object and gives it back exactly
// once. Create one with Bridge.Adopt for handles that already carry +1
// (results of alloc, new, copy and init chains) or Bridge.RetainBorrowed
// for handles the caller does not own.
//
// Release gives the count back; later calls are no-ops. A Ref that becomes
// unreachable without Release is released by a runtime cleanup, so no
// construction path leaks. A Ref is single-owner: share it across
// goroutines only with external synchronization.
type Ref struct {
	state   *refState
	cleanup runtime.Cleanup
}

// refState is kept apart from Ref so the cleanup does not keep the Ref
// reachable.
type refState struct {
	b        *Bridge
	h        Handle
	released atomic.Bool

	mu        sync.Mutex
	onRelease []func()
}

func (s *refState) release() bool {
	if s.h.IsNil() || !s.released.CompareAndSwap(false, true) {
		return false
	}
	s.mu.Lock()
	hooks := s.onRelease
	s.onRelease = nil
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	UnsafeSendSel[uintptr](s.b, s.h, s.b.sel.release)
	return true
}

// Adopt takes ownership of a handle that already carries a +1 count.
// It does not retain.
func (b *Bridge) Adopt(h Handle) *Ref {
	return b.newRef(h)
}

// RetainBorrowed retains a borrowed handle and owns the new count.
func (b *Bridge) RetainBorrowed(h Handle) *Ref {
	if h.IsNil() {
		return b.newRef(Nil)
	}
	return b.newRef(UnsafeSendSel[Handle](b, h, b.sel.retain))
}

func (b *Bridge) newRef(h Handle) *Ref {
	r := &Ref{state: &refState{b: b, h: h}}
	if !h.IsNil() {
		r.cleanup = runtime.AddCleanup(r, func(s *refState) { s.release() }, r.state)
	}
	return r
}

// Raw borrows the handle for a message send. The result must not outlive
// r or be released by the caller. It is Nil once r is released.
//
// The handle is valid only while r is reachable: once r is collected its
// cleanup releases the object. Send through SendRef, or call
// runtime.KeepAlive(r) after the last use of the handle.
func (r *Ref) Raw() Handle {
	if r == nil || r.state.released.Load() {
		return Nil
	}
	return r.state.h
}

// Handle returns the referenced address regardless of release state; use
// it for identity, never for messaging.
func (r *Ref) Handle() Handle {
	if r == nil {
		return Nil
	}
	return r.state.h
}

// IsNil reports whether r refers to no object.
func (r *Ref) IsNil() bool { return r.Handle().IsNil() }

// Release gives the owned count back to the runtime. Only the first call
// sends release; nil references never do.
func (r *Ref) Release() {
	if r == nil {
		return
	}
	if r.state.release() {
		r.cleanup.Stop()
	}
}

// OnRelease registers fn to run just before the owned count is given back,
// whether by Release or by the cleanup of an unreachable Ref. Detach does
// not run it. fn must not refer to r, or r can never be collected.
func (r *Ref) OnRelease(fn func()) {
	if r == nil || r.state.h.IsNil() {
		return
	}
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.onRelease = append(r.state.onRelease, fn)
}

// Released reports whether Release (or Detach) has run.
func (r *Ref) Released() bool {
	return r == nil || r.state.released.Load()
}

// Detach transfers the owned count to the caller without releasing it.
// The Ref is spent afterwards.
func (r *Ref) Detach() Handle {
	if r == nil || r.state.h.IsNil() || !r.state.released.CompareAndSwap(false, true) {
		return Nil
	}
	r.cleanup.Stop()
	return r.state.h
}

// Equal reports whether r and o reference the same foreign allocation.
func (r *Ref) Equal(o *Ref) bool {
	return r.Handle() == o.Handle()
}

func (r *Ref) String() string { return r.Handle().String() }
