// Package objcsim provides an in-process, reference-counted,
// message-dispatch object runtime that implements objc.Runtime.
//
// It models the parts of the Objective-C runtime the bridge relies on:
// classes and metaclasses with single inheritance, selector interning,
// vtable dispatch, retain counts with deallocation, run-time class
// declaration, and a few Foundation and AppKit root classes. Messages to
// deallocated objects panic, so over-release shows up in tests.
package objcsim

import (
	"sync/atomic"

	"github.com/tliron/commonlog"

	"github.com/chazu/objcbridge/objc"
)

var log = commonlog.GetLogger("objcbridge.objcsim")

// Runtime is a simulated foreign runtime.
type Runtime struct {
	OS         *ObjectSpace
	Selectors  *SelectorTable
	Dispatcher *Dispatcher
	Heap       *CHeap

	// Root is NSObject.
	Root *Class

	yes, no objc.BOOL
	lookups atomic.Int64

	app atomic.Pointer[Instance]
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithBools sets the YES and NO sentinels. They must differ.
func WithBools(yes, no objc.BOOL) Option {
	return func(r *Runtime) {
		if yes == no {
			panic("objcsim: YES and NO must differ")
		}
		r.yes, r.no = yes, no
	}
}

// New creates a runtime with NSObject and the Foundation and AppKit
// classes installed.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		OS:        NewObjectSpace(),
		Selectors: NewSelectorTable(),
		Heap:      NewCHeap(),
		yes:       1,
		no:        0,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Dispatcher = NewDispatcher(r.OS, r.Selectors)

	r.Root = r.registerObjectClass()
	r.registerFoundation()
	r.registerAppKit()
	return r
}

var _ objc.Runtime = (*Runtime)(nil)

// GetClass implements objc.Runtime.
func (r *Runtime) GetClass(name string) objc.Class {
	r.lookups.Add(1)
	if c := r.OS.GetClass(name); c != nil {
		return objc.Class(c.Handle)
	}
	return 0
}

// MetaClass implements objc.Runtime.
func (r *Runtime) MetaClass(cls objc.Class) objc.Class {
	c := r.OS.ClassByHandle(cls.Handle())
	switch {
	case c == nil:
		return 0
	case c.IsMeta:
		return objc.Class(r.Root.Meta.Handle)
	default:
		return objc.Class(c.Meta.Handle)
	}
}

// ClassName implements objc.Runtime.
func (r *Runtime) ClassName(cls objc.Class) string {
	if c := r.OS.ClassByHandle(cls.Handle()); c != nil {
		return c.Name
	}
	return ""
}

// Superclass implements objc.Runtime.
func (r *Runtime) Superclass(cls objc.Class) objc.Class {
	if c := r.OS.ClassByHandle(cls.Handle()); c != nil && c.Superclass != nil {
		return objc.Class(c.Superclass.Handle)
	}
	return 0
}

// ObjectClass implements objc.Runtime.
func (r *Runtime) ObjectClass(h objc.Handle) objc.Class {
	if inst := r.OS.GetInstance(h); inst != nil {
		return objc.Class(inst.Class.Handle)
	}
	return r.MetaClass(objc.Class(h))
}

// RegisterName implements objc.Runtime.
func (r *Runtime) RegisterName(name string) objc.Selector {
	return r.Selectors.Intern(name)
}

// SelectorName implements objc.Runtime.
func (r *Runtime) SelectorName(sel objc.Selector) string {
	return r.Selectors.Name(sel)
}

// MsgSend implements objc.Runtime.
func (r *Runtime) MsgSend(target objc.Handle, sel objc.Selector, args ...uintptr) uintptr {
	return r.Dispatcher.Send(target, sel, args)
}

// AllocateClassPair implements objc.Runtime.
func (r *Runtime) AllocateClassPair(superclass objc.Class, name string) objc.Class {
	superCls := r.OS.ClassByHandle(superclass.Handle())
	if superCls == nil || !superCls.Registered {
		log.Warningf("cannot declare %s: unknown superclass %s", name, superclass)
		return 0
	}
	class, err := r.OS.DeclareClass(name, superCls)
	if err != nil {
		log.Warningf("cannot declare %s: %s", name, err)
		return 0
	}
	return objc.Class(class.Handle)
}

// ClassAddMethod implements objc.Runtime.
func (r *Runtime) ClassAddMethod(cls objc.Class, sel objc.Selector, fn objc.MethodFunc, types string) bool {
	c := r.OS.ClassByHandle(cls.Handle())
	if c == nil || fn == nil {
		return false
	}
	if _, err := objc.MethodArity(types); err != nil {
		log.Warningf("%s", err)
		return false
	}
	return r.OS.AddMethod(c, &Method{
		Selector: sel,
		Name:     r.Selectors.Name(sel),
		Types:    types,
		Impl:     fn,
	})
}

// ClassAddIvar implements objc.Runtime.
func (r *Runtime) ClassAddIvar(cls objc.Class, name string, size uintptr, alignment uint8, types string) bool {
	c := r.OS.ClassByHandle(cls.Handle())
	if c == nil {
		return false
	}
	return r.OS.AddIvar(c, Ivar{Name: name, Size: size, Alignment: alignment, Types: types})
}

// RegisterClassPair implements objc.Runtime.
func (r *Runtime) RegisterClassPair(cls objc.Class) {
	if c := r.OS.ClassByHandle(cls.Handle()); c != nil && !c.IsMeta {
		r.OS.RegisterClass(c)
		log.Debugf("registered class %s", c.Name)
	}
}

// Bools implements objc.Runtime.
func (r *Runtime) Bools() (yes, no objc.BOOL) {
	return r.yes, r.no
}

// Malloc implements objc.Runtime.
func (r *Runtime) Malloc(n uintptr) uintptr {
	return r.Heap.Alloc(n)
}

// Free implements objc.Runtime.
func (r *Runtime) Free(p uintptr) {
	r.Heap.Free(p)
}

// Memory implements objc.Runtime.
func (r *Runtime) Memory(p, n uintptr) []byte {
	if n == 0 {
		return nil
	}
	return r.Heap.View(p, n)
}

// ---------------------------------------------------------------------------
// Instrumentation
// ---------------------------------------------------------------------------

// Stats summarizes runtime activity.
type Stats struct {
	ClassLookups int64
	Sends        int64
	Allocs       int64
	Deallocs     int64
	Live         int
	Classes      int
}

// Stats returns a snapshot of the runtime's counters.
func (r *Runtime) Stats() Stats {
	r.OS.mu.RLock()
	allocs, deallocs := r.OS.allocs, r.OS.deallocs
	r.OS.mu.RUnlock()
	return Stats{
		ClassLookups: r.lookups.Load(),
		Sends:        r.Dispatcher.TotalSends(),
		Allocs:       allocs,
		Deallocs:     deallocs,
		Live:         r.OS.InstanceCount(),
		Classes:      r.OS.ClassCount(),
	}
}

// SendCount returns how many times the named selector has been sent.
func (r *Runtime) SendCount(sel string) int {
	s := r.Selectors.Lookup(sel)
	if s == 0 {
		return 0
	}
	return r.Dispatcher.SendCount(s)
}

// RetainCount returns the retain count of a live object, or 0.
func (r *Runtime) RetainCount(h objc.Handle) int {
	return r.OS.RetainCountOf(h)
}

// IsLive reports whether h is a live instance.
func (r *Runtime) IsLive(h objc.Handle) bool {
	return r.OS.GetInstance(h) != nil
}

// ClassNames returns the names of all registered classes.
func (r *Runtime) ClassNames() []string {
	return r.OS.ClassNames()
}

func (r *Runtime) boolWord(v bool) uintptr {
	if v {
		return r.yes.Word()
	}
	return r.no.Word()
}
