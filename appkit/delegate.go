package appkit

import (
	"sync"

	"github.com/chazu/objcbridge/foundation"
	"github.com/chazu/objcbridge/objc"
)

// DelegateClassName is the logical name of the delegate class. The
// runtime sees a unique name derived from it.
const DelegateClassName = "NSApplicationDelegate"

// Delegate method selectors and their type encoding.
const (
	WillFinishLaunchingSelector = "applicationWillFinishLaunching:"
	DidFinishLaunchingSelector  = "applicationDidFinishLaunching:"

	notificationMethodTypes = "v@:@"
)

// ApplicationDelegate receives application lifecycle notifications. The
// notification is only valid for the duration of the call.
type ApplicationDelegate interface {
	WillFinishLaunching(note *foundation.NSNotification)
	DidFinishLaunching(note *foundation.NSNotification)
}

// DelegateFuncs adapts plain functions to ApplicationDelegate. Nil fields
// ignore the notification.
type DelegateFuncs struct {
	WillFinish func(note *foundation.NSNotification)
	DidFinish  func(note *foundation.NSNotification)
}

// WillFinishLaunching implements ApplicationDelegate.
func (f DelegateFuncs) WillFinishLaunching(note *foundation.NSNotification) {
	if f.WillFinish != nil {
		f.WillFinish(note)
	}
}

// DidFinishLaunching implements ApplicationDelegate.
func (f DelegateFuncs) DidFinishLaunching(note *foundation.NSNotification) {
	if f.DidFinish != nil {
		f.DidFinish(note)
	}
}

// ---------------------------------------------------------------------------
// Registry of live delegate instances
// ---------------------------------------------------------------------------

// Handles are only unique within one runtime.
type delegateKey struct {
	rt objc.Runtime
	h  objc.Handle
}

var delegates = struct {
	mu sync.RWMutex
	m  map[delegateKey]ApplicationDelegate
}{m: make(map[delegateKey]ApplicationDelegate)}

func registerDelegate(rt objc.Runtime, h objc.Handle, d ApplicationDelegate) {
	delegates.mu.Lock()
	delegates.m[delegateKey{rt, h}] = d
	delegates.mu.Unlock()
}

func unregisterDelegate(rt objc.Runtime, h objc.Handle) {
	delegates.mu.Lock()
	delete(delegates.m, delegateKey{rt, h})
	delegates.mu.Unlock()
}

func lookupDelegate(rt objc.Runtime, h objc.Handle) (ApplicationDelegate, bool) {
	delegates.mu.RLock()
	defer delegates.mu.RUnlock()
	d, ok := delegates.m[delegateKey{rt, h}]
	return d, ok
}

// ---------------------------------------------------------------------------
// Delegate class
// ---------------------------------------------------------------------------

// DelegateClass returns the delegate class for b, registering it on first
// use.
func DelegateClass(b *objc.Bridge) (objc.Class, error) {
	return b.GetClass("NSObject", DelegateClassName, func(decl *objc.ClassDecl) {
		decl.AddMethod(WillFinishLaunchingSelector, notificationMethod(b, ApplicationDelegate.WillFinishLaunching), notificationMethodTypes)
		decl.AddMethod(DidFinishLaunchingSelector, notificationMethod(b, ApplicationDelegate.DidFinishLaunching), notificationMethodTypes)
	})
}

func notificationMethod(b *objc.Bridge, call func(ApplicationDelegate, *foundation.NSNotification)) objc.MethodFunc {
	return func(self objc.Handle, cmd objc.Selector, args []uintptr) uintptr {
		d, ok := lookupDelegate(b.Runtime(), self)
		if !ok {
			log.Warningf("%s sent to unbound delegate %s", b.Runtime().SelectorName(cmd), self)
			return 0
		}
		note, err := foundation.NotificationFromHandle(b, objc.Handle(args[0]))
		if err != nil {
			log.Errorf("%s: %s", b.Runtime().SelectorName(cmd), err)
			return 0
		}
		defer note.Release()
		call(d, note)
		return 0
	}
}

// Delegate is an owned instance of the delegate class bound to a Go
// ApplicationDelegate.
type Delegate struct {
	b   *objc.Bridge
	ref *objc.Ref
}

// NewDelegate creates a delegate instance forwarding to impl.
func NewDelegate(b *objc.Bridge, impl ApplicationDelegate) (*Delegate, error) {
	cls, err := DelegateClass(b)
	if err != nil {
		return nil, err
	}
	h := objc.UnsafeSend[objc.Handle](b, cls.Handle(), "new")
	if h.IsNil() {
		return nil, objc.ErrNilHandle
	}
	rt := b.Runtime()
	registerDelegate(rt, h, impl)
	ref := b.Adopt(h)
	ref.OnRelease(func() { unregisterDelegate(rt, h) })
	return &Delegate{b: b, ref: ref}, nil
}

// Handle borrows the delegate's handle. It is valid while d is reachable;
// see objc.Ref.Raw.
func (d *Delegate) Handle() objc.Handle { return d.ref.Raw() }

// Release unbinds impl and gives up the instance. An application still
// pointing at the delegate must be given another one first. A Delegate
// collected without Release is unbound the same way.
func (d *Delegate) Release() { d.ref.Release() }
