package appkit

import (
	"runtime"

	"github.com/chazu/objcbridge/objc"
)

// Application is an owned reference to the shared NSApplication.
type Application struct {
	b   *objc.Bridge
	ref *objc.Ref
}

// ApplicationType is the type identity of NSApplication.
func ApplicationType(b *objc.Bridge) objc.Kind {
	return b.Kind("NSApplication")
}

// SharedApplication returns the process's application instance, creating
// it if needed.
func SharedApplication(b *objc.Bridge) (*Application, error) {
	h, err := objc.UnsafeSendClass[objc.Handle](b, "NSApplication", "sharedApplication")
	if err != nil {
		return nil, err
	}
	if h.IsNil() {
		return nil, objc.ErrNilHandle
	}
	return &Application{b: b, ref: b.RetainBorrowed(h)}, nil
}

// Handle borrows the application's handle. It is valid while a is
// reachable; see objc.Ref.Raw.
func (a *Application) Handle() objc.Handle { return a.ref.Raw() }

// Release gives up this reference; the shared instance lives on.
func (a *Application) Release() { a.ref.Release() }

// SetDelegate installs d. The application does not retain its delegate,
// so d must outlive its installation. A nil d clears the delegate.
func (a *Application) SetDelegate(d *Delegate) {
	h := objc.Nil
	if d != nil {
		h = d.Handle()
	}
	objc.SendRef[uintptr](a.b, a.ref, "setDelegate:", h)
	runtime.KeepAlive(d)
}

// Delegate borrows the installed delegate's handle.
func (a *Application) Delegate() objc.Handle {
	return objc.SendRef[objc.Handle](a.b, a.ref, "delegate")
}

// IsRunning reports whether the main event loop is running.
func (a *Application) IsRunning() (bool, error) {
	v, err := a.b.UnmarshalBool(objc.SendRef[objc.BOOL](a.b, a.ref, "isRunning"))
	return v.Bool(), err
}

// FinishLaunching activates the application, notifying the delegate that
// launching will and did finish.
func (a *Application) FinishLaunching() {
	objc.SendRef[uintptr](a.b, a.ref, "finishLaunching")
}
