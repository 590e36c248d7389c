package objcsim

import (
	"fmt"

	"github.com/chazu/objcbridge/objc"
)

// Notification names posted by the simulated NSApplication.
const (
	WillFinishLaunchingNotification = "NSApplicationWillFinishLaunchingNotification"
	DidFinishLaunchingNotification  = "NSApplicationDidFinishLaunchingNotification"
)

func (r *Runtime) registerAppKit() {
	responder := r.mustDefineClass("NSResponder", r.Root)
	app, err := r.OS.DeclareClass("NSApplication", responder)
	if err != nil {
		panic(fmt.Sprintf("objcsim: %v", err))
	}
	// ivars can only be added before registration
	if !r.OS.AddIvar(app, Ivar{Name: "delegate", Size: 8, Alignment: 3, Types: "@"}) {
		panic("objcsim: cannot add NSApplication.delegate")
	}
	r.OS.RegisterClass(app)

	r.define(app, true, "sharedApplication", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		if inst := r.app.Load(); inst != nil {
			return uintptr(inst.Handle)
		}
		h := r.alloc(self)
		inst := r.OS.GetInstance(h)
		if !r.app.CompareAndSwap(nil, inst) {
			r.release(h)
		}
		return uintptr(r.app.Load().Handle)
	})
	// delegates are not retained
	r.define(app, false, "setDelegate:", "v@:@", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		r.OS.GetInstance(self).SetIvar("delegate", args[0])
		return 0
	})
	r.define(app, false, "delegate", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return r.OS.GetInstance(self).Ivar("delegate")
	})
	r.define(app, false, "isRunning", "c@:", func(objc.Handle, objc.Selector, []uintptr) uintptr {
		return r.boolWord(false)
	})
	r.define(app, false, "finishLaunching", "v@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		r.postToDelegate(self, "applicationWillFinishLaunching:", WillFinishLaunchingNotification)
		r.postToDelegate(self, "applicationDidFinishLaunching:", DidFinishLaunchingNotification)
		return 0
	})
}

// postToDelegate sends sel to the application's delegate with a fresh
// notification, if the delegate implements it.
func (r *Runtime) postToDelegate(app objc.Handle, sel, name string) {
	delegate := objc.Handle(r.OS.GetInstance(app).Ivar("delegate"))
	if delegate.IsNil() || !r.Dispatcher.RespondsTo(delegate, r.Selectors.Intern(sel)) {
		return
	}
	nameStr := r.NewString(name)
	note := objc.Handle(r.send(r.alloc(r.classHandle("NSNotification")), "initWithName:object:userInfo:",
		uintptr(nameStr), uintptr(app), 0))
	r.release(nameStr)

	r.send(delegate, sel, uintptr(note))
	r.release(note)
}
