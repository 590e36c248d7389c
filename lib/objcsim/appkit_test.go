package objcsim

import (
	"testing"

	"github.com/chazu/objcbridge/objc"
)

func TestSharedApplicationIsSingleton(t *testing.T) {
	rt := New()
	shared := rt.RegisterName("sharedApplication")
	app := rt.GetClass("NSApplication").Handle()

	first := rt.MsgSend(app, shared)
	second := rt.MsgSend(app, shared)
	if first == 0 || first != second {
		t.Errorf("sharedApplication = %#x then %#x, want the same object", first, second)
	}
}

func TestFinishLaunchingNotifiesDelegate(t *testing.T) {
	rt := New()
	delegateClass, err := rt.OS.DefineClass("AppDelegate", rt.Root)
	if err != nil {
		t.Fatalf("DefineClass: %v", err)
	}

	var got []string
	record := func(_ objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		name := objc.Handle(rt.MsgSend(objc.Handle(args[0]), rt.RegisterName("name")))
		s, _ := rt.StringValue(name)
		got = append(got, s)
		return 0
	}
	rt.define(delegateClass, false, "applicationWillFinishLaunching:", "v@:@", record)
	rt.define(delegateClass, false, "applicationDidFinishLaunching:", "v@:@", record)

	app := objc.Handle(rt.MsgSend(rt.GetClass("NSApplication").Handle(), rt.RegisterName("sharedApplication")))
	delegate := objc.Handle(rt.MsgSend(delegateClass.Handle, rt.RegisterName("new")))
	rt.MsgSend(app, rt.RegisterName("setDelegate:"), uintptr(delegate))

	if got := rt.RetainCount(delegate); got != 1 {
		t.Errorf("delegate retain count = %d, want 1 (delegates are not retained)", got)
	}

	live := rt.Stats().Live
	rt.MsgSend(app, rt.RegisterName("finishLaunching"))

	if len(got) != 2 || got[0] != WillFinishLaunchingNotification || got[1] != DidFinishLaunchingNotification {
		t.Errorf("notifications = %v", got)
	}
	if after := rt.Stats().Live; after != live {
		t.Errorf("live objects = %d after launching, want %d", after, live)
	}
}

func TestFinishLaunchingSkipsUnimplementedCallbacks(t *testing.T) {
	rt := New()
	app := objc.Handle(rt.MsgSend(rt.GetClass("NSApplication").Handle(), rt.RegisterName("sharedApplication")))

	// no delegate
	rt.MsgSend(app, rt.RegisterName("finishLaunching"))

	// a delegate that implements nothing
	plain := objc.Handle(rt.MsgSend(rt.Root.Handle, rt.RegisterName("new")))
	defer rt.release(plain)
	rt.MsgSend(app, rt.RegisterName("setDelegate:"), uintptr(plain))
	rt.MsgSend(app, rt.RegisterName("finishLaunching"))

	if got := objc.Handle(rt.MsgSend(app, rt.RegisterName("delegate"))); got != plain {
		t.Errorf("delegate = %s, want %s", got, plain)
	}
}
