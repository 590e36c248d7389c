package appkit_test

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/objcbridge/appkit"
	"github.com/chazu/objcbridge/foundation"
	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

type recorder struct {
	events []string
}

func (r *recorder) record(event string, note *foundation.NSNotification) {
	name, err := note.Name()
	if err != nil {
		name = err.Error()
	}
	r.events = append(r.events, event+" "+name)
}

func (r *recorder) WillFinishLaunching(note *foundation.NSNotification) { r.record("will", note) }
func (r *recorder) DidFinishLaunching(note *foundation.NSNotification)  { r.record("did", note) }

func TestSharedApplication(t *testing.T) {
	b := objc.New(objcsim.New())
	a, err := appkit.SharedApplication(b)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	c, err := appkit.SharedApplication(b)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Release()

	if a.Handle() != c.Handle() {
		t.Errorf("SharedApplication = %s then %s, want the same object", a.Handle(), c.Handle())
	}
	if ok, err := appkit.ApplicationType(b).IsType(a.Handle()); err != nil || !ok {
		t.Errorf("IsType(NSApplication) = %v, %v", ok, err)
	}
	if running, err := a.IsRunning(); err != nil || running {
		t.Errorf("IsRunning = %v, %v; want false", running, err)
	}
}

func TestDelegateReceivesLaunchNotifications(t *testing.T) {
	rt := objcsim.New()
	b := objc.New(rt)
	app, err := appkit.SharedApplication(b)
	if err != nil {
		t.Fatal(err)
	}
	defer app.Release()

	rec := &recorder{}
	d, err := appkit.NewDelegate(b, rec)
	if err != nil {
		t.Fatal(err)
	}
	app.SetDelegate(d)
	if got := app.Delegate(); got != d.Handle() {
		t.Errorf("Delegate = %s, want %s", got, d.Handle())
	}

	live := rt.Stats().Live
	app.FinishLaunching()

	want := []string{
		"will " + objcsim.WillFinishLaunchingNotification,
		"did " + objcsim.DidFinishLaunchingNotification,
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if got := rt.Stats().Live; got != live {
		t.Errorf("live objects = %d after launching, want %d", got, live)
	}

	h := d.Handle()
	app.SetDelegate(nil)
	d.Release()
	if rt.IsLive(h) {
		t.Error("delegate instance leaked")
	}
}

func TestDelegateClassIsRegisteredOnce(t *testing.T) {
	rt := objcsim.New()
	b := objc.New(rt)

	first, err := appkit.DelegateClass(b)
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		d, err := appkit.NewDelegate(b, appkit.DelegateFuncs{})
		if err != nil {
			t.Fatal(err)
		}
		d.Release()
	}
	again, _ := appkit.DelegateClass(b)
	if again != first {
		t.Errorf("DelegateClass = %s, want %s", again, first)
	}

	n := 0
	for _, name := range rt.ClassNames() {
		if strings.HasPrefix(name, "NSObject_"+appkit.DelegateClassName+"_") {
			n++
		}
	}
	if n != 1 {
		t.Errorf("%d delegate classes registered, want 1", n)
	}
}

func TestDelegatesAreIndependent(t *testing.T) {
	b := objc.New(objcsim.New())
	app, _ := appkit.SharedApplication(b)
	defer app.Release()

	var firstCalls, secondCalls int
	first, _ := appkit.NewDelegate(b, appkit.DelegateFuncs{DidFinish: func(*foundation.NSNotification) { firstCalls++ }})
	defer first.Release()
	second, _ := appkit.NewDelegate(b, appkit.DelegateFuncs{DidFinish: func(*foundation.NSNotification) { secondCalls++ }})
	defer second.Release()

	app.SetDelegate(second)
	app.FinishLaunching()
	app.SetDelegate(nil)

	if firstCalls != 0 || secondCalls != 1 {
		t.Errorf("calls = %d, %d; want 0, 1", firstCalls, secondCalls)
	}
}

func TestDelegatesAcrossRuntimes(t *testing.T) {
	// Handles are allocated identically in fresh runtimes, so the
	// delegate registry must not confuse them.
	b1 := objc.New(objcsim.New())
	b2 := objc.New(objcsim.New())

	var calls1, calls2 int
	d1, _ := appkit.NewDelegate(b1, appkit.DelegateFuncs{WillFinish: func(*foundation.NSNotification) { calls1++ }})
	defer d1.Release()
	d2, _ := appkit.NewDelegate(b2, appkit.DelegateFuncs{WillFinish: func(*foundation.NSNotification) { calls2++ }})
	defer d2.Release()

	app1, _ := appkit.SharedApplication(b1)
	defer app1.Release()
	app1.SetDelegate(d1)
	app1.FinishLaunching()
	app1.SetDelegate(nil)

	if calls1 != 1 || calls2 != 0 {
		t.Errorf("calls = %d, %d; want 1, 0", calls1, calls2)
	}
}

func TestReleaseUnbindsDelegate(t *testing.T) {
	rt := objcsim.New()
	b := objc.New(rt)
	d, err := appkit.NewDelegate(b, appkit.DelegateFuncs{})
	if err != nil {
		t.Fatal(err)
	}
	h := d.Handle()
	if !appkit.IsBound(rt, h) {
		t.Fatal("new delegate is not bound")
	}
	d.Release()
	if appkit.IsBound(rt, h) {
		t.Error("released delegate is still bound")
	}
	if rt.IsLive(h) {
		t.Error("released delegate is still live")
	}
}

func TestCollectedDelegateIsUnbound(t *testing.T) {
	rt := objcsim.New()
	b := objc.New(rt)
	var h objc.Handle
	func() {
		d, err := appkit.NewDelegate(b, appkit.DelegateFuncs{})
		if err != nil {
			t.Fatal(err)
		}
		h = d.Handle()
	}()

	deadline := time.Now().Add(5 * time.Second)
	for (appkit.IsBound(rt, h) || rt.IsLive(h)) && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if appkit.IsBound(rt, h) {
		t.Error("collected delegate is still bound")
	}
	if rt.IsLive(h) {
		t.Error("collected delegate was never released")
	}
}
