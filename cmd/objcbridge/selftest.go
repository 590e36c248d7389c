package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/objcbridge/appkit"
	"github.com/chazu/objcbridge/foundation"
	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

type selfTest struct {
	name string
	run  func(opts []objc.Option) error
}

var selfTests = []selfTest{
	{"boolean round trip", testBooleans},
	{"references release once", testReferences},
	{"concurrent class lookups", testCacheReads},
	{"class registration is stable", testRegistration},
	{"downcast mismatch", testDowncast},
	{"application delegate", testDelegate},
}

// runSelfTest always uses the simulated runtime: its counters are what
// make the checks observable.
func runSelfTest(opts []objc.Option, verbose bool) error {
	failed := 0
	for _, st := range selfTests {
		err := st.run(lenient(opts))
		switch {
		case err != nil:
			failed++
			fmt.Printf("FAIL %s: %v\n", st.name, err)
		case verbose:
			fmt.Printf("ok   %s\n", st.name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d self tests failed", failed, len(selfTests))
	}
	fmt.Printf("ok   %d self tests\n", len(selfTests))
	return nil
}

// lenient forces error returns so failures are reported, not raised.
func lenient(opts []objc.Option) []objc.Option {
	return append(append([]objc.Option{}, opts...), objc.WithStrict(false))
}

func testBooleans(opts []objc.Option) error {
	for _, bools := range [][2]objc.BOOL{{1, 0}, {0x7f, -3}} {
		b := objc.New(objcsim.New(objcsim.WithBools(bools[0], bools[1])), opts...)
		for _, v := range []objc.Boolean{true, false} {
			got, err := b.UnmarshalBool(b.MarshalBool(v))
			if err != nil {
				return err
			}
			if got != v {
				return fmt.Errorf("round trip of %v with sentinels %v gave %v", v, bools, got)
			}
		}
		if _, err := b.UnmarshalBool(bools[0] + bools[1] + 1); !errors.Is(err, objc.ErrUnmarshal) {
			return fmt.Errorf("invalid raw value: err = %v, want %v", err, objc.ErrUnmarshal)
		}
	}
	return nil
}

func testReferences(opts []objc.Option) error {
	const n = 64
	rt := objcsim.New()
	b := objc.New(rt, opts...)

	strs := make([]*foundation.NSString, n)
	handles := make([]objc.Handle, n)
	for i := range strs {
		s, err := foundation.NewString(b, fmt.Sprintf("string %d", i))
		if err != nil {
			return err
		}
		strs[i], handles[i] = s, s.Handle()
	}
	before := rt.SendCount("release")
	for _, i := range rand.Perm(n) {
		strs[i].Release()
		strs[i].Release()
	}
	if got := rt.SendCount("release") - before; got != n {
		return fmt.Errorf("releases = %d, want %d", got, n)
	}
	for _, h := range handles {
		if rt.IsLive(h) {
			return fmt.Errorf("string %s still live", h)
		}
	}
	return nil
}

func testCacheReads(opts []objc.Option) error {
	rt := objcsim.New()
	b := objc.New(rt, opts...)
	want, err := b.LookUpClass("NSString")
	if err != nil {
		return err
	}
	lookups := rt.Stats().ClassLookups

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			for range 100 {
				got, err := b.LookUpClass("NSString")
				if err != nil {
					return err
				}
				if got != want {
					return fmt.Errorf("LookUpClass = %s, want %s", got, want)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if extra := rt.Stats().ClassLookups - lookups; extra != 0 {
		return fmt.Errorf("cached class looked up %d more times", extra)
	}
	return nil
}

func testRegistration(opts []objc.Option) error {
	rt := objcsim.New()
	if _, err := rt.OS.DefineClass("Base", rt.Root); err != nil {
		return err
	}
	b := objc.New(rt, opts...)

	first, err := b.GetClass("Base", "Delegate", nil)
	if err != nil {
		return err
	}
	second, err := b.GetClass("Base", "Delegate", nil)
	if err != nil {
		return err
	}
	if first != second {
		return fmt.Errorf("GetClass returned %s then %s", first, second)
	}
	count := 0
	for _, name := range rt.ClassNames() {
		if strings.HasPrefix(name, "Base_Delegate_") {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("%d classes named Base_Delegate_*, want 1", count)
	}
	return nil
}

func testDowncast(opts []objc.Option) error {
	b := objc.New(objcsim.New(), opts...)
	note, err := foundation.NewNotification(b, "Ping", objc.Nil)
	if err != nil {
		return err
	}
	defer note.Release()

	_, err = foundation.StringFromHandle(b, note.Handle())
	var mismatch *objc.TypeMismatchError
	if !errors.As(err, &mismatch) {
		return fmt.Errorf("StringFromHandle(notification) err = %v, want type mismatch", err)
	}
	return nil
}

func testDelegate(opts []objc.Option) error {
	b := objc.New(objcsim.New(), opts...)
	app, err := appkit.SharedApplication(b)
	if err != nil {
		return err
	}
	defer app.Release()

	var got []string
	record := func(note *foundation.NSNotification) {
		name, err := note.Name()
		if err != nil {
			name = err.Error()
		}
		got = append(got, name)
	}
	d, err := appkit.NewDelegate(b, appkit.DelegateFuncs{WillFinish: record, DidFinish: record})
	if err != nil {
		return err
	}
	defer d.Release()

	app.SetDelegate(d)
	defer app.SetDelegate(nil)
	app.FinishLaunching()

	want := []string{objcsim.WillFinishLaunchingNotification, objcsim.DidFinishLaunchingNotification}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("notifications = %v, want %v", got, want)
	}
	return nil
}
