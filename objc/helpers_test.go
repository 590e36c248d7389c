package objc_test

import (
	"testing"

	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

func newBridge(t *testing.T, opts ...objc.Option) (*objc.Bridge, *objcsim.Runtime) {
	t.Helper()
	rt := objcsim.New()
	return objc.New(rt, append([]objc.Option{objc.WithStrict(false)}, opts...)...), rt
}

func newObject(t *testing.T, b *objc.Bridge, class string) objc.Handle {
	t.Helper()
	h, err := objc.UnsafeSendClass[objc.Handle](b, class, "new")
	if err != nil {
		t.Fatalf("[%s new]: %v", class, err)
	}
	return h
}

// expectPanic runs fn and returns the recovered value, failing if fn
// returns normally.
func expectPanic(t *testing.T, fn func()) (r any) {
	t.Helper()
	defer func() {
		r = recover()
		if r == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}
