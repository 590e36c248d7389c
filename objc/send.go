package objc

import (
	"fmt"
	"runtime"
)

// UnsafeSend sends the selector named sel to target and converts the
// returned word to R.
//
// Nothing checks that args and R match the signature of the method that
// runs: a wrong shape is undefined behavior inside the foreign runtime.
// Each wrapper that calls UnsafeSend owns that obligation and proves it
// in its own tests.
//
// A send to a nil target returns the zero value of R without reaching the
// runtime, as the foreign runtime does for messages to nil.
func UnsafeSend[R Word](b *Bridge, target Handle, sel string, args ...Arg) R {
	if target.IsNil() {
		var zero R
		return zero
	}
	return UnsafeSendSel[R](b, target, b.rt.RegisterName(sel), args...)
}

// UnsafeSendSel is UnsafeSend with a pre-registered selector.
func UnsafeSendSel[R Word](b *Bridge, target Handle, sel Selector, args ...Arg) R {
	if target.IsNil() {
		var zero R
		return zero
	}
	words := make([]uintptr, len(args))
	for i, a := range args {
		if a != nil {
			words[i] = a.Word()
		}
	}
	return R(b.rt.MsgSend(target, sel, words...))
}

// SendRef is UnsafeSend through an owning reference. r stays reachable
// until the method returns, so its cleanup cannot release the object in
// the middle of the message. A released r behaves as nil.
func SendRef[R Word](b *Bridge, r *Ref, sel string, args ...Arg) R {
	defer runtime.KeepAlive(r)
	return UnsafeSend[R](b, r.Raw(), sel, args...)
}

// UnsafeSendClass resolves className through the class cache and sends sel
// to the class object. A class the runtime does not know is an error.
func UnsafeSendClass[R Word](b *Bridge, className, sel string, args ...Arg) (R, error) {
	cls, ok := b.cache.Load(ClassKeyFor(className))
	if !ok {
		var zero R
		return zero, fmt.Errorf("%w: %s", ErrClassNotFound, className)
	}
	return UnsafeSend[R](b, cls.Handle(), sel, args...), nil
}
