package appkit

import "github.com/chazu/objcbridge/objc"

// IsBound reports whether a Go delegate is registered for h.
func IsBound(rt objc.Runtime, h objc.Handle) bool {
	_, ok := lookupDelegate(rt, h)
	return ok
}
