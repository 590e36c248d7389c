//go:build !darwin || !cgo

package objc

// platformRuntime reports that this platform has no Objective-C runtime.
func platformRuntime() Runtime { return nil }
