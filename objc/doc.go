// Package objc bridges Go to a reference-counted, message-dispatch object
// runtime such as the Objective-C runtime.
//
// This package contains:
//   - Opaque handles (objects, classes, selectors) and BOOL marshaling
//   - Owning references with exactly-once release
//   - Unchecked message dispatch (UnsafeSend)
//   - Type identity checks and safe downcasting (IsType, TryFrom)
//   - A process-wide class cache
//   - Dynamic subclass declaration and registration (GetClass)
//
// The foreign runtime itself sits behind the Runtime interface. On darwin
// with cgo enabled the platform runtime is libobjc; elsewhere a Runtime
// must be supplied with Init or New (see lib/objcsim).
package objc
