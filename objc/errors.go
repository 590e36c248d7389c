package objc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmarshal indicates a raw BOOL matched neither sentinel.
	ErrUnmarshal = errors.New("objc: value is neither YES nor NO")

	// ErrTypeMismatch indicates a handle is not an instance of the expected class.
	ErrTypeMismatch = errors.New("objc: type mismatch")

	// ErrSuperclassNotFound indicates the runtime does not know a requested superclass.
	ErrSuperclassNotFound = errors.New("objc: superclass not found")

	// ErrDeclarationFailed indicates the runtime rejected a class declaration.
	ErrDeclarationFailed = errors.New("objc: class declaration failed")

	// ErrCacheUnavailable indicates the class cache was poisoned by a panic.
	ErrCacheUnavailable = errors.New("objc: class cache unavailable")

	// ErrClassNotFound indicates a class lookup by name failed.
	ErrClassNotFound = errors.New("objc: class not found")

	// ErrNilHandle indicates a nil handle where an object was required.
	ErrNilHandle = errors.New("objc: nil handle")

	// ErrNoRuntime indicates no foreign runtime is available on this platform.
	ErrNoRuntime = errors.New("objc: no foreign runtime available; call objc.Init")
)

// TypeMismatchError describes a failed downcast.
type TypeMismatchError struct {
	Expected string
	Handle   Handle
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("objc: object %s is not a %s", e.Handle, e.Expected)
}

// Unwrap lets errors.Is match ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// fail applies the bridge's error policy: strict bridges abort with the
// error as panic value, lenient bridges return it.
func (b *Bridge) fail(err error) error {
	if b.strict {
		panic(err)
	}
	log.Warningf("%s", err)
	return err
}
