package foundation

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/chazu/objcbridge/objc"
)

// ErrStringInit indicates NSString rejected the bytes it was given.
var ErrStringInit = errors.New("foundation: NSString initialization failed")

// NSString is an owned reference to an immutable foreign string.
type NSString struct {
	b   *objc.Bridge
	ref *objc.Ref
}

// StringType is the type identity of NSString. Strings are acquired by
// copy, so a mutable string cannot change under the wrapper.
func StringType(b *objc.Bridge) objc.Kind {
	return b.Kind("NSString").Copying()
}

// NewString creates an NSString from a Go string.
func NewString(b *objc.Bridge, s string) (*NSString, error) {
	return NewStringWithBytes(b, []byte(s), NSUTF8StringEncoding)
}

// NewStringWithBytes creates an NSString by decoding data in enc. The
// bytes are copied.
func NewStringWithBytes(b *objc.Bridge, data []byte, enc NSStringEncoding) (*NSString, error) {
	obj, err := objc.UnsafeSendClass[objc.Handle](b, "NSString", "alloc")
	if err != nil {
		return nil, err
	}
	buf := b.CBytes(data)
	defer buf.Free()
	obj = objc.UnsafeSend[objc.Handle](b, obj, "initWithBytes:length:encoding:",
		buf, objc.Uint(buf.Len()), enc)
	if obj.IsNil() {
		return nil, fmt.Errorf("%w: %d bytes as encoding %d", ErrStringInit, len(data), enc)
	}
	return &NSString{b: b, ref: b.Adopt(obj)}, nil
}

// StringFromHandle converts a borrowed handle into an NSString holding its
// own copy.
func StringFromHandle(b *objc.Bridge, h objc.Handle) (*NSString, error) {
	ref, err := b.TryFrom(h, StringType(b))
	if err != nil {
		return nil, err
	}
	return &NSString{b: b, ref: ref}, nil
}

// Handle borrows the underlying handle. It is valid while s is reachable;
// see objc.Ref.Raw.
func (s *NSString) Handle() objc.Handle { return s.ref.Raw() }

// Release gives up the string.
func (s *NSString) Release() { s.ref.Release() }

// Equal reports whether s and o are the same foreign object.
func (s *NSString) Equal(o *NSString) bool { return s.ref.Equal(o.ref) }

// IsEqualToString compares contents.
func (s *NSString) IsEqualToString(o *NSString) (bool, error) {
	raw := objc.SendRef[objc.BOOL](s.b, s.ref, "isEqualToString:", o.Handle())
	runtime.KeepAlive(o)
	v, err := s.b.UnmarshalBool(raw)
	return v.Bool(), err
}

// Len returns the length in UTF-16 code units.
func (s *NSString) Len() int {
	return objc.SendRef[int](s.b, s.ref, "length")
}

// LengthOfBytes returns the byte length of the string in enc, or 0 if it
// cannot be represented.
func (s *NSString) LengthOfBytes(enc NSStringEncoding) int {
	return objc.SendRef[int](s.b, s.ref, "lengthOfBytesUsingEncoding:", enc)
}

// Bytes returns a copy of the UTF-8 contents.
func (s *NSString) Bytes() []byte {
	defer runtime.KeepAlive(s)
	// the C string lives as long as the string object
	p := objc.SendRef[uintptr](s.b, s.ref, "UTF8String")
	n := s.LengthOfBytes(NSUTF8StringEncoding)
	return s.b.GoBytes(p, uintptr(n))
}

func (s *NSString) String() string {
	return string(s.Bytes())
}
