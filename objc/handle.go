package objc

import "fmt"

// ---------------------------------------------------------------------------
// Handles: opaque addresses owned by the foreign runtime
// ---------------------------------------------------------------------------

// Handle is an opaque, non-owning reference to a foreign object.
// Multiple handles may alias the same object. The zero Handle denotes
// absence and is never messaged.
type Handle uintptr

// Nil is the absent handle.
const Nil Handle = 0

// Word returns the raw address for passing across the dispatch boundary.
func (h Handle) Word() uintptr { return uintptr(h) }

// IsNil reports whether h is the absent handle.
func (h Handle) IsNil() bool { return h == Nil }

func (h Handle) String() string {
	if h == Nil {
		return "nil"
	}
	return fmt.Sprintf("0x%x", uintptr(h))
}

// Class is an opaque reference to a foreign class. Classes are never
// deallocated once registered, so a Class is trivially copyable.
type Class uintptr

// Word returns the raw class address.
func (c Class) Word() uintptr { return uintptr(c) }

// IsNil reports whether c is the absent class.
func (c Class) IsNil() bool { return c == 0 }

// Handle returns the class as a message target (classes are objects).
func (c Class) Handle() Handle { return Handle(c) }

func (c Class) String() string {
	if c == 0 {
		return "Nil"
	}
	return fmt.Sprintf("Class(0x%x)", uintptr(c))
}

// Selector is an opaque, runtime-registered method name.
type Selector uintptr

// Word returns the raw selector value.
func (s Selector) Word() uintptr { return uintptr(s) }

// IsNil reports whether s is the absent selector.
func (s Selector) IsNil() bool { return s == 0 }

// ---------------------------------------------------------------------------
// Marshaled arguments and results
// ---------------------------------------------------------------------------

// Arg is a value passed to a foreign method in a single general-purpose
// register.
type Arg interface {
	Word() uintptr
}

// Uint marshals an unsigned integer argument (NSUInteger, size_t).
type Uint uintptr

// Word implements Arg.
func (u Uint) Word() uintptr { return uintptr(u) }

// Int marshals a signed integer argument (NSInteger).
type Int int

// Word implements Arg.
func (i Int) Word() uintptr { return uintptr(i) }

// Word is the set of result types a message send can produce. Results
// are read from the integer return register and truncated to R.
type Word interface {
	~uintptr | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}
