package objc

import "fmt"

// BOOL is the foreign runtime's raw boolean. Its two valid values are the
// sentinels reported by Runtime.Bools; no bit pattern is assumed.
type BOOL int8

// Word implements Arg.
func (b BOOL) Word() uintptr { return uintptr(uint8(b)) }

// Boolean is a host boolean that marshals to and from BOOL.
type Boolean bool

// Bool returns the host value.
func (b Boolean) Bool() bool { return bool(b) }

// Not negates the host value. The result must be marshaled again with
// MarshalBool before it is handed back to the runtime.
func (b Boolean) Not() Boolean { return !b }

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// UnmarshalBool converts a raw BOOL into a Boolean. Values matching
// neither sentinel fail with ErrUnmarshal.
func (b *Bridge) UnmarshalBool(raw BOOL) (Boolean, error) {
	yes, no := b.rt.Bools()
	switch raw {
	case yes:
		return true, nil
	case no:
		return false, nil
	}
	return false, fmt.Errorf("%w: raw value 0x%02x", ErrUnmarshal, uint8(raw))
}

// MarshalBool converts a Boolean into the runtime's sentinel. It cannot fail.
func (b *Bridge) MarshalBool(v Boolean) BOOL {
	yes, no := b.rt.Bools()
	if v {
		return yes
	}
	return no
}
