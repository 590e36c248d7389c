package objc

import "fmt"

// ---------------------------------------------------------------------------
// Type identity and downcasting
// ---------------------------------------------------------------------------

// IsType is implemented by each wrapped foreign type to gain safe
// downcasting through TryFrom.
type IsType interface {
	// ClassName names the expected foreign class, for diagnostics.
	ClassName() string
	// IsType reports whether h is an instance of the class or a subclass.
	IsType(h Handle) (bool, error)
}

// Copier is implemented by types whose instances are acquired with copy
// rather than retain (immutable value classes such as strings).
type Copier interface {
	CopiesOnAcquire() bool
}

// Kind is the standard IsType implementation: an isKindOfClass: check
// against a class resolved through the class cache.
type Kind struct {
	b       *Bridge
	name    string
	copying bool
}

// Kind returns the type identity of the named class.
func (b *Bridge) Kind(className string) Kind {
	return Kind{b: b, name: className}
}

// Copying returns k acquiring instances with copy.
func (k Kind) Copying() Kind {
	k.copying = true
	return k
}

// ClassName implements IsType.
func (k Kind) ClassName() string { return k.name }

// CopiesOnAcquire implements Copier.
func (k Kind) CopiesOnAcquire() bool { return k.copying }

// IsType implements IsType.
func (k Kind) IsType(h Handle) (bool, error) {
	if h.IsNil() {
		return false, ErrNilHandle
	}
	cls, ok := k.b.cache.Load(ClassKeyFor(k.name))
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrClassNotFound, k.name)
	}
	raw := UnsafeSendSel[BOOL](k.b, h, k.b.sel.isKindOfClass, cls)
	is, err := k.b.UnmarshalBool(raw)
	if err != nil {
		return false, err
	}
	return is.Bool(), nil
}

// TryFrom converts a raw handle into an owned reference of type t. The
// result holds its own count (copy or retain), independent of the
// caller's handle.
//
// A handle of the wrong class yields a *TypeMismatchError; strict bridges
// panic with it instead.
func (b *Bridge) TryFrom(h Handle, t IsType) (*Ref, error) {
	ok, err := t.IsType(h)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, b.fail(&TypeMismatchError{Expected: t.ClassName(), Handle: h})
	}
	acquire := b.sel.retain
	if c, isCopier := t.(Copier); isCopier && c.CopiesOnAcquire() {
		acquire = b.sel.copy
	}
	return b.Adopt(UnsafeSendSel[Handle](b, h, acquire)), nil
}
