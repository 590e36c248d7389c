package objc

// MethodFunc is a host implementation of a foreign method. args holds the
// raw words following self and _cmd; the return word is handed back to
// the caller unchanged.
type MethodFunc func(self Handle, cmd Selector, args []uintptr) uintptr

// Runtime is the boundary to the foreign object runtime. Implementations
// map these calls one-to-one onto the runtime's C API (objc_getClass,
// sel_registerName, objc_msgSend, objc_allocateClassPair, ...).
//
// MsgSend is unchecked: the runtime does not verify argument or return
// shapes against the method it invokes. Callers go through UnsafeSend.
type Runtime interface {
	// GetClass returns the registered class with the given name, or 0.
	GetClass(name string) Class
	// MetaClass returns the class of a class object, where class methods live.
	MetaClass(cls Class) Class
	// ClassName returns the runtime name of cls.
	ClassName(cls Class) string
	// Superclass returns the superclass of cls, or 0 for a root class.
	Superclass(cls Class) Class
	// ObjectClass returns the runtime class of an object.
	ObjectClass(h Handle) Class

	// RegisterName registers (or looks up) a selector.
	RegisterName(name string) Selector
	// SelectorName returns the name of a registered selector.
	SelectorName(sel Selector) string

	// MsgSend sends sel to target with the given argument words.
	MsgSend(target Handle, sel Selector, args ...uintptr) uintptr

	// AllocateClassPair begins a class declaration. It returns 0 if the
	// runtime rejects the declaration (for instance, the name is taken).
	AllocateClassPair(superclass Class, name string) Class
	// ClassAddMethod attaches a host method to a class under declaration.
	ClassAddMethod(cls Class, sel Selector, fn MethodFunc, types string) bool
	// ClassAddIvar adds an instance variable to a class under declaration.
	ClassAddIvar(cls Class, name string, size uintptr, alignment uint8, types string) bool
	// RegisterClassPair finalizes a declaration, making the class usable.
	RegisterClassPair(cls Class)

	// Bools returns the runtime's YES and NO sentinels.
	Bools() (yes, no BOOL)

	// Malloc allocates n bytes of foreign memory and returns its address.
	Malloc(n uintptr) uintptr
	// Free returns memory obtained from Malloc.
	Free(p uintptr)
	// Memory views n bytes of foreign memory at p: a Malloc block or a
	// buffer a method returned, such as a C string.
	Memory(p, n uintptr) []byte
}
