//go:build darwin && cgo

package objc

/*
#cgo LDFLAGS: -lobjc
#include <objc/runtime.h>
#include <objc/message.h>
#include <stdint.h>
#include <stdlib.h>

extern uintptr_t bridgeTrampoline0(uintptr_t, uintptr_t);
extern uintptr_t bridgeTrampoline1(uintptr_t, uintptr_t, uintptr_t);
extern uintptr_t bridgeTrampoline2(uintptr_t, uintptr_t, uintptr_t, uintptr_t);
extern uintptr_t bridgeTrampoline3(uintptr_t, uintptr_t, uintptr_t, uintptr_t, uintptr_t);

typedef uintptr_t W;

static W bridge_getClass(const char *name) { return (W)objc_getClass(name); }
static W bridge_metaClass(W cls) { return (W)object_getClass((id)cls); }
static const char *bridge_className(W cls) { return class_getName((Class)cls); }
static W bridge_superclass(W cls) { return (W)class_getSuperclass((Class)cls); }
static W bridge_objectClass(W obj) { return (W)object_getClass((id)obj); }
static W bridge_registerName(const char *name) { return (W)sel_registerName(name); }
static const char *bridge_selName(W sel) { return sel_getName((SEL)sel); }

static W bridge_send(W self, W op, int n, W *a) {
	switch (n) {
	case 0: return ((W (*)(id, SEL))objc_msgSend)((id)self, (SEL)op);
	case 1: return ((W (*)(id, SEL, W))objc_msgSend)((id)self, (SEL)op, a[0]);
	case 2: return ((W (*)(id, SEL, W, W))objc_msgSend)((id)self, (SEL)op, a[0], a[1]);
	case 3: return ((W (*)(id, SEL, W, W, W))objc_msgSend)((id)self, (SEL)op, a[0], a[1], a[2]);
	case 4: return ((W (*)(id, SEL, W, W, W, W))objc_msgSend)((id)self, (SEL)op, a[0], a[1], a[2], a[3]);
	case 5: return ((W (*)(id, SEL, W, W, W, W, W))objc_msgSend)((id)self, (SEL)op, a[0], a[1], a[2], a[3], a[4]);
	case 6: return ((W (*)(id, SEL, W, W, W, W, W, W))objc_msgSend)((id)self, (SEL)op, a[0], a[1], a[2], a[3], a[4], a[5]);
	}
	return 0;
}

static W bridge_allocateClassPair(W super, const char *name) {
	return (W)objc_allocateClassPair((Class)super, name, 0);
}

static int bridge_addMethod(W cls, W sel, int arity, const char *types) {
	IMP imp;
	switch (arity) {
	case 0: imp = (IMP)bridgeTrampoline0; break;
	case 1: imp = (IMP)bridgeTrampoline1; break;
	case 2: imp = (IMP)bridgeTrampoline2; break;
	case 3: imp = (IMP)bridgeTrampoline3; break;
	default: return 0;
	}
	return class_addMethod((Class)cls, (SEL)sel, imp, types) ? 1 : 0;
}

static int bridge_addIvar(W cls, const char *name, size_t size, uint8_t align, const char *types) {
	return class_addIvar((Class)cls, name, size, align, types) ? 1 : 0;
}

static void bridge_registerClassPair(W cls) { objc_registerClassPair((Class)cls); }

static W bridge_malloc(size_t n) { return (W)malloc(n); }
static void bridge_free(W p) { free((void *)p); }
static void *bridge_pointer(W p) { return (void *)p; }

static signed char bridge_yes(void) { return (signed char)YES; }
static signed char bridge_no(void) { return (signed char)NO; }
*/
import "C"

import (
	"fmt"
	"sync"
	"unsafe"
)

const maxSendArgs = 6

// libobjc is the Objective-C runtime of the host platform. Host methods
// are installed as one of a few fixed-arity C trampolines, which find the
// Go implementation by (class, selector).
type libobjc struct {
	mu      sync.RWMutex
	methods map[impKey]MethodFunc
}

type impKey struct {
	cls Class
	sel Selector
}

var platform = &libobjc{methods: make(map[impKey]MethodFunc)}

func platformRuntime() Runtime { return platform }

func (r *libobjc) GetClass(name string) Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Class(C.bridge_getClass(cname))
}

func (r *libobjc) MetaClass(cls Class) Class {
	return Class(C.bridge_metaClass(C.W(cls)))
}

func (r *libobjc) ClassName(cls Class) string {
	return C.GoString(C.bridge_className(C.W(cls)))
}

func (r *libobjc) Superclass(cls Class) Class {
	return Class(C.bridge_superclass(C.W(cls)))
}

func (r *libobjc) ObjectClass(h Handle) Class {
	return Class(C.bridge_objectClass(C.W(h)))
}

func (r *libobjc) RegisterName(name string) Selector {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Selector(C.bridge_registerName(cname))
}

func (r *libobjc) SelectorName(sel Selector) string {
	return C.GoString(C.bridge_selName(C.W(sel)))
}

func (r *libobjc) MsgSend(target Handle, sel Selector, args ...uintptr) uintptr {
	if len(args) > maxSendArgs {
		panic(fmt.Sprintf("objc: %d arguments exceed the %d supported by MsgSend", len(args), maxSendArgs))
	}
	var words [maxSendArgs]C.W
	for i, a := range args {
		words[i] = C.W(a)
	}
	return uintptr(C.bridge_send(C.W(target), C.W(sel), C.int(len(args)), &words[0]))
}

func (r *libobjc) AllocateClassPair(superclass Class, name string) Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Class(C.bridge_allocateClassPair(C.W(superclass), cname))
}

func (r *libobjc) ClassAddMethod(cls Class, sel Selector, fn MethodFunc, types string) bool {
	arity, err := MethodArity(types)
	if err != nil {
		log.Errorf("%s", err)
		return false
	}
	ctypes := C.CString(types)
	defer C.free(unsafe.Pointer(ctypes))

	r.mu.Lock()
	defer r.mu.Unlock()
	if C.bridge_addMethod(C.W(cls), C.W(sel), C.int(arity), ctypes) == 0 {
		return false
	}
	r.methods[impKey{cls: cls, sel: sel}] = fn
	return true
}

func (r *libobjc) ClassAddIvar(cls Class, name string, size uintptr, alignment uint8, types string) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	ctypes := C.CString(types)
	defer C.free(unsafe.Pointer(ctypes))
	return C.bridge_addIvar(C.W(cls), cname, C.size_t(size), C.uint8_t(alignment), ctypes) != 0
}

func (r *libobjc) RegisterClassPair(cls Class) {
	C.bridge_registerClassPair(C.W(cls))
}

func (r *libobjc) Bools() (yes, no BOOL) {
	return BOOL(C.bridge_yes()), BOOL(C.bridge_no())
}

func (r *libobjc) Malloc(n uintptr) uintptr {
	return uintptr(C.bridge_malloc(C.size_t(n)))
}

func (r *libobjc) Free(p uintptr) {
	C.bridge_free(C.W(p))
}

func (r *libobjc) Memory(p, n uintptr) []byte {
	return unsafe.Slice((*byte)(C.bridge_pointer(C.W(p))), n)
}

// dispatch runs the host method for sel on self's class or its nearest
// superclass that has one.
func (r *libobjc) dispatch(self Handle, sel Selector, args ...uintptr) uintptr {
	r.mu.RLock()
	var fn MethodFunc
	for cls := r.ObjectClass(self); !cls.IsNil() && fn == nil; cls = r.Superclass(cls) {
		fn = r.methods[impKey{cls: cls, sel: sel}]
	}
	r.mu.RUnlock()
	if fn == nil {
		panic(fmt.Sprintf("objc: no host method for %s on %s", r.SelectorName(sel), self))
	}
	return fn(self, sel, args)
}
