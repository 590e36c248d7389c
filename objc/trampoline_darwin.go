//go:build darwin && cgo

package objc

/*
#include <stdint.h>
*/
import "C"

//export bridgeTrampoline0
func bridgeTrampoline0(self, cmd C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(platform.dispatch(Handle(self), Selector(cmd)))
}

//export bridgeTrampoline1
func bridgeTrampoline1(self, cmd, a0 C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(platform.dispatch(Handle(self), Selector(cmd), uintptr(a0)))
}

//export bridgeTrampoline2
func bridgeTrampoline2(self, cmd, a0, a1 C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(platform.dispatch(Handle(self), Selector(cmd), uintptr(a0), uintptr(a1)))
}

//export bridgeTrampoline3
func bridgeTrampoline3(self, cmd, a0, a1, a2 C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(platform.dispatch(Handle(self), Selector(cmd), uintptr(a0), uintptr(a1), uintptr(a2)))
}
