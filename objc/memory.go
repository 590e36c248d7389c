package objc

import "fmt"

// ---------------------------------------------------------------------------
// Foreign memory
// ---------------------------------------------------------------------------

// CBuffer is a block of foreign memory, passed to methods by address the
// way C buffers are. Go memory never crosses the boundary as a raw word.
type CBuffer struct {
	rt   Runtime
	addr uintptr
	n    uintptr
}

// CBytes copies data into foreign memory. Free the buffer once the method
// that reads it has returned. An empty buffer has address 0.
func (b *Bridge) CBytes(data []byte) CBuffer {
	if len(data) == 0 {
		return CBuffer{rt: b.rt}
	}
	n := uintptr(len(data))
	p := b.rt.Malloc(n)
	if p == 0 {
		panic(fmt.Sprintf("objc: cannot allocate %d bytes of foreign memory", n))
	}
	copy(b.rt.Memory(p, n), data)
	return CBuffer{rt: b.rt, addr: p, n: n}
}

// GoBytes copies n bytes of foreign memory at p into Go memory.
func (b *Bridge) GoBytes(p, n uintptr) []byte {
	if p == 0 || n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, b.rt.Memory(p, n))
	return out
}

// Word implements Arg.
func (c CBuffer) Word() uintptr { return c.addr }

// Len returns the size of the buffer in bytes.
func (c CBuffer) Len() uintptr { return c.n }

// Free returns the buffer to the runtime.
func (c CBuffer) Free() {
	if c.addr != 0 {
		c.rt.Free(c.addr)
	}
}
