package objcsim

import (
	"fmt"
	"sync"
	"unsafe"
)

// CHeap stands in for the C heap. Blocks are mapped outside the Go heap
// where the platform allows, and every address a method reads or returns
// is resolved against the block table, never dereferenced directly.
type CHeap struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
}

// NewCHeap creates an empty heap.
func NewCHeap() *CHeap {
	return &CHeap{blocks: make(map[uintptr][]byte)}
}

// Alloc returns the address of n zeroed bytes.
func (h *CHeap) Alloc(n uintptr) uintptr {
	if n == 0 {
		n = 1
	}
	block, err := mapBlock(int(n))
	if err != nil {
		panic(fmt.Sprintf("objcsim: malloc(%d): %v", n, err))
	}
	p := uintptr(unsafe.Pointer(&block[0]))

	h.mu.Lock()
	defer h.mu.Unlock()
	h.blocks[p] = block
	return p
}

// Free releases the block at p. Freeing anything else panics, like a
// double free.
func (h *CHeap) Free(p uintptr) {
	h.mu.Lock()
	block, ok := h.blocks[p]
	delete(h.blocks, p)
	h.mu.Unlock()

	if !ok {
		panic(fmt.Sprintf("objcsim: free of unallocated address %#x", p))
	}
	if err := unmapBlock(block); err != nil {
		log.Errorf("unmap %#x: %s", p, err)
	}
}

// View returns the n bytes at p, which may lie inside a block.
func (h *CHeap) View(p, n uintptr) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	if block, ok := h.blocks[p]; ok && n <= uintptr(len(block)) {
		return block[:n:n]
	}
	for base, block := range h.blocks {
		if p >= base && p-base+n <= uintptr(len(block)) {
			off := p - base
			return block[off : off+n : off+n]
		}
	}
	panic(fmt.Sprintf("objcsim: invalid access of %d bytes at %#x", n, p))
}

// Live returns the number of allocated blocks.
func (h *CHeap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}
