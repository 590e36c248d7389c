package objcsim

import "testing"

func TestCHeapAllocFree(t *testing.T) {
	h := NewCHeap()
	p := h.Alloc(16)
	if p == 0 {
		t.Fatal("Alloc returned 0")
	}
	buf := h.View(p, 16)
	for i, c := range buf {
		if c != 0 {
			t.Fatalf("byte %d = %#x, want zeroed memory", i, c)
		}
	}
	copy(buf, "0123456789abcdef")

	if got := string(h.View(p+10, 6)); got != "abcdef" {
		t.Errorf("interior view = %q, want %q", got, "abcdef")
	}
	if got := h.Live(); got != 1 {
		t.Errorf("Live = %d, want 1", got)
	}
	h.Free(p)
	if got := h.Live(); got != 0 {
		t.Errorf("Live after Free = %d, want 0", got)
	}
}

func TestCHeapZeroSizedAlloc(t *testing.T) {
	h := NewCHeap()
	p := h.Alloc(0)
	if p == 0 {
		t.Fatal("Alloc(0) returned 0")
	}
	h.Free(p)
}

func TestCHeapInvalidAccess(t *testing.T) {
	h := NewCHeap()
	p := h.Alloc(8)
	defer h.Free(p)

	for _, tt := range []struct {
		name string
		fn   func()
		want string
	}{
		{"past the end", func() { h.View(p+4, 8) }, "invalid access"},
		{"unknown address", func() { h.View(1, 1) }, "invalid access"},
		{"free interior", func() { h.Free(p + 1) }, "unallocated"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			mustPanic(t, tt.want, tt.fn)
		})
	}
}

func TestCHeapDoubleFree(t *testing.T) {
	h := NewCHeap()
	p := h.Alloc(4)
	h.Free(p)
	mustPanic(t, "unallocated", func() { h.Free(p) })
}
