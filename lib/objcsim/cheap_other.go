//go:build !linux && !darwin

package objcsim

// Without mmap, blocks come from the Go heap. The table keeps them
// reachable and the collector does not move them.
func mapBlock(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func unmapBlock([]byte) error { return nil }
