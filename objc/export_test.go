package objc

// PoisonCache panics inside a cache write, as a failing runtime call would.
func PoisonCache(c *ClassCache) error {
	return c.write(func(map[ClassKey]ClassData) {
		panic("injected failure")
	})
}
