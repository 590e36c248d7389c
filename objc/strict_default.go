//go:build !objcdebug

package objc

// defaultStrict is false in release builds; build with -tags objcdebug
// to make new bridges fail fast.
const defaultStrict = false
