//go:build objcdebug

package objc

const defaultStrict = true
