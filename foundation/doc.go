// Package foundation wraps Foundation classes (NSString, NSNotification)
// on top of the objc bridging core.
package foundation
