// Package appkit exposes the shared NSApplication and lets Go code act as
// its delegate through a subclass of NSObject synthesized at run time.
package appkit
