package objc

import (
	"fmt"
	"sync"
)

// Bridge binds the bridging core to one foreign Runtime. It owns the class
// cache for that runtime and the error policy applied to type mismatches
// and registration failures.
//
// In strict mode (the debug policy) those failures panic with a diagnostic;
// otherwise they are returned as errors.
type Bridge struct {
	rt     Runtime
	cache  *ClassCache
	strict bool

	debugSuffix   string
	releaseSuffix string

	sel struct {
		retain        Selector
		release       Selector
		copy          Selector
		isKindOfClass Selector
	}
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithStrict selects the fail-fast (true) or error-returning (false) policy.
func WithStrict(strict bool) Option {
	return func(b *Bridge) { b.strict = strict }
}

// WithNameSuffixes overrides the suffixes used by GenerateClassName.
func WithNameSuffixes(debug, release string) Option {
	return func(b *Bridge) {
		if debug != "" {
			b.debugSuffix = debug
		}
		if release != "" {
			b.releaseSuffix = release
		}
	}
}

// Default name suffixes for generated class names.
const (
	DefaultDebugSuffix   = "objcbridge_debug"
	DefaultReleaseSuffix = "objcbridge"
)

// New creates a bridge over rt with its own class cache.
func New(rt Runtime, opts ...Option) *Bridge {
	b := &Bridge{
		rt:            rt,
		strict:        defaultStrict,
		debugSuffix:   DefaultDebugSuffix,
		releaseSuffix: DefaultReleaseSuffix,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.cache = NewClassCache(rt)

	b.sel.retain = rt.RegisterName("retain")
	b.sel.release = rt.RegisterName("release")
	b.sel.copy = rt.RegisterName("copy")
	b.sel.isKindOfClass = rt.RegisterName("isKindOfClass:")
	return b
}

// Runtime returns the underlying foreign runtime.
func (b *Bridge) Runtime() Runtime { return b.rt }

// Cache returns the bridge's class cache.
func (b *Bridge) Cache() *ClassCache { return b.cache }

// Strict reports whether the bridge uses the fail-fast policy.
func (b *Bridge) Strict() bool { return b.strict }

// Sel registers or looks up a selector by name.
func (b *Bridge) Sel(name string) Selector { return b.rt.RegisterName(name) }

// LookUpClass resolves a class by name through the class cache.
func (b *Bridge) LookUpClass(name string) (Class, error) {
	cls, ok := b.cache.Load(ClassKeyFor(name))
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return cls, nil
}

// ---------------------------------------------------------------------------
// Process-wide default bridge
// ---------------------------------------------------------------------------

var (
	defaultBridge *Bridge
	defaultOnce   sync.Once
)

// Init installs the process-wide bridge. Only the first call, made before
// any call to Default, has an effect; it reports whether it did.
func Init(rt Runtime, opts ...Option) bool {
	installed := false
	defaultOnce.Do(func() {
		defaultBridge = New(rt, opts...)
		installed = true
	})
	return installed
}

// Default returns the process-wide bridge, creating it over the platform
// runtime on first use. It panics with ErrNoRuntime when the platform has
// no runtime and Init was not called first.
func Default() *Bridge {
	defaultOnce.Do(func() {
		if rt := platformRuntime(); rt != nil {
			defaultBridge = New(rt)
		}
	})
	if defaultBridge == nil {
		panic(ErrNoRuntime)
	}
	return defaultBridge
}

// Platform returns the platform's native runtime, or nil where there is
// none.
func Platform() Runtime { return platformRuntime() }

// GetClass resolves or synthesizes a subclass through the default bridge.
func GetClass(superclass, name string, attach func(*ClassDecl)) (Class, error) {
	return Default().GetClass(superclass, name, attach)
}
