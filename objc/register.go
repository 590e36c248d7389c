package objc

import (
	"fmt"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Dynamic class registration
// ---------------------------------------------------------------------------

// GetClass returns the subclass of superclass known by the logical name,
// declaring and registering it with the runtime on first use.
//
// The runtime sees a unique name of the form {superclass}_{name}_{uuid},
// since its class namespace is flat and process-wide; callers only ever
// use the logical pair, under which the class is cached. attach may add
// methods and ivars to the declaration before it is registered; it must
// not send messages.
//
// The steps are not atomic: two first-time calls racing for the same pair
// may both register a class, and the cache keeps the last one. Class
// registration is expected to happen during single-threaded setup.
func (b *Bridge) GetClass(superclass, name string, attach func(*ClassDecl)) (Class, error) {
	key := SubclassKey(name, superclass)
	if cls, ok := b.cache.Load(key); ok {
		return cls, nil
	}

	superCls, ok := b.cache.Load(ClassKeyFor(superclass))
	if !ok {
		return 0, b.fail(fmt.Errorf("%w: cannot register class %q: superclass %q did not load",
			ErrSuperclassNotFound, name, superclass))
	}

	unique := uniqueClassName(superclass, name)
	cls := b.rt.AllocateClassPair(superCls, unique)
	if cls.IsNil() {
		return 0, b.fail(fmt.Errorf("%w: cannot declare class %q as %q",
			ErrDeclarationFailed, name, unique))
	}

	decl := &ClassDecl{b: b, cls: cls, superclass: superCls, name: unique}
	if attach != nil {
		attach(decl)
	}
	cls = decl.register()

	if err := b.cache.Save(key, ClassData{Class: cls}); err != nil {
		return 0, fmt.Errorf("cannot cache class %q: %w", name, err)
	}
	log.Infof("registered class %s as %s", key, unique)
	return cls, nil
}

// GenerateClassName returns a fresh, process-unique class name for
// debugName. Strict bridges produce a readable
// {debugName}_{uuid}_{debugSuffix}; others {uuid}_{releaseSuffix}.
func (b *Bridge) GenerateClassName(debugName string) string {
	if b.strict {
		return fmt.Sprintf("%s_%s_%s", debugName, uuid.NewString(), b.debugSuffix)
	}
	return fmt.Sprintf("%s_%s", uuid.NewString(), b.releaseSuffix)
}

func uniqueClassName(superclass, name string) string {
	return superclass + "_" + name + "_" + uuid.NewString()
}
