package objcsim

import (
	"fmt"

	"github.com/chazu/objcbridge/objc"
)

// define installs a built-in method. Class-side methods go on the metaclass.
func (r *Runtime) define(class *Class, classSide bool, name, types string, fn objc.MethodFunc) {
	target := class
	if classSide {
		target = class.Meta
	}
	m := &Method{Selector: r.Selectors.Intern(name), Name: name, Types: types, Impl: fn}
	if !r.OS.AddMethod(target, m) {
		panic(fmt.Sprintf("objcsim: duplicate built-in method %s on %s", name, class.Name))
	}
}

// mustDefineClass creates a built-in class.
func (r *Runtime) mustDefineClass(name string, super *Class) *Class {
	class, err := r.OS.DefineClass(name, super)
	if err != nil {
		panic(fmt.Sprintf("objcsim: %v", err))
	}
	return class
}

// send is a shorthand used by built-in methods to message other objects.
func (r *Runtime) send(target objc.Handle, sel string, args ...uintptr) uintptr {
	if target.IsNil() {
		return 0
	}
	return r.Dispatcher.Send(target, r.Selectors.Intern(sel), args)
}

// alloc creates a +1 instance of the class object cls.
func (r *Runtime) alloc(cls objc.Handle) objc.Handle {
	class := r.OS.ClassByHandle(cls)
	if class == nil {
		panic(fmt.Sprintf("objcsim: alloc sent to non-class %s", cls))
	}
	inst, err := r.OS.NewInstance(class)
	if err != nil {
		panic(fmt.Sprintf("objcsim: %v", err))
	}
	log.Debugf("alloc %s %s", class.Name, inst.Handle)
	return inst.Handle
}

// release releases h, panicking on over-release.
func (r *Runtime) release(h objc.Handle) {
	if err := r.OS.Release(h); err != nil {
		panic(fmt.Sprintf("objcsim: %v", err))
	}
}

// registerObjectClass registers NSObject, the root class.
func (r *Runtime) registerObjectClass() *Class {
	object := r.mustDefineClass("NSObject", nil)

	// Class side

	r.define(object, true, "alloc", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(r.alloc(self))
	})
	r.define(object, true, "new", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return r.send(r.alloc(self), "init")
	})
	r.define(object, true, "class", "#@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(self)
	})

	// Instance side; the root metaclass inherits these, so they also
	// apply to class objects.

	r.define(object, false, "init", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(self)
	})
	r.define(object, false, "self", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(self)
	})
	r.define(object, false, "retain", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		if err := r.OS.Retain(self); err != nil {
			panic(fmt.Sprintf("objcsim: %v", err))
		}
		return uintptr(self)
	})
	r.define(object, false, "release", "v@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		r.release(self)
		return 0
	})
	r.define(object, false, "retainCount", "Q@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		if n := r.OS.RetainCountOf(self); n > 0 {
			return uintptr(n)
		}
		// class objects are never deallocated
		return ^uintptr(0)
	})
	r.define(object, false, "copy", "@@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return r.send(self, "copyWithZone:", 0)
	})
	r.define(object, false, "class", "#@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(r.ObjectClass(self))
	})
	r.define(object, false, "superclass", "#@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(r.Superclass(r.ObjectClass(self)))
	})
	r.define(object, false, "isKindOfClass:", "c@:#", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		return r.boolWord(r.Dispatcher.IsKindOf(self, r.OS.ClassByHandle(objc.Handle(args[0]))))
	})
	r.define(object, false, "isMemberOfClass:", "c@:#", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		return r.boolWord(uintptr(r.ObjectClass(self)) == args[0])
	})
	r.define(object, false, "respondsToSelector:", "c@::", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		return r.boolWord(r.Dispatcher.RespondsTo(self, objc.Selector(args[0])))
	})
	r.define(object, false, "isEqual:", "c@:@", func(self objc.Handle, _ objc.Selector, args []uintptr) uintptr {
		return r.boolWord(uintptr(self) == args[0])
	})
	r.define(object, false, "hash", "Q@:", func(self objc.Handle, _ objc.Selector, _ []uintptr) uintptr {
		return uintptr(self)
	})

	return object
}
