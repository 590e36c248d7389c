package objc

// ClassDecl is a class under declaration. It is handed to the attach
// callback of GetClass, which adds methods and instance variables; the
// bridge then registers it, after which every mutator returns false.
type ClassDecl struct {
	b          *Bridge
	cls        Class
	superclass Class
	name       string
	registered bool
}

// Name returns the unique runtime name of the class being declared.
func (d *ClassDecl) Name() string { return d.name }

// Class returns the class under declaration.
func (d *ClassDecl) Class() Class { return d.cls }

// Superclass returns the resolved superclass.
func (d *ClassDecl) Superclass() Class { return d.superclass }

// AddMethod attaches an instance method. types is the runtime type
// encoding of the method, e.g. "v@:@".
func (d *ClassDecl) AddMethod(sel string, fn MethodFunc, types string) bool {
	if d.registered {
		return false
	}
	return d.b.rt.ClassAddMethod(d.cls, d.b.rt.RegisterName(sel), fn, types)
}

// AddClassMethod attaches a class method.
func (d *ClassDecl) AddClassMethod(sel string, fn MethodFunc, types string) bool {
	if d.registered {
		return false
	}
	return d.b.rt.ClassAddMethod(d.b.rt.MetaClass(d.cls), d.b.rt.RegisterName(sel), fn, types)
}

// AddIvar adds an instance variable of the given size and log2 alignment.
func (d *ClassDecl) AddIvar(name string, size uintptr, alignment uint8, types string) bool {
	if d.registered {
		return false
	}
	return d.b.rt.ClassAddIvar(d.cls, name, size, alignment, types)
}

func (d *ClassDecl) register() Class {
	if !d.registered {
		d.b.rt.RegisterClassPair(d.cls)
		d.registered = true
	}
	return d.cls
}
