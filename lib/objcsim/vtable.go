package objcsim

import "github.com/chazu/objcbridge/objc"

// Method is one method implementation attached to a class.
type Method struct {
	Selector objc.Selector
	Name     string
	Types    string
	Impl     objc.MethodFunc
}

// VTable holds the methods of one class, indexed by selector.
//
// Inheritance is handled by walking the parent chain when a method is
// not found locally. A metaclass vtable's parent is its superclass's
// metaclass vtable; the root metaclass's parent is the root class, so
// class objects answer the root instance methods.
type VTable struct {
	class   *Class
	parent  *VTable
	methods []*Method
}

// NewVTable creates a vtable for class.
func NewVTable(class *Class, parent *VTable) *VTable {
	return &VTable{
		class:   class,
		parent:  parent,
		methods: make([]*Method, 0, 32),
	}
}

// Lookup finds a method by selector, walking the inheritance chain.
// Returns nil if no class in the chain implements it.
func (vt *VTable) Lookup(sel objc.Selector) *Method {
	for v := vt; v != nil; v = v.parent {
		if m := v.LookupLocal(sel); m != nil {
			return m
		}
	}
	return nil
}

// LookupLocal finds a method in this vtable only.
func (vt *VTable) LookupLocal(sel objc.Selector) *Method {
	i := int(sel)
	if i > 0 && i < len(vt.methods) {
		return vt.methods[i]
	}
	return nil
}

// AddMethod adds m unless this vtable already defines its selector.
func (vt *VTable) AddMethod(m *Method) bool {
	i := int(m.Selector)
	if i <= 0 {
		return false
	}
	if i >= len(vt.methods) {
		grown := make([]*Method, i+1)
		copy(grown, vt.methods)
		vt.methods = grown
	}
	if vt.methods[i] != nil {
		return false
	}
	vt.methods[i] = m
	return true
}
