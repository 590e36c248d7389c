package objcsim

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chazu/objcbridge/objc"
)

// handleStride spaces handles like real, 16-byte aligned allocations.
const (
	firstHandle  = 0x10000
	handleStride = 0x10
)

// Ivar describes an instance variable added during class declaration.
type Ivar struct {
	Name      string
	Size      uintptr
	Alignment uint8
	Types     string
}

// Class is a class or metaclass known to the object space.
type Class struct {
	Name       string
	Handle     objc.Handle
	Superclass *Class
	Meta       *Class // nil for metaclasses
	IsMeta     bool
	VTable     *VTable
	Ivars      []Ivar
	Registered bool
}

// IsSubclassOf returns true if c is other or inherits from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for current := c; current != nil; current = current.Superclass {
		if current == other {
			return true
		}
	}
	return false
}

// Instance is a live object with a retain count.
type Instance struct {
	Handle      objc.Handle
	Class       *Class
	RetainCount int

	mu        sync.RWMutex
	ivars     map[string]uintptr
	data      any
	onDealloc []func()
}

// Ivar returns the value of an instance variable.
func (inst *Instance) Ivar(name string) uintptr {
	inst.mu.RLock()
	defer inst.mu.RUnlock()
	return inst.ivars[name]
}

// SetIvar sets the value of an instance variable.
func (inst *Instance) SetIvar(name string, v uintptr) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.ivars[name] = v
}

// Data returns the native backing store of a built-in class instance.
func (inst *Instance) Data() any {
	inst.mu.RLock()
	defer inst.mu.RUnlock()
	return inst.data
}

// SetData sets the native backing store.
func (inst *Instance) SetData(v any) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.data = v
}

// OnDealloc registers fn to run when the instance is deallocated.
func (inst *Instance) OnDealloc(fn func()) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	inst.onDealloc = append(inst.onDealloc, fn)
}

// ObjectSpace manages all classes and instances of a simulated runtime.
type ObjectSpace struct {
	mu        sync.RWMutex
	classes   map[string]*Class // registered, by name
	declared  map[string]*Class // declared but not yet registered
	byHandle  map[objc.Handle]*Class
	instances map[objc.Handle]*Instance
	zombies   map[objc.Handle]string // deallocated handle -> class name
	next      uintptr

	allocs   int64
	deallocs int64
}

// NewObjectSpace creates an empty object space.
func NewObjectSpace() *ObjectSpace {
	return &ObjectSpace{
		classes:   make(map[string]*Class),
		declared:  make(map[string]*Class),
		byHandle:  make(map[objc.Handle]*Class),
		instances: make(map[objc.Handle]*Instance),
		zombies:   make(map[objc.Handle]string),
		next:      firstHandle,
	}
}

func (os *ObjectSpace) allocHandle() objc.Handle {
	h := objc.Handle(os.next)
	os.next += handleStride
	return h
}

// DeclareClass creates a class and its metaclass under name without
// registering them. It fails if the name is taken or super is a metaclass.
func (os *ObjectSpace) DeclareClass(name string, super *Class) (*Class, error) {
	os.mu.Lock()
	defer os.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("empty class name")
	}
	if _, ok := os.classes[name]; ok {
		return nil, fmt.Errorf("class %s already exists", name)
	}
	if _, ok := os.declared[name]; ok {
		return nil, fmt.Errorf("class %s is already being declared", name)
	}
	if super != nil && super.IsMeta {
		return nil, fmt.Errorf("superclass of %s is a metaclass", name)
	}

	class := &Class{Name: name, Handle: os.allocHandle(), Superclass: super}
	meta := &Class{Name: name, Handle: os.allocHandle(), IsMeta: true}

	if super != nil {
		class.VTable = NewVTable(class, super.VTable)
		meta.Superclass = super.Meta
		meta.VTable = NewVTable(meta, super.Meta.VTable)
		class.Ivars = append(class.Ivars, super.Ivars...)
	} else {
		class.VTable = NewVTable(class, nil)
		meta.Superclass = class
		meta.VTable = NewVTable(meta, class.VTable)
	}
	class.Meta = meta

	os.declared[name] = class
	os.byHandle[class.Handle] = class
	os.byHandle[meta.Handle] = meta
	return class, nil
}

// RegisterClass makes a declared class visible by name. Registering twice
// is a no-op.
func (os *ObjectSpace) RegisterClass(class *Class) {
	os.mu.Lock()
	defer os.mu.Unlock()

	if class.Registered {
		return
	}
	delete(os.declared, class.Name)
	class.Registered = true
	class.Meta.Registered = true
	os.classes[class.Name] = class
}

// DefineClass declares and registers a class in one step.
func (os *ObjectSpace) DefineClass(name string, super *Class) (*Class, error) {
	class, err := os.DeclareClass(name, super)
	if err != nil {
		return nil, err
	}
	os.RegisterClass(class)
	return class, nil
}

// AddIvar adds an instance variable to a class still under declaration.
func (os *ObjectSpace) AddIvar(class *Class, ivar Ivar) bool {
	os.mu.Lock()
	defer os.mu.Unlock()

	if class.Registered || class.IsMeta {
		return false
	}
	for _, existing := range class.Ivars {
		if existing.Name == ivar.Name {
			return false
		}
	}
	class.Ivars = append(class.Ivars, ivar)
	return true
}

// AddMethod attaches m to class.
func (os *ObjectSpace) AddMethod(class *Class, m *Method) bool {
	os.mu.Lock()
	defer os.mu.Unlock()
	return class.VTable.AddMethod(m)
}

// GetClass retrieves a registered class by name.
func (os *ObjectSpace) GetClass(name string) *Class {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return os.classes[name]
}

// ClassByHandle returns the class or metaclass at h, registered or not.
func (os *ObjectSpace) ClassByHandle(h objc.Handle) *Class {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return os.byHandle[h]
}

// NewInstance allocates an instance of class with a retain count of one.
func (os *ObjectSpace) NewInstance(class *Class) (*Instance, error) {
	os.mu.Lock()
	defer os.mu.Unlock()

	if !class.Registered || class.IsMeta {
		return nil, fmt.Errorf("cannot instantiate unregistered class %s", class.Name)
	}

	inst := &Instance{
		Handle:      os.allocHandle(),
		Class:       class,
		RetainCount: 1,
		ivars:       make(map[string]uintptr, len(class.Ivars)),
	}
	for _, iv := range class.Ivars {
		inst.ivars[iv.Name] = 0
	}
	os.instances[inst.Handle] = inst
	os.allocs++
	return inst, nil
}

// GetInstance retrieves a live instance by handle.
func (os *ObjectSpace) GetInstance(h objc.Handle) *Instance {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return os.instances[h]
}

// Retain increments the retain count of an instance. Classes are not
// reference counted.
func (os *ObjectSpace) Retain(h objc.Handle) error {
	os.mu.Lock()
	defer os.mu.Unlock()

	if inst, ok := os.instances[h]; ok {
		inst.RetainCount++
		return nil
	}
	if _, ok := os.byHandle[h]; ok {
		return nil
	}
	return os.deadHandleError(h, "retain")
}

// Release decrements the retain count of an instance, deallocating it at
// zero.
func (os *ObjectSpace) Release(h objc.Handle) error {
	os.mu.Lock()
	inst, ok := os.instances[h]
	if !ok {
		_, isClass := os.byHandle[h]
		var err error
		if !isClass {
			err = os.deadHandleError(h, "release")
		}
		os.mu.Unlock()
		return err
	}

	inst.RetainCount--
	if inst.RetainCount > 0 {
		os.mu.Unlock()
		return nil
	}
	delete(os.instances, h)
	os.zombies[h] = inst.Class.Name
	os.deallocs++
	os.mu.Unlock()

	// Hooks may release other objects; run them outside the lock.
	inst.mu.Lock()
	hooks := inst.onDealloc
	inst.onDealloc = nil
	inst.mu.Unlock()
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
	return nil
}

// RetainCountOf returns the retain count of a live instance, or 0.
func (os *ObjectSpace) RetainCountOf(h objc.Handle) int {
	os.mu.RLock()
	defer os.mu.RUnlock()
	if inst, ok := os.instances[h]; ok {
		return inst.RetainCount
	}
	return 0
}

// deadHandleError must be called with os.mu held.
func (os *ObjectSpace) deadHandleError(h objc.Handle, op string) error {
	if name, ok := os.zombies[h]; ok {
		return fmt.Errorf("%s sent to deallocated instance %s of %s", op, h, name)
	}
	return fmt.Errorf("%s sent to unknown object %s", op, h)
}

// ClassNames returns all registered class names, sorted.
func (os *ObjectSpace) ClassNames() []string {
	os.mu.RLock()
	defer os.mu.RUnlock()

	names := make([]string, 0, len(os.classes))
	for name := range os.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstanceCount returns the number of live instances.
func (os *ObjectSpace) InstanceCount() int {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return len(os.instances)
}

// ClassCount returns the number of registered classes.
func (os *ObjectSpace) ClassCount() int {
	os.mu.RLock()
	defer os.mu.RUnlock()
	return len(os.classes)
}
