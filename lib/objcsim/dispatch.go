package objcsim

import (
	"fmt"
	"sync"

	"github.com/chazu/objcbridge/objc"
)

// Dispatcher handles message dispatch in the simulated runtime.
type Dispatcher struct {
	os   *ObjectSpace
	sels *SelectorTable

	mu     sync.Mutex
	counts map[objc.Selector]int
	sends  int64
}

// NewDispatcher creates a dispatcher over an object space.
func NewDispatcher(os *ObjectSpace, sels *SelectorTable) *Dispatcher {
	return &Dispatcher{
		os:     os,
		sels:   sels,
		counts: make(map[objc.Selector]int),
	}
}

// Send dispatches sel to target. target may be an instance, a class or a
// metaclass. Messages the receiver does not understand, and messages to
// deallocated objects, panic: the runtime has no recoverable error path
// for them.
func (d *Dispatcher) Send(target objc.Handle, sel objc.Selector, args []uintptr) uintptr {
	m, err := d.resolve(target, sel)
	if err != nil {
		panic(fmt.Sprintf("objcsim: %v", err))
	}
	d.count(sel)
	return m.Impl(target, sel, args)
}

// RespondsTo reports whether target implements sel.
func (d *Dispatcher) RespondsTo(target objc.Handle, sel objc.Selector) bool {
	m, err := d.resolve(target, sel)
	return err == nil && m != nil
}

// resolve finds the method for sel, starting at the vtable of target's class.
func (d *Dispatcher) resolve(target objc.Handle, sel objc.Selector) (*Method, error) {
	vt, who, err := d.vtableOf(target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.sels.Name(sel), err)
	}
	d.os.mu.RLock()
	m := vt.Lookup(sel)
	d.os.mu.RUnlock()
	if m == nil {
		return nil, fmt.Errorf("unrecognized selector %s sent to %s", d.sels.Name(sel), who)
	}
	return m, nil
}

func (d *Dispatcher) vtableOf(target objc.Handle) (*VTable, string, error) {
	d.os.mu.RLock()
	defer d.os.mu.RUnlock()

	if inst, ok := d.os.instances[target]; ok {
		return inst.Class.VTable, fmt.Sprintf("instance %s of %s", target, inst.Class.Name), nil
	}
	if class, ok := d.os.byHandle[target]; ok {
		if class.IsMeta {
			// Metaclasses are instances of the root metaclass.
			root := class
			for root.Superclass != nil && root.Superclass.IsMeta {
				root = root.Superclass
			}
			return root.VTable, "metaclass " + class.Name, nil
		}
		return class.Meta.VTable, "class " + class.Name, nil
	}
	return nil, "", d.os.deadHandleError(target, "message")
}

// IsKindOf reports whether target's class chain includes class.
func (d *Dispatcher) IsKindOf(target objc.Handle, class *Class) bool {
	vt, _, err := d.vtableOf(target)
	if err != nil || class == nil {
		return false
	}
	for v := vt; v != nil; v = v.parent {
		if v.class == class {
			return true
		}
	}
	return false
}

func (d *Dispatcher) count(sel objc.Selector) {
	d.mu.Lock()
	d.counts[sel]++
	d.sends++
	d.mu.Unlock()
}

// SendCount returns how many times sel has been dispatched.
func (d *Dispatcher) SendCount(sel objc.Selector) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[sel]
}

// TotalSends returns the number of messages dispatched.
func (d *Dispatcher) TotalSends() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sends
}
