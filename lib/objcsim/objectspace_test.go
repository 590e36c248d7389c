package objcsim

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chazu/objcbridge/objc"
)

// ---------------------------------------------------------------------------
// Class declaration
// ---------------------------------------------------------------------------

func TestDeclareClassIsInvisibleUntilRegistered(t *testing.T) {
	os := NewObjectSpace()
	root, err := os.DefineClass("Root", nil)
	if err != nil {
		t.Fatalf("DefineClass: %v", err)
	}
	cls, err := os.DeclareClass("Pending", root)
	if err != nil {
		t.Fatalf("DeclareClass: %v", err)
	}
	if os.GetClass("Pending") != nil {
		t.Error("declared class visible before registration")
	}
	if _, err := os.NewInstance(cls); err == nil {
		t.Error("NewInstance on unregistered class succeeded")
	}

	os.RegisterClass(cls)
	if os.GetClass("Pending") != cls {
		t.Error("registered class not visible")
	}
	if !cls.Meta.Registered {
		t.Error("metaclass not registered with its class")
	}
}

func TestDeclareClassRejectsDuplicates(t *testing.T) {
	os := NewObjectSpace()
	if _, err := os.DefineClass("A", nil); err != nil {
		t.Fatalf("DefineClass: %v", err)
	}
	if _, err := os.DeclareClass("A", nil); err == nil {
		t.Error("redeclaring a registered class succeeded")
	}
	if _, err := os.DeclareClass("B", nil); err != nil {
		t.Fatalf("DeclareClass(B): %v", err)
	}
	if _, err := os.DeclareClass("B", nil); err == nil {
		t.Error("redeclaring a pending class succeeded")
	}
	if _, err := os.DeclareClass("", nil); err == nil {
		t.Error("empty class name accepted")
	}
}

func TestRootMetaclassInheritsFromRoot(t *testing.T) {
	os := NewObjectSpace()
	root, _ := os.DefineClass("Root", nil)
	child, _ := os.DefineClass("Child", root)

	if root.Meta.Superclass != root {
		t.Errorf("root metaclass superclass = %v, want the root class", root.Meta.Superclass.Name)
	}
	if child.Meta.Superclass != root.Meta {
		t.Error("child metaclass does not inherit from root metaclass")
	}
	if !child.IsSubclassOf(root) || root.IsSubclassOf(child) {
		t.Error("IsSubclassOf disagrees with the declared hierarchy")
	}
}

func TestIvarsAreInheritedAndFrozen(t *testing.T) {
	os := NewObjectSpace()
	root, _ := os.DeclareClass("Root", nil)
	if !os.AddIvar(root, Ivar{Name: "a", Size: 8, Alignment: 3, Types: "Q"}) {
		t.Fatal("AddIvar(a) failed")
	}
	if os.AddIvar(root, Ivar{Name: "a", Size: 8, Alignment: 3, Types: "Q"}) {
		t.Error("duplicate ivar accepted")
	}
	os.RegisterClass(root)
	if os.AddIvar(root, Ivar{Name: "b", Size: 8, Alignment: 3, Types: "Q"}) {
		t.Error("ivar added after registration")
	}

	child, _ := os.DeclareClass("Child", root)
	os.AddIvar(child, Ivar{Name: "b", Size: 1, Alignment: 0, Types: "c"})

	var names []string
	for _, iv := range child.Ivars {
		names = append(names, iv.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Errorf("child ivars mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Reference counting
// ---------------------------------------------------------------------------

func TestRetainReleaseLifecycle(t *testing.T) {
	os := NewObjectSpace()
	cls, _ := os.DefineClass("Root", nil)
	inst, err := os.NewInstance(cls)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	h := inst.Handle

	deallocs := 0
	inst.OnDealloc(func() { deallocs++ })

	if err := os.Retain(h); err != nil {
		t.Fatalf("Retain: %v", err)
	}
	if got := os.RetainCountOf(h); got != 2 {
		t.Errorf("RetainCountOf = %d, want 2", got)
	}
	if err := os.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if deallocs != 0 {
		t.Error("deallocated while still retained")
	}
	if err := os.Release(h); err != nil {
		t.Fatalf("final Release: %v", err)
	}
	if deallocs != 1 {
		t.Errorf("dealloc hooks ran %d times, want 1", deallocs)
	}
	if err := os.Release(h); err == nil {
		t.Error("over-release not detected")
	}
	if os.InstanceCount() != 0 {
		t.Errorf("InstanceCount = %d, want 0", os.InstanceCount())
	}
}

func TestClassesAreNotReferenceCounted(t *testing.T) {
	os := NewObjectSpace()
	cls, _ := os.DefineClass("Root", nil)
	for range 3 {
		if err := os.Release(cls.Handle); err != nil {
			t.Fatalf("Release(class): %v", err)
		}
	}
	if os.ClassByHandle(cls.Handle) != cls {
		t.Error("class vanished after release")
	}
	if err := os.Release(objc.Handle(0xdead0)); err == nil {
		t.Error("release of unknown handle not detected")
	}
}

func TestConcurrentRetainRelease(t *testing.T) {
	os := NewObjectSpace()
	cls, _ := os.DefineClass("Root", nil)
	inst, _ := os.NewInstance(cls)

	const workers, rounds = 8, 500
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				if err := os.Retain(inst.Handle); err != nil {
					t.Errorf("Retain: %v", err)
					return
				}
				if err := os.Release(inst.Handle); err != nil {
					t.Errorf("Release: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := os.RetainCountOf(inst.Handle); got != 1 {
		t.Errorf("RetainCountOf = %d, want 1", got)
	}
}
