package objc_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

// ---------------------------------------------------------------------------
// Loads
// ---------------------------------------------------------------------------

func TestCacheLoadIsIdempotent(t *testing.T) {
	rt := objcsim.New()
	c := objc.NewClassCache(rt)

	first, ok := c.Load(objc.ClassKeyFor("NSString"))
	if !ok {
		t.Fatal("Load(NSString) missed")
	}
	lookups := rt.Stats().ClassLookups
	for range 100 {
		got, ok := c.Load(objc.ClassKeyFor("NSString"))
		if !ok || got != first {
			t.Fatalf("Load = %s, %v; want %s", got, ok, first)
		}
	}
	if extra := rt.Stats().ClassLookups - lookups; extra != 0 {
		t.Errorf("cached class looked up %d more times", extra)
	}
}

func TestCacheMissesAreNotCached(t *testing.T) {
	rt := objcsim.New()
	c := objc.NewClassCache(rt)
	key := objc.ClassKeyFor("Late")

	if _, ok := c.Load(key); ok {
		t.Fatal("Load(Late) hit before the class exists")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after a miss, want 0", c.Len())
	}

	late, err := rt.OS.DefineClass("Late", rt.Root)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := c.Load(key)
	if !ok || got != objc.Class(late.Handle) {
		t.Errorf("Load after registration = %s, %v; want %s", got, ok, late.Handle)
	}
}

func TestCacheSaveIsVisible(t *testing.T) {
	rt := objcsim.New()
	c := objc.NewClassCache(rt)
	key := objc.SubclassKey("Thing", "NSObject")
	want := rt.GetClass("NSString")

	if err := c.Save(key, objc.ClassData{Class: want}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, ok := c.Load(key); !ok || got != want {
		t.Errorf("Load = %s, %v; want %s", got, ok, want)
	}

	// overwrite
	other := rt.GetClass("NSObject")
	if err := c.Save(key, objc.ClassData{Class: other}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, _ := c.Load(key); got != other {
		t.Errorf("Load after overwrite = %s, want %s", got, other)
	}
}

func TestClassKeyDistinguishesAbsentSuperclass(t *testing.T) {
	plain := objc.ClassKeyFor("Thing")
	emptySuper := objc.SubclassKey("Thing", "")
	if plain == emptySuper {
		t.Error("absent and empty superclass produce equal keys")
	}
	if plain.String() != "Thing" || objc.SubclassKey("Thing", "NSObject").String() != "NSObject/Thing" {
		t.Errorf("String() = %q / %q", plain, objc.SubclassKey("Thing", "NSObject"))
	}
}

func TestCacheConcurrentReads(t *testing.T) {
	rt := objcsim.New()
	c := objc.NewClassCache(rt)
	names := []string{"NSObject", "NSString", "NSNotification", "NSApplication"}
	want := make(map[string]objc.Class)
	for _, n := range names {
		want[n] = rt.GetClass(n)
	}

	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			for j := range 200 {
				name := names[(i+j)%len(names)]
				got, ok := c.Load(objc.ClassKeyFor(name))
				if !ok || got != want[name] {
					return errors.New("inconsistent load of " + name)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if c.Len() != len(names) {
		t.Errorf("Len = %d, want %d", c.Len(), len(names))
	}
}

func TestCacheSnapshotIsSorted(t *testing.T) {
	rt := objcsim.New()
	c := objc.NewClassCache(rt)
	for _, n := range []string{"NSString", "NSApplication", "NSObject"} {
		c.Load(objc.ClassKeyFor(n))
	}

	var got []string
	for _, e := range c.Snapshot() {
		got = append(got, e.Key.String())
	}
	want := []string{"NSApplication", "NSObject", "NSString"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot keys mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Poisoning
// ---------------------------------------------------------------------------

func TestPoisonedCacheDegradesToMisses(t *testing.T) {
	rt := objcsim.New()
	c := objc.NewClassCache(rt)
	if _, ok := c.Load(objc.ClassKeyFor("NSObject")); !ok {
		t.Fatal("Load(NSObject) missed")
	}

	if err := objc.PoisonCache(c); !errors.Is(err, objc.ErrCacheUnavailable) {
		t.Fatalf("PoisonCache err = %v, want %v", err, objc.ErrCacheUnavailable)
	}
	if !c.Poisoned() {
		t.Fatal("Poisoned() = false after a panic in a critical section")
	}

	if _, ok := c.Load(objc.ClassKeyFor("NSObject")); ok {
		t.Error("poisoned cache returned a hit")
	}
	if err := c.Save(objc.ClassKeyFor("NSObject"), objc.ClassData{}); !errors.Is(err, objc.ErrCacheUnavailable) {
		t.Errorf("Save err = %v, want %v", err, objc.ErrCacheUnavailable)
	}
	if c.Len() != 0 || len(c.Snapshot()) != 0 {
		t.Error("poisoned cache still exposes entries")
	}
}

func TestPoisonedCacheFailsRegistration(t *testing.T) {
	b, _ := newBridge(t)
	objc.PoisonCache(b.Cache())

	if _, err := b.LookUpClass("NSObject"); !errors.Is(err, objc.ErrClassNotFound) {
		t.Errorf("LookUpClass err = %v, want %v", err, objc.ErrClassNotFound)
	}
	_, err := b.GetClass("NSObject", "Anything", nil)
	if !errors.Is(err, objc.ErrSuperclassNotFound) {
		t.Errorf("GetClass err = %v, want %v", err, objc.ErrSuperclassNotFound)
	}
}
