package objc_test

import (
	"testing"

	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

// The default bridge is process-wide, so this is the only test that
// installs it.
func TestInitInstallsDefaultOnce(t *testing.T) {
	first := objcsim.New()
	if !objc.Init(first, objc.WithStrict(true)) {
		t.Fatal("first Init had no effect")
	}
	if objc.Init(objcsim.New()) {
		t.Error("second Init replaced the default bridge")
	}

	b := objc.Default()
	if b.Runtime() != objc.Runtime(first) {
		t.Error("Default is not bound to the first runtime")
	}
	if !b.Strict() {
		t.Error("Default lost the options passed to Init")
	}
	if objc.Default() != b {
		t.Error("Default is not stable")
	}

	cls, err := objc.GetClass("NSObject", "DefaultBridgeHelper", nil)
	if err != nil {
		t.Fatal(err)
	}
	if again, _ := b.GetClass("NSObject", "DefaultBridgeHelper", nil); again != cls {
		t.Errorf("package GetClass and Default().GetClass disagree: %s vs %s", cls, again)
	}
}

func TestBridgesHaveSeparateCaches(t *testing.T) {
	rt := objcsim.New()
	a := objc.New(rt)
	b := objc.New(rt)
	if _, err := a.LookUpClass("NSObject"); err != nil {
		t.Fatal(err)
	}
	if b.Cache().Len() != 0 {
		t.Errorf("second bridge cache Len = %d, want 0", b.Cache().Len())
	}
}
