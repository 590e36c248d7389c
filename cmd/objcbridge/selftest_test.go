package main

import (
	"testing"

	"github.com/chazu/objcbridge/objc"
)

func TestSelfTests(t *testing.T) {
	for _, st := range selfTests {
		t.Run(st.name, func(t *testing.T) {
			if err := st.run(lenient(nil)); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestSelfTestsIgnoreStrictConfig(t *testing.T) {
	opts := lenient([]objc.Option{objc.WithStrict(true)})
	if err := testDowncast(opts); err != nil {
		t.Errorf("testDowncast with strict config: %v", err)
	}
}

func TestRunClassesRejectsUnknownFormat(t *testing.T) {
	b := newBridge(true, nil)
	if err := runClasses(b, []string{"-format", "yaml"}); err == nil {
		t.Error("unknown format accepted")
	}
}
