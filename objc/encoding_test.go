package objc_test

import (
	"testing"

	"github.com/chazu/objcbridge/objc"
)

func TestMethodArity(t *testing.T) {
	tests := []struct {
		types string
		want  int
	}{
		{"v@:", 0},
		{"v@:@", 1},
		{"c@:#", 1},
		{"@@:r^vQQ", 3},
		{"c24@0:8@16", 1},
		{"v@:{CGRect={CGPoint=dd}{CGSize=dd}}", 1},
		{"v@:@?", 1},
		{`v@:@"NSString"Q`, 2},
		{"v@:(u=iq)[4c]b3", 3},
		{"@@:^{_NSZone=}", 1},
	}
	for _, tt := range tests {
		got, err := objc.MethodArity(tt.types)
		if err != nil {
			t.Errorf("MethodArity(%q): %v", tt.types, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MethodArity(%q) = %d, want %d", tt.types, got, tt.want)
		}
	}
}

func TestMethodArityRejectsMalformed(t *testing.T) {
	for _, types := range []string{"", "v@", "v@:{CGRect", `v@:@"NSString`, "v@:^"} {
		if _, err := objc.MethodArity(types); err == nil {
			t.Errorf("MethodArity(%q) succeeded", types)
		}
	}
}
