package objc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/objcbridge/lib/objcsim"
	"github.com/chazu/objcbridge/objc"
)

func TestBooleanRoundTrip(t *testing.T) {
	sentinels := []struct {
		name    string
		yes, no objc.BOOL
	}{
		{"conventional", 1, 0},
		{"exotic", 0x7f, -3},
		{"inverted", 0, 1},
	}
	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			b := objc.New(objcsim.New(objcsim.WithBools(s.yes, s.no)))
			for _, v := range []objc.Boolean{true, false} {
				got, err := b.UnmarshalBool(b.MarshalBool(v))
				if err != nil {
					t.Fatalf("UnmarshalBool(MarshalBool(%v)): %v", v, err)
				}
				if got != v {
					t.Errorf("round trip of %v = %v", v, got)
				}
			}
			if got := b.MarshalBool(true); got != s.yes {
				t.Errorf("MarshalBool(true) = %d, want %d", got, s.yes)
			}
		})
	}
}

func TestUnmarshalBoolRejectsOtherValues(t *testing.T) {
	b := objc.New(objcsim.New(objcsim.WithBools(0x7f, -3)))
	for raw := math.MinInt8; raw <= math.MaxInt8; raw++ {
		v, err := b.UnmarshalBool(objc.BOOL(raw))
		switch objc.BOOL(raw) {
		case 0x7f:
			if err != nil || !v.Bool() {
				t.Errorf("UnmarshalBool(YES) = %v, %v", v, err)
			}
		case -3:
			if err != nil || v.Bool() {
				t.Errorf("UnmarshalBool(NO) = %v, %v", v, err)
			}
		default:
			if !errors.Is(err, objc.ErrUnmarshal) {
				t.Errorf("UnmarshalBool(%d) err = %v, want %v", raw, err, objc.ErrUnmarshal)
			}
		}
	}
}

func TestBooleanNot(t *testing.T) {
	b, _ := newBridge(t)
	yes := b.MarshalBool(true)
	v, err := b.UnmarshalBool(yes)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.MarshalBool(v.Not()); got == yes {
		t.Errorf("MarshalBool(Not(YES)) = %d, want NO", got)
	}
	if v.String() != "true" || v.Not().String() != "false" {
		t.Errorf("String() = %q / %q", v.String(), v.Not().String())
	}
}

func TestBOOLWordZeroExtends(t *testing.T) {
	if got := objc.BOOL(-1).Word(); got != 0xff {
		t.Errorf("BOOL(-1).Word() = %#x, want 0xff", got)
	}
}
