package curves

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	cases := map[string]Curves{
		"X25519":  X25519,
		"25519":   X25519,
		"P256":    P256,
		"p384":    P384,
		"521":     P521,
		"garbage": Unknown,
	}

	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCheck(t *testing.T) {
	if !Check(X25519.Uint16()) {
		t.Error("Check(X25519) = false, want true")
	}
	if Check(0) {
		t.Error("Check(0) = true, want false")
	}
}

func TestCurvesJSONRoundTrip(t *testing.T) {
	for _, c := range []Curves{X25519, P256, P384, P521} {
		b, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", c, err)
		}

		var got Curves
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", b, err)
		}
		if got != c {
			t.Errorf("round trip of %v = %v", c, got)
		}
	}
}
