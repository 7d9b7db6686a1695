package tlsversion

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	cases := map[string]Version{
		"1.2":     VersionTLS12,
		"TLS1.3":  VersionTLS13,
		"11":      VersionTLS11,
		"1":       VersionTLS10,
		"garbage": VersionUnknown,
	}

	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestVersionUint16(t *testing.T) {
	if VersionTLS13.Uint16() != 0x0304 {
		t.Errorf("VersionTLS13.Uint16() = %#x, want 0x0304", VersionTLS13.Uint16())
	}
	if VersionUnknown.Uint16() != 0 {
		t.Errorf("VersionUnknown.Uint16() = %#x, want 0", VersionUnknown.Uint16())
	}
}

func TestVersionJSONRoundTrip(t *testing.T) {
	for _, v := range []Version{VersionTLS10, VersionTLS11, VersionTLS12, VersionTLS13} {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", v, err)
		}

		var got Version
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", b, err)
		}
		if got != v {
			t.Errorf("round trip of %v = %v", v, got)
		}
	}
}
