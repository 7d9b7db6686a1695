package discovery

import (
	"testing"
)

func TestEncodeDecodeTXTRoundTrip(t *testing.T) {
	want := map[string]string{
		TxtKeyVersion: "1.2.3",
		TxtKeyType:    TxtValueType,
		TxtKeyUUID:    "2f6a1e2e-0c0a-4b1a-9c1a-6e6b1a2c3d4e",
	}

	blob := encodeTXT(want)
	got := decodeTXT(blob)

	if len(got) != len(want) {
		t.Fatalf("decoded %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("key %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestDecodeTXTEntryWithoutEquals(t *testing.T) {
	blob := encodeTXT(map[string]string{"bareword": ""})
	// encodeTXT always emits "key=value"; build a blob without '=' by hand
	// to exercise decodeTXT's fallback path.
	s := "bareword"
	blob = append([]byte{byte(len(s))}, []byte(s)...)

	got := decodeTXT(blob)
	v, ok := got["bareword"]
	if !ok {
		t.Fatal("expected \"bareword\" key present")
	}
	if v != "" {
		t.Fatalf("value = %q, want empty", v)
	}
}

func TestDecodeTXTEmptyBlob(t *testing.T) {
	got := decodeTXT(nil)
	if len(got) != 0 {
		t.Fatalf("got %d entries, want 0", len(got))
	}
}

func TestDecodeTXTTruncatedLengthClamped(t *testing.T) {
	// Declares a length longer than the remaining bytes; decodeTXT must
	// clamp rather than panic or read out of bounds.
	blob := []byte{10, 'a', '=', 'b'}
	got := decodeTXT(blob)
	if got["a"] != "b" {
		t.Fatalf("got %v, want a=b", got)
	}
}

func TestSplitInstance(t *testing.T) {
	fqdn := "node-one._licht._tcp.,_client-api-v1.local."
	name, ok := splitInstance(fqdn, ServiceType)
	if !ok {
		t.Fatal("expected splitInstance to match")
	}
	if name != "node-one" {
		t.Fatalf("instance = %q, want \"node-one\"", name)
	}
}

func TestSplitInstanceNoMatch(t *testing.T) {
	_, ok := splitInstance("something-else.local.", ServiceType)
	if ok {
		t.Fatal("expected splitInstance to reject a non-matching suffix")
	}
}
