package cipher

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	cases := map[string]Cipher{
		"ECDHE-RSA-AES128-GCM-SHA256":  TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		"tls_aes_256_gcm_sha384":       TLS_AES_256_GCM_SHA384,
		"TLS_CHACHA20_POLY1305_SHA256": TLS_CHACHA20_POLY1305_SHA256,
		"garbage":                      Unknown,
	}

	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCheck(t *testing.T) {
	if !Check(TLS_AES_128_GCM_SHA256.Uint16()) {
		t.Error("Check(TLS_AES_128_GCM_SHA256) = false, want true")
	}
	if Check(0x0000) {
		t.Error("Check(0x0000) = true, want false")
	}
}

func TestCipherJSONRoundTrip(t *testing.T) {
	for _, c := range list() {
		b, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", c, err)
		}

		var got Cipher
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", b, err)
		}
		if got != c {
			t.Errorf("round trip of %v = %v", c, got)
		}
	}
}
