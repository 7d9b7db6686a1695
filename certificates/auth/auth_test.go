package auth

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	cases := map[string]ClientAuth{
		"none":                  NoClientCert,
		"":                      NoClientCert,
		"request":               RequestClientCert,
		"require":               RequireAnyClientCert,
		"verify":                VerifyClientCertIfGiven,
		"require and verify":    RequireAndVerifyClientCert,
		"strict":                RequireAndVerifyClientCert,
		"  STRICT  ":            RequireAndVerifyClientCert,
		"'require'":             RequireAnyClientCert,
		"garbage value no auth": NoClientCert,
	}

	for in, want := range cases {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestClientAuthJSONRoundTrip(t *testing.T) {
	for _, a := range []ClientAuth{
		NoClientCert,
		RequestClientCert,
		RequireAnyClientCert,
		VerifyClientCertIfGiven,
		RequireAndVerifyClientCert,
	} {
		b, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", a, err)
		}

		var got ClientAuth
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", b, err)
		}
		if got != a {
			t.Errorf("round trip of %v = %v", a, got)
		}
	}
}

func TestClientAuthTLS(t *testing.T) {
	if RequireAndVerifyClientCert.TLS() != 4 {
		t.Errorf("TLS() = %d, want 4 (tls.RequireAndVerifyClientCert)", RequireAndVerifyClientCert.TLS())
	}
}
