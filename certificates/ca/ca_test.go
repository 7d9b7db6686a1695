package ca

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

func selfSignedPEM(t *testing.T, cn string) string {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Unix(0, 0),
		NotAfter:     time.Unix(0, 0).Add(24 * time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, pub, priv)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}

	var buf bytes.Buffer
	if err := pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
		t.Fatalf("pem.Encode: %v", err)
	}

	return buf.String()
}

func TestParseSingleCert(t *testing.T) {
	c, err := Parse(selfSignedPEM(t, "node-root"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestParseChain(t *testing.T) {
	chain := selfSignedPEM(t, "ca-1") + selfSignedPEM(t, "ca-2")

	c, err := Parse(chain)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestParseEmptyFails(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("Parse(\"\") = nil error, want ErrInvalidPairCertificate")
	}
}

func TestAppendPool(t *testing.T) {
	c, err := Parse(selfSignedPEM(t, "node-root"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	pool := x509.NewCertPool()
	c.AppendPool(pool)
	if len(pool.Subjects()) != 1 { //nolint:staticcheck
		t.Errorf("pool has %d subjects, want 1", len(pool.Subjects())) //nolint:staticcheck
	}
}

func TestAppendBytes(t *testing.T) {
	c, err := Parse(selfSignedPEM(t, "node-root"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := c.AppendBytes([]byte(selfSignedPEM(t, "node-root-2"))); err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c, err := Parse(selfSignedPEM(t, "node-root"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Certif
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Len() != 1 {
		t.Errorf("round-tripped Len() = %d, want 1", got.Len())
	}
}

func TestString(t *testing.T) {
	c, err := Parse(selfSignedPEM(t, "node-root"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s := c.String(); len(s) == 0 {
		t.Error("String() is empty, want a PEM-encoded chain")
	}
}
