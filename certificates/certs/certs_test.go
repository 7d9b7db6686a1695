package certs

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

func genPairPEM(t *testing.T) (pub string, key string) {
	t.Helper()

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}

	bufPub := bytes.NewBuffer(nil)
	if err := pem.Encode(bufPub, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
		t.Fatalf("pem.Encode cert: %v", err)
	}

	pk, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("MarshalPKCS8PrivateKey: %v", err)
	}
	bufKey := bytes.NewBuffer(nil)
	if err := pem.Encode(bufKey, &pem.Block{Type: "PRIVATE KEY", Bytes: pk}); err != nil {
		t.Fatalf("pem.Encode key: %v", err)
	}

	return bufPub.String(), bufKey.String()
}

func TestParsePair(t *testing.T) {
	pub, key := genPairPEM(t)

	c, err := ParsePair(key, pub)
	if err != nil {
		t.Fatalf("ParsePair: %v", err)
	}
	if !c.IsPair() {
		t.Error("IsPair() = false, want true")
	}
	if c.IsChain() {
		t.Error("IsChain() = true, want false")
	}

	tlsC := c.TLS()
	if len(tlsC.Certificate) == 0 {
		t.Error("TLS().Certificate is empty")
	}

	if s := c.String(); !bytes.Contains([]byte(s), []byte("BEGIN CERTIFICATE")) {
		t.Errorf("String() = %q, want it to contain a PEM certificate", s)
	}

	if cp := c.Model(); !cp.IsPair() {
		t.Error("Model().IsPair() = false, want true")
	}

	chain, err := c.Chain()
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if !bytes.Contains([]byte(chain), []byte("BEGIN CERTIFICATE")) {
		t.Errorf("Chain() = %q, want it to contain a PEM certificate", chain)
	}

	p2, k2, err := c.Pair()
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if !bytes.Contains([]byte(p2), []byte("BEGIN CERTIFICATE")) {
		t.Errorf("Pair() pub = %q, want it to contain a PEM certificate", p2)
	}
	if !bytes.Contains([]byte(k2), []byte("PRIVATE KEY")) {
		t.Errorf("Pair() key = %q, want it to contain a PEM private key", k2)
	}
}

func TestCertifJSONRoundTrip(t *testing.T) {
	pub, key := genPairPEM(t)

	c, err := ParsePair(key, pub)
	if err != nil {
		t.Fatalf("ParsePair: %v", err)
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Certif
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.TLS().Certificate) == 0 {
		t.Error("round-tripped TLS().Certificate is empty")
	}
}

func TestParseChain(t *testing.T) {
	pub, key := genPairPEM(t)

	c, err := Parse(key + "\n" + pub)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !c.IsChain() {
		t.Error("IsChain() = false, want true")
	}
}
