/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package certs parses a node's own certificate + private key, either as
// a PEM chain (cert followed by key) or as a separate key/cert pair, for
// presentation during a TLS/DTLS handshake.
package certs

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
)

// Cert is a parsed certificate + private key pair.
type Cert interface {
	json.Marshaler
	json.Unmarshaler
	fmt.Stringer

	// Chain returns the PEM-encoded certificate followed by its key.
	Chain() (string, error)
	// Pair returns the PEM-encoded certificate and key separately.
	Pair() (pub string, key string, err error)
	// TLS returns the tls.Certificate built from the parsed material.
	TLS() tls.Certificate
	// Model returns the underlying value form.
	Model() Certif

	IsChain() bool
	IsPair() bool
	IsFile() bool
	// GetCerts returns the raw config strings (chain: one entry, pair: two).
	GetCerts() []string
}

// Parse parses a PEM chain (certificate followed by private key).
func Parse(chain string) (Cert, error) {
	c := ConfigChain(chain)
	return parseCert(&c)
}

// ParsePair parses a separate private key and certificate.
func ParsePair(key, pub string) (Cert, error) {
	return parseCert(&ConfigPair{Key: key, Pub: pub})
}

func parseCert(cfg Config) (Cert, error) {
	if c, e := cfg.Cert(); e != nil {
		return nil, e
	} else if c == nil {
		return nil, ErrInvalidPairCertificate
	} else {
		return &Certif{g: cfg, c: *c}, nil
	}
}
