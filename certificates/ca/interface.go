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

// Package ca parses root and client CA certificates (PEM chains, one or
// more certificates) for use in a node's TLS/DTLS trust store.
package ca

import (
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidPairCertificate is returned when a PEM chain is empty.
	ErrInvalidPairCertificate = errors.New("invalid pair certificate")

	// ErrInvalidCertificate names an undecodable certificate. No function in
	// this package returns it: blocks that fail to decode are skipped.
	ErrInvalidCertificate = errors.New("invalid certificate")
)

// Cert is a parsed PEM certificate chain usable as a root or client CA.
type Cert interface {
	json.Marshaler
	json.Unmarshaler
	fmt.Stringer

	// Len returns the number of certificates in the chain.
	Len() int
	// AppendPool adds every certificate in the chain to p.
	AppendPool(p *x509.CertPool)
	// AppendBytes parses p as a PEM chain and appends it.
	AppendBytes(p []byte) error
	// AppendString parses str as a PEM chain and appends it.
	AppendString(str string) error
	// Model returns the chain's underlying value form.
	Model() Certif
}

// Parse parses a PEM-encoded certificate chain.
func Parse(str string) (Cert, error) {
	return ParseByte([]byte(str))
}

// ParseByte parses a PEM-encoded certificate chain from raw bytes.
func ParseByte(p []byte) (Cert, error) {
	c := &Certif{c: make([]*x509.Certificate, 0)}

	if e := c.unMarshall(p); e != nil {
		return nil, e
	}

	return c, nil
}
