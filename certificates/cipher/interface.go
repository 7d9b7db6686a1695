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

// Package cipher selects the TLS cipher suites a node's transport offers
// during a handshake, restricted to modern AEAD suites (AES-GCM,
// ChaCha20-Poly1305) of TLS 1.2 and TLS 1.3.
package cipher

import (
	"crypto/tls"
	"slices"
	"strings"
)

// Cipher identifies a TLS cipher suite.
type Cipher uint16

const (
	Unknown Cipher = Cipher(0)

	TLS_RSA_WITH_AES_128_GCM_SHA256               = Cipher(tls.TLS_RSA_WITH_AES_128_GCM_SHA256)
	TLS_RSA_WITH_AES_256_GCM_SHA384               = Cipher(tls.TLS_RSA_WITH_AES_256_GCM_SHA384)
	TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256         = Cipher(tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256)
	TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256       = Cipher(tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256)
	TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384         = Cipher(tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384)
	TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384       = Cipher(tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384)
	TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256   = Cipher(tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256)
	TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256 = Cipher(tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256)

	TLS_AES_128_GCM_SHA256       = Cipher(tls.TLS_AES_128_GCM_SHA256)
	TLS_AES_256_GCM_SHA384       = Cipher(tls.TLS_AES_256_GCM_SHA384)
	TLS_CHACHA20_POLY1305_SHA256 = Cipher(tls.TLS_CHACHA20_POLY1305_SHA256)
)

// Parse maps a cipher suite name (tolerant of dashes, dots, casing - e.g.
// "ECDHE-RSA-AES128-GCM-SHA256") to a Cipher, or Unknown if unrecognized.
func Parse(s string) Cipher {
	s = strings.ToLower(s)
	s = strings.NewReplacer(
		"\"", "", "'", "", "tls", "",
		"aes128", "aes_128", "aes256", "aes_256",
		".", "_", "-", "_", " ", "_",
	).Replace(s)
	s = strings.TrimSpace(s)

	p := strings.Split(s, "_")

	for _, c := range list() {
		if containString(p, c.Code()) {
			return c
		}
	}

	return Unknown
}

func list() []Cipher {
	return []Cipher{
		TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
		TLS_CHACHA20_POLY1305_SHA256,
		TLS_RSA_WITH_AES_128_GCM_SHA256,
		TLS_RSA_WITH_AES_256_GCM_SHA384,
		TLS_AES_128_GCM_SHA256,
		TLS_AES_256_GCM_SHA384,
	}
}

// Check reports whether cipher is one of the suites this package recognizes.
func Check(cipher uint16) bool {
	for _, c := range list() {
		if c.Uint16() == cipher {
			return true
		}
	}
	return false
}

func containString(s, v []string) bool {
	keys := []string{
		"chacha20", "poly1305", "ecdhe", "rsa", "ecdsa",
		"aes", "128", "256", "sha256", "sha384", "gcm",
	}

	for _, k := range keys {
		if slices.Contains(s, k) != slices.Contains(v, k) {
			return false
		}
	}

	return true
}
