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

// Package curves selects the ECDHE curve preferences a node's TLS
// transport offers during a handshake.
package curves

import (
	"crypto/tls"
	"regexp"
	"strings"
)

var rx = regexp.MustCompile("[0-9]+")

// Curves identifies an elliptic curve used in ECDHE key exchange.
type Curves uint16

const (
	Unknown Curves = iota

	// X25519 is preferred for new deployments.
	X25519 = Curves(tls.X25519)
	P256   = Curves(tls.CurveP256)
	P384   = Curves(tls.CurveP384)
	P521   = Curves(tls.CurveP521)
)

// Parse maps a curve name ("X25519", "P256", "384", ...) to a Curves,
// matching on the digits in the name.
func Parse(s string) Curves {
	switch rx.FindString(strings.ToLower(s)) {
	case "25519":
		return X25519
	case "256":
		return P256
	case "384":
		return P384
	case "521":
		return P521
	default:
		return Unknown
	}
}

// Check reports whether curve is one of the curves this package recognizes.
func Check(curve uint16) bool {
	switch Curves(curve) {
	case X25519, P256, P384, P521:
		return true
	default:
		return false
	}
}
