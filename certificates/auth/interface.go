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

// Package auth is the client-certificate policy a node's TLS listener
// enforces against connecting peers, configured via lichtensteind.yaml's
// tls.authClient string.
package auth

import (
	"crypto/tls"
	"strings"
)

const (
	strict  = "strict"
	require = "require"
	verify  = "verify"
	request = "request"
	none    = "none"
)

// ClientAuth wraps tls.ClientAuthType so it can be decoded from the plain
// strings used in lichtensteind.yaml.
type ClientAuth tls.ClientAuthType

const (
	NoClientCert               = ClientAuth(tls.NoClientCert)
	RequestClientCert          = ClientAuth(tls.RequestClientCert)
	RequireAnyClientCert       = ClientAuth(tls.RequireAnyClientCert)
	VerifyClientCertIfGiven    = ClientAuth(tls.VerifyClientCertIfGiven)
	RequireAndVerifyClientCert = ClientAuth(tls.RequireAndVerifyClientCert)
)

// Parse maps a config string to a ClientAuth, defaulting to NoClientCert
// for anything unrecognized.
func Parse(s string) ClientAuth {
	s = cleanString(s)

	switch {
	case strings.Contains(s, strict) || (strings.Contains(s, require) && strings.Contains(s, verify)):
		return RequireAndVerifyClientCert
	case strings.Contains(s, verify):
		return VerifyClientCertIfGiven
	case strings.Contains(s, require):
		return RequireAnyClientCert
	case strings.Contains(s, request):
		return RequestClientCert
	default:
		return NoClientCert
	}
}

func cleanString(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "\"", "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}
