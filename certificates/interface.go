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

// Package certificates builds the *tls.Config a node's TLS/DTLS transport
// uses for both its listener (accepting controller/peer connections) and
// its dialer (connecting out during adoption and realtime start), per
// spec.md §4.1's "component C1" secure-transport layer.
//
// Subpackages:
//   - auth: client-certificate policy
//   - ca: root/client CA certificate parsing
//   - certs: certificate+key pair parsing
//   - cipher: cipher suite selection
//   - curves: ECDHE curve preference
//   - tlsversion: TLS version bounds
package certificates

import (
	"crypto/tls"
	"crypto/x509"

	tlsaut "github.com/tristanseifert/lichtenstein-node/certificates/auth"
	tlscas "github.com/tristanseifert/lichtenstein-node/certificates/ca"
	tlscrt "github.com/tristanseifert/lichtenstein-node/certificates/certs"
	tlscpr "github.com/tristanseifert/lichtenstein-node/certificates/cipher"
	tlscrv "github.com/tristanseifert/lichtenstein-node/certificates/curves"
	tlsvrs "github.com/tristanseifert/lichtenstein-node/certificates/tlsversion"
)

// TLSConfig configures a TLS/DTLS endpoint: certificate material, root and
// client CA pools, cipher/curve/version preferences, and the client-auth
// policy. All operations are safe to call from a single goroutine at a
// time; node.go serializes reconfiguration through its own lock rather
// than relying on TLSConfig itself being concurrency-safe.
type TLSConfig interface {
	AddRootCA(rootCA tlscas.Cert) bool
	AddRootCAString(rootCA string) bool
	AddRootCAFile(pemFile string) error
	GetRootCA() []tlscas.Cert
	GetRootCAPool() *x509.CertPool

	AddClientCAString(ca string) bool
	AddClientCAFile(pemFile string) error
	GetClientCA() []tlscas.Cert
	GetClientCAPool() *x509.CertPool
	SetClientAuth(a tlsaut.ClientAuth)

	AddCertificatePairString(key, crt string) error
	AddCertificatePairFile(keyFile, crtFile string) error
	LenCertificatePair() int
	CleanCertificatePair()
	GetCertificatePair() []tls.Certificate

	SetVersionMin(v tlsvrs.Version)
	GetVersionMin() tlsvrs.Version
	SetVersionMax(v tlsvrs.Version)
	GetVersionMax() tlsvrs.Version

	SetCipherList(c []tlscpr.Cipher)
	AddCiphers(c ...tlscpr.Cipher)
	GetCiphers() []tlscpr.Cipher

	SetCurveList(c []tlscrv.Curves)
	AddCurves(c ...tlscrv.Curves)
	GetCurves() []tlscrv.Curves

	SetDynamicSizingDisabled(flag bool)
	SetSessionTicketDisabled(flag bool)

	// Clone returns an independent copy; mutating it does not affect the
	// original.
	Clone() TLSConfig
	// TLS is an alias of TlsConfig.
	TLS(serverName string) *tls.Config
	// TlsConfig builds a *tls.Config for a handshake against serverName
	// (SNI); empty means no server name is set.
	TlsConfig(serverName string) *tls.Config
	// Config snapshots this TLSConfig back into its JSON-serializable form.
	Config() *Config
}
