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

package certificates

import (
	"crypto/tls"

	tlsaut "github.com/tristanseifert/lichtenstein-node/certificates/auth"
	tlscas "github.com/tristanseifert/lichtenstein-node/certificates/ca"
	tlscrt "github.com/tristanseifert/lichtenstein-node/certificates/certs"
	tlscpr "github.com/tristanseifert/lichtenstein-node/certificates/cipher"
	tlscrv "github.com/tristanseifert/lichtenstein-node/certificates/curves"
	tlsvrs "github.com/tristanseifert/lichtenstein-node/certificates/tlsversion"
)

// config is the concrete TLSConfig: a TLS listener/dialer's certificate
// material plus version, cipher and curve preferences, and client-auth
// policy. The rest of its methods live alongside the concern they touch
// (cert.go, rootca.go, authClient.go, curves.go).
type config struct {
	cert                  []tlscrt.Cert
	cipherList            []tlscpr.Cipher
	curveList             []tlscrv.Curves
	caRoot                []tlscas.Cert
	clientAuth            tlsaut.ClientAuth
	clientCA              []tlscas.Cert
	tlsMinVersion         tlsvrs.Version
	tlsMaxVersion         tlsvrs.Version
	dynSizingDisabled     bool
	ticketSessionDisabled bool
}

var Default = New()

// New returns a TLSConfig with the node's baseline defaults: TLS 1.2
// through 1.3, no client certificate requirement.
func New() TLSConfig {
	return &config{
		cert:          make([]tlscrt.Cert, 0),
		cipherList:    make([]tlscpr.Cipher, 0),
		curveList:     make([]tlscrv.Curves, 0),
		caRoot:        make([]tlscas.Cert, 0),
		clientAuth:    tlsaut.NoClientCert,
		clientCA:      make([]tlscas.Cert, 0),
		tlsMinVersion: tlsvrs.VersionTLS12,
		tlsMaxVersion: tlsvrs.VersionTLS13,
	}
}

func asStruct(cfg TLSConfig) *config {
	if c, ok := cfg.(*config); ok {
		return c
	}
	return nil
}

// TlsConfig builds the *tls.Config this configuration describes, for the
// given server name (SNI). It is the only method transport/tls.go and
// transport/dtls.go call to obtain certificate material for a handshake.
func (c *config) TlsConfig(serverName string) *tls.Config {
	/* #nosec */
	cnf := &tls.Config{
		InsecureSkipVerify: false,
	}

	if serverName != "" {
		cnf.ServerName = serverName
	}

	cnf.SessionTicketsDisabled = c.ticketSessionDisabled
	cnf.DynamicRecordSizingDisabled = c.dynSizingDisabled

	if c.tlsMinVersion != tlsvrs.VersionUnknown {
		cnf.MinVersion = c.tlsMinVersion.Uint16()
	}
	if c.tlsMaxVersion != tlsvrs.VersionUnknown {
		cnf.MaxVersion = c.tlsMaxVersion.Uint16()
	}

	if len(c.cipherList) > 0 {
		cnf.PreferServerCipherSuites = true
		for _, cp := range c.cipherList {
			cnf.CipherSuites = append(cnf.CipherSuites, cp.Uint16())
		}
	}

	if len(c.curveList) > 0 {
		for _, cv := range c.curveList {
			cnf.CurvePreferences = append(cnf.CurvePreferences, cv.TLS())
		}
	}

	if len(c.caRoot) > 0 {
		cnf.RootCAs = c.GetRootCAPool()
	}

	if len(c.cert) > 0 {
		for _, crt := range c.cert {
			cnf.Certificates = append(cnf.Certificates, crt.TLS())
		}
	}

	if c.clientAuth != tlsaut.NoClientCert {
		cnf.ClientAuth = c.clientAuth.TLS()
		if len(c.clientCA) > 0 {
			cnf.ClientCAs = c.GetClientCAPool()
		}
	}

	return cnf
}

// TLS is an alias of TlsConfig kept for call sites (and the package's own
// test suite) that spell it the short way.
func (c *config) TLS(serverName string) *tls.Config {
	return c.TlsConfig(serverName)
}

func (c *config) Clone() TLSConfig {
	return &config{
		cert:                  append(make([]tlscrt.Cert, 0), c.cert...),
		cipherList:            append(make([]tlscpr.Cipher, 0), c.cipherList...),
		curveList:             append(make([]tlscrv.Curves, 0), c.curveList...),
		caRoot:                append(make([]tlscas.Cert, 0), c.caRoot...),
		clientCA:              append(make([]tlscas.Cert, 0), c.clientCA...),
		clientAuth:            c.clientAuth,
		tlsMinVersion:         c.tlsMinVersion,
		tlsMaxVersion:         c.tlsMaxVersion,
		dynSizingDisabled:     c.dynSizingDisabled,
		ticketSessionDisabled: c.ticketSessionDisabled,
	}
}

// Config snapshots this TLSConfig into its JSON-serializable form, the
// counterpart of Config.New/Config.NewFrom.
func (c *config) Config() *Config {
	var crt = make([]tlscrt.Certif, 0, len(c.cert))
	for _, s := range c.cert {
		crt = append(crt, s.Model())
	}

	return &Config{
		Certs:                crt,
		CurveList:            append(make([]tlscrv.Curves, 0), c.curveList...),
		CipherList:           append(make([]tlscpr.Cipher, 0), c.cipherList...),
		RootCA:               append(make([]tlscas.Cert, 0), c.caRoot...),
		ClientCA:             append(make([]tlscas.Cert, 0), c.clientCA...),
		VersionMin:           c.tlsMinVersion,
		VersionMax:           c.tlsMaxVersion,
		AuthClient:           c.clientAuth,
		DynamicSizingDisable: c.dynSizingDisabled,
		SessionTicketDisable: c.ticketSessionDisabled,
	}
}

func (c *config) SetVersionMin(v tlsvrs.Version) {
	c.tlsMinVersion = v
}

func (c *config) GetVersionMin() tlsvrs.Version {
	return c.tlsMinVersion
}

func (c *config) SetVersionMax(v tlsvrs.Version) {
	c.tlsMaxVersion = v
}

func (c *config) GetVersionMax() tlsvrs.Version {
	return c.tlsMaxVersion
}

func (c *config) SetCipherList(cl []tlscpr.Cipher) {
	c.cipherList = append(make([]tlscpr.Cipher, 0), cl...)
}

func (c *config) AddCiphers(cl ...tlscpr.Cipher) {
	c.cipherList = append(c.cipherList, cl...)
}

func (c *config) GetCiphers() []tlscpr.Cipher {
	return append(make([]tlscpr.Cipher, 0), c.cipherList...)
}

func (c *config) SetDynamicSizingDisabled(flag bool) {
	c.dynSizingDisabled = flag
}

func (c *config) SetSessionTicketDisabled(flag bool) {
	c.ticketSessionDisabled = flag
}
