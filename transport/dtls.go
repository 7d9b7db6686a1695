package transport

import (
	"context"
	"net"
	"time"

	"github.com/pion/dtls/v2"

	"github.com/tristanseifert/lichtenstein-node/certificates"
)

// dtlsReceiveTimeout is the 2-second receive timeout spec.md §4.1 requires
// the DTLS client to set before calling ssl_connect.
const dtlsReceiveTimeout = 2 * time.Second

// dtlsConfigFrom builds a *dtls.Config from the node's certificates.TLSConfig,
// reusing the same certificate/root/client-CA material the TLS transport
// uses rather than maintaining a parallel DTLS-specific certificate store.
func dtlsConfigFrom(cfg certificates.TLSConfig, serverName string) *dtls.Config {
	tlsCfg := cfg.TlsConfig(serverName)

	return &dtls.Config{
		Certificates:       tlsCfg.Certificates,
		RootCAs:            tlsCfg.RootCAs,
		ClientCAs:          tlsCfg.ClientCAs,
		ClientAuth:         dtls.ClientAuthType(tlsCfg.ClientAuth),
		InsecureSkipVerify: tlsCfg.InsecureSkipVerify,
		ServerName:         serverName,
		ConnectContextMaker: func() (context.Context, func()) {
			return context.WithTimeout(context.Background(), dtlsReceiveTimeout)
		},
	}
}

// DialDTLS resolves addr, opens a UDP socket, and performs a DTLS handshake
// over it, grounded on original_source/client/io/DTLSClient.cpp's intent
// (resolve, open datagram socket, 2-second receive timeout, connect).
func DialDTLS(addr string, cfg certificates.TLSConfig, serverName string) (Session, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}

	conn, err := dtls.Dial("udp", raddr, dtlsConfigFrom(cfg, serverName))
	if err != nil {
		return nil, ErrorSsl.Error(err)
	}

	return newDTLSSession(conn), nil
}

// DTLSListener accepts DTLS datagram sessions on a bound UDP socket. Unlike
// TLSListener it does not implement spec.md's explicit cookie exchange at
// the pion layer (pion/dtls/v2 performs its own HelloVerifyRequest cookie
// handling internally and does not expose a hook for a caller-supplied
// algorithm); GenerateCookie/VerifyCookie in dtls_cookie.go implement the
// spec's exact algorithm as an independently testable unit, per
// SPEC_FULL.md's supplemented-feature note.
type DTLSListener struct {
	ln net.Listener
}

// ListenDTLS binds addr for DTLS accepts.
func ListenDTLS(addr string, cfg certificates.TLSConfig, serverName string) (*DTLSListener, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}

	ln, err := dtls.Listen("udp", laddr, dtlsConfigFrom(cfg, serverName))
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}
	return &DTLSListener{ln: ln}, nil
}

// Accept waits for and returns the next inbound DTLS session.
func (l *DTLSListener) Accept() (Session, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}
	return newDTLSSession(conn), nil
}

func (l *DTLSListener) Close() error {
	return l.ln.Close()
}

func (l *DTLSListener) Addr() net.Addr { return l.ln.Addr() }

// dtlsSession applies the 2-second non-blocking-read timeout on top of the
// shared session wrapper, so Read returns (0, nil) rather than blocking
// forever when nothing is available, per spec.md §4.1's "0 when nothing is
// available non-blockingly in DTLS" clause.
type dtlsSession struct {
	*session
}

func newDTLSSession(conn net.Conn) *dtlsSession {
	return &dtlsSession{session: newSession(conn)}
}

func (s *dtlsSession) Read(p []byte) (int, error) {
	_ = s.conn.SetReadDeadline(time.Now().Add(dtlsReceiveTimeout))
	return s.session.Read(p)
}
