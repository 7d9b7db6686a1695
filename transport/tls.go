package transport

import (
	"crypto/tls"
	"net"

	"github.com/tristanseifert/lichtenstein-node/certificates"
)

// DialTLS resolves addr, opens a TCP connection, and performs a TLS
// handshake against it, grounded on
// original_source/client/io/GenericTLSClient.cpp's resolveHost + SSL
// handshake sequence. Go's crypto/tls already provides the "Wants-Read/
// Wants-Write invisible to callers" auto-retry semantics spec.md §4.1
// asks for: Conn.Read/Write block internally until the handshake can make
// progress.
func DialTLS(addr string, cfg certificates.TLSConfig, serverName string) (Session, error) {
	tlsCfg := cfg.TlsConfig(serverName)

	conn, err := tls.Dial("tcp", addr, tlsCfg)
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}
	return newSession(conn), nil
}

// TLSListener accepts TLS connections on a pre-bound listening socket, one
// Session per accepted peer, mirroring GenericTLSServer's accept loop.
type TLSListener struct {
	ln net.Listener
}

// ListenTLS binds addr and wraps it for TLS accepts.
func ListenTLS(addr string, cfg certificates.TLSConfig, serverName string) (*TLSListener, error) {
	tlsCfg := cfg.TlsConfig(serverName)

	ln, err := tls.Listen("tcp", addr, tlsCfg)
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}
	return &TLSListener{ln: ln}, nil
}

// Accept waits for and returns the next inbound session. The handshake
// itself happens lazily on first Read/Write of the returned Session,
// matching *tls.Conn's behavior.
func (l *TLSListener) Accept() (Session, error) {
	conn, err := l.ln.Accept()
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}
	return newSession(conn), nil
}

// Close stops accepting new connections; in-flight sessions are
// unaffected, matching spec.md §5's "only a listener-socket close exits
// the [accept] loop" rule — closing here is what causes that exit.
func (l *TLSListener) Close() error {
	return l.ln.Close()
}

func (l *TLSListener) Addr() net.Addr { return l.ln.Addr() }
