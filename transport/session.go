// Package transport implements the secure transport layer (component C1):
// stream TLS and datagram DTLS client/server sessions with a uniform
// read/write/pending/close contract, grounded on
// original_source/client/io/GenericTLSClient.{h,cpp} (OpenSSL-backed) and
// reimplemented against Go's crypto/tls and github.com/pion/dtls/v2.
package transport

import (
	"errors"
	"io"
	"net"
)

// Session is the symmetric read/write/pending/close contract every
// accepted or connected transport exposes, per spec.md §4.1. Both the TLS
// and DTLS sessions below satisfy it by wrapping a net.Conn, since
// *tls.Conn and *dtls.Conn both implement net.Conn.
type Session interface {
	// Write returns the number of bytes actually written. A short write
	// never happens on a healthy session; failures classify as SslError,
	// SystemError, or SessionClosed.
	Write(p []byte) (int, error)
	// Read returns 0, nil when nothing is available without blocking (the
	// DTLS case) or on a clean half-close; otherwise the same error
	// classes as Write.
	Read(p []byte) (int, error)
	// Pending reports bytes immediately available in the session's
	// internal buffer without a syscall. Go's TLS/DTLS stacks do not
	// expose this the way OpenSSL's SSL_pending does, so both
	// implementations here return 0; the method is kept to preserve the
	// C1 contract shape for callers and tests.
	Pending() int
	// Close performs an idempotent clean shutdown.
	Close() error

	RemoteAddr() net.Addr
}

// session wraps any net.Conn (TLS or DTLS) and translates its errors into
// the SystemError/SslError/SessionClosed taxonomy.
type session struct {
	conn   net.Conn
	closed bool
}

func newSession(conn net.Conn) *session {
	return &session{conn: conn}
}

func (s *session) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrorSessionClosed.Error(nil)
	}
	n, err := s.conn.Write(p)
	if err != nil {
		return n, classifyErr(err)
	}
	return n, nil
}

func (s *session) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrorSessionClosed.Error(nil)
	}
	n, err := s.conn.Read(p)
	if err != nil {
		if err == io.EOF {
			s.closed = true
			return n, nil
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			// A DTLS read timeout means "nothing available right now",
			// not a session failure, per spec.md §4.1.
			return 0, nil
		}
		return n, classifyErr(err)
	}
	return n, nil
}

func (s *session) Pending() int { return 0 }

func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

func (s *session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// classifyErr maps a low-level error into the SystemError/SslError kinds.
// A net.OpError wrapping a syscall-class error is SystemError; anything
// else from the TLS/DTLS stack is SslError.
func classifyErr(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrorSystem.Error(err)
	}
	return ErrorSsl.Error(err)
}
