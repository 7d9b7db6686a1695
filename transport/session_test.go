package transport

import (
	"net"
	"testing"
	"time"

	liberr "github.com/tristanseifert/lichtenstein-node/errors"
)

func TestSessionWriteReadRoundTrip(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	sa := newSession(a)
	sb := newSession(b)

	done := make(chan struct{})
	go func() {
		defer close(done)
		n, err := sa.Write([]byte("hello"))
		if err != nil {
			t.Errorf("Write: %v", err)
		}
		if n != 5 {
			t.Errorf("Write n = %d, want 5", n)
		}
	}()

	buf := make([]byte, 5)
	n, err := sb.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(buf[:n]) != "hello" {
		t.Fatalf("Read = %q, want \"hello\"", buf[:n])
	}
	<-done
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	a, _ := net.Pipe()
	s := newSession(a)

	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestSessionOperationsAfterCloseReturnSessionClosed(t *testing.T) {
	a, _ := net.Pipe()
	s := newSession(a)
	_ = s.Close()

	if _, err := s.Write([]byte("x")); err == nil || !liberr.IsCode(err, ErrorSessionClosed) {
		t.Fatalf("Write after close err = %v, want ErrorSessionClosed", err)
	}
	if _, err := s.Read(make([]byte, 1)); err == nil || !liberr.IsCode(err, ErrorSessionClosed) {
		t.Fatalf("Read after close err = %v, want ErrorSessionClosed", err)
	}
}

func TestSessionReadCleanEOFMarksClosed(t *testing.T) {
	a, b := net.Pipe()
	s := newSession(a)

	go func() { _ = b.Close() }()

	n, err := s.Read(make([]byte, 4))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 0 {
		t.Fatalf("Read n = %d, want 0", n)
	}
}

func TestSessionPendingAlwaysZero(t *testing.T) {
	a, _ := net.Pipe()
	s := newSession(a)
	defer s.Close()
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", s.Pending())
	}
}

func TestSessionRemoteAddr(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	s := newSession(a)
	if s.RemoteAddr() == nil {
		t.Fatal("RemoteAddr() returned nil")
	}
}

func TestSessionReadTimeoutReturnsNoData(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	s := newSession(a)
	_ = a.SetReadDeadline(time.Now().Add(10 * time.Millisecond))

	n, err := s.Read(make([]byte, 4))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 0 {
		t.Fatalf("Read n = %d, want 0 on timeout", n)
	}
}
