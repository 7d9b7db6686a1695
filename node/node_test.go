package node

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tristanseifert/lichtenstein-node/certificates"
	"github.com/tristanseifert/lichtenstein-node/errors"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore { return &fakeStore{data: map[string]string{}} }

func (f *fakeStore) Get(key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}
func (f *fakeStore) Set(key, value string) error { f.data[key] = value; return nil }
func (f *fakeStore) Delete(key string) error      { delete(f.data, key); return nil }
func (f *fakeStore) Close() error                 { return nil }

func TestNewRejectsNilUUID(t *testing.T) {
	_, err := New(Config{Store: newFakeStore(), TLSConfig: certificates.New()})
	if err == nil || !errors.IsCode(err, ErrorNilUUID) {
		t.Fatalf("err = %v, want ErrorNilUUID", err)
	}
}

func TestNewRejectsMissingStore(t *testing.T) {
	_, err := New(Config{UUID: uuid.New(), TLSConfig: certificates.New()})
	if err == nil || !errors.IsCode(err, ErrorNoStore) {
		t.Fatalf("err = %v, want ErrorNoStore", err)
	}
}

func TestNewRejectsMissingTLSConfig(t *testing.T) {
	_, err := New(Config{UUID: uuid.New(), Store: newFakeStore()})
	if err == nil || !errors.IsCode(err, ErrorConfig) {
		t.Fatalf("err = %v, want ErrorConfig", err)
	}
}

func TestNewSucceedsWithMinimalConfig(t *testing.T) {
	n, err := New(Config{UUID: uuid.New(), Store: newFakeStore(), TLSConfig: certificates.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n.State() != StateStart {
		t.Fatalf("initial state = %v, want StateStart", n.State())
	}
}

func TestWaitForEventConsumesFlagOnce(t *testing.T) {
	n, err := New(Config{UUID: uuid.New(), Store: newFakeStore(), TLSConfig: certificates.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan struct{})
	go func() {
		n.waitForEvent()
		close(done)
	}()

	// Give the goroutine a chance to block on the condition variable
	// before the event is raised.
	time.Sleep(20 * time.Millisecond)
	n.setNextState(StateVerifyAdopt)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("waitForEvent did not return after setNextState")
	}

	if n.State() != StateVerifyAdopt {
		t.Fatalf("state = %v, want StateVerifyAdopt", n.State())
	}

	n.mu.Lock()
	pending := n.pendingEvent
	n.mu.Unlock()
	if pending {
		t.Fatal("pendingEvent flag was not consumed")
	}
}

func TestSetNextStateLastWriterWins(t *testing.T) {
	n, err := New(Config{UUID: uuid.New(), Store: newFakeStore(), TLSConfig: certificates.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n.setNextState(StateVerifyAdopt)
	n.setNextState(StateStartRT)

	n.mu.Lock()
	next := n.nextState
	n.mu.Unlock()
	if next != StateStartRT {
		t.Fatalf("nextState = %v, want StateStartRT (last writer wins)", next)
	}
}

func TestReloadRejectsWhileBusy(t *testing.T) {
	n, err := New(Config{UUID: uuid.New(), Store: newFakeStore(), TLSConfig: certificates.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n.setState(StateVerifyAdopt)

	if err := n.Reload(Config{TLSConfig: certificates.New()}); err == nil || !errors.IsCode(err, ErrorBusy) {
		t.Fatalf("Reload err = %v, want ErrorBusy", err)
	}
}

func TestReloadTriggersVerifyWhenIdle(t *testing.T) {
	n, err := New(Config{UUID: uuid.New(), Store: newFakeStore(), TLSConfig: certificates.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	n.setState(StateIdle)

	if err := n.Reload(Config{TLSConfig: certificates.New(), ListenAddr: ":0"}); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	n.mu.Lock()
	next := n.nextState
	pending := n.pendingEvent
	n.mu.Unlock()
	if next != StateVerifyAdopt || !pending {
		t.Fatalf("nextState = %v, pendingEvent = %v, want StateVerifyAdopt/true", next, pending)
	}
}

func TestVerifyFailsAndInvalidatesWhenServerHostMissing(t *testing.T) {
	fs := newFakeStore()
	n, err := New(Config{UUID: uuid.New(), Store: fs, TLSConfig: certificates.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := n.verify(); err == nil || !errors.IsCode(err, ErrorMissingField) {
		t.Fatalf("verify err = %v, want ErrorMissingField", err)
	}
	if got := fs.data["adoption.valid"]; got != "0" {
		t.Fatalf("adoption.valid = %q, want \"0\"", got)
	}
}
