// Package node implements the top-level node lifecycle state machine
// (spec.md §4.5, component C5): it sequences discovery, adoption,
// verification, realtime-channel establishment, idle, and shutdown, and
// orchestrates C1-C4. Grounded on original_source/client/Client.{h,cpp}
// (the state machine, accept loop, and handler dispatch all originate
// there) with the backoff policy and Reload operation added per
// SPEC_FULL.md (the former a design requirement the source never
// implemented, the latter a feature original_source has that spec.md's
// distillation dropped).
package node

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tristanseifert/lichtenstein-node/auth"
	"github.com/tristanseifert/lichtenstein-node/certificates"
	"github.com/tristanseifert/lichtenstein-node/discovery"
	"github.com/tristanseifert/lichtenstein-node/logger"
	"github.com/tristanseifert/lichtenstein-node/store"
	"github.com/tristanseifert/lichtenstein-node/transport"
)

// Config configures a Node. UUID and Store are immutable for the node's
// lifetime once Start has been called, per spec.md §3's Lifecycle section.
type Config struct {
	UUID          uuid.UUID
	Store         store.DataStore
	TLSConfig     certificates.TLSConfig
	ServerName    string
	ListenAddr    string
	ClientVersion string
	Advertiser    *discovery.Advertiser
	Log           logger.Logger
}

// connState is a per-accepted-session handler object, owned by the accept
// loop's session list per spec.md §3/§9 ("per-session handler objects live
// in a container owned by the accept loop; they reference the parent node
// via a non-owning handle").
type connState struct {
	sess transport.Session
	node *Node
}

// Node is the top-level lifecycle state machine plus its accept loop and
// realtime reader, per spec.md §2 component C5.
type Node struct {
	cfg Config

	mu           sync.Mutex
	cond         *sync.Cond
	state        State
	nextState    State
	pendingEvent bool
	shutdownFlag bool
	attempt      int
	rng          *rand.Rand

	listener *transport.TLSListener
	connsMu  sync.Mutex
	conns    map[*connState]struct{}

	// connMu guards both sessions below: ctrlConn is the long-lived
	// control-plane TLS session opened by verify() and held for the
	// node's lifetime (spec.md §4.5 step 5); rtConn is the realtime DTLS
	// session opened by startRealtime() and read by runRealtimeReader.
	connMu   sync.Mutex
	ctrlConn transport.Session
	rtConn   transport.Session

	metrics *metrics

	wg sync.WaitGroup
}

// New validates cfg and constructs a Node, without starting it. A nil
// UUID or missing store are ConfigError-class failures per spec.md §7
// ("invalid inputs before any I/O... fatal at startup").
func New(cfg Config) (*Node, error) {
	if cfg.UUID == uuid.Nil {
		return nil, ErrorNilUUID.Error(nil)
	}
	if cfg.Store == nil {
		return nil, ErrorNoStore.Error(nil)
	}
	if cfg.TLSConfig == nil {
		return nil, ErrorConfig.Error(nil)
	}
	if cfg.Log == nil {
		cfg.Log = logger.NewNop()
	}

	n := &Node{
		cfg:     cfg,
		state:   StateStart,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		conns:   map[*connState]struct{}{},
		metrics: newMetrics(),
	}
	n.cond = sync.NewCond(&n.mu)

	return n, nil
}

// Metrics exposes the node's counters; their prometheus registry is
// returned by the result's Registry method.
func (n *Node) Metrics() *metrics { return n.metrics }

// State returns the current lifecycle state. Per spec.md §5 this is a
// stale snapshot the instant it is returned; callers MUST NOT depend on
// its freshness.
func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Start opens the control-plane listener, begins advertising over mDNS if
// configured, and starts the state-machine and accept-loop threads, per
// spec.md §3's Lifecycle ("state-machine thread and accept-loop: created
// in start(), joined in stop()").
func (n *Node) Start() error {
	ln, err := transport.ListenTLS(n.cfg.ListenAddr, n.cfg.TLSConfig, n.cfg.ServerName)
	if err != nil {
		return err
	}
	n.listener = ln

	if n.cfg.Advertiser != nil {
		if err := n.cfg.Advertiser.StartAdvertising(); err != nil {
			_ = ln.Close()
			return err
		}
	}

	n.wg.Add(2)
	go n.runStateMachine()
	go n.runAcceptLoop()

	return nil
}

// Stop sets the shutdown flag, transitions to SHUTDOWN, signals the
// condition variable, and joins the state-machine and accept-loop
// threads, per spec.md §5's cancellation semantics.
func (n *Node) Stop() {
	n.mu.Lock()
	if n.shutdownFlag {
		n.mu.Unlock()
		return
	}
	n.shutdownFlag = true
	n.nextState = StateShutdown
	n.pendingEvent = true
	n.cond.Broadcast()
	n.mu.Unlock()

	if n.listener != nil {
		_ = n.listener.Close()
	}
	if n.cfg.Advertiser != nil {
		_ = n.cfg.Advertiser.StopAdvertising()
	}

	n.connMu.Lock()
	if n.ctrlConn != nil {
		_ = n.ctrlConn.Close()
	}
	if n.rtConn != nil {
		_ = n.rtConn.Close()
	}
	n.connMu.Unlock()

	n.wg.Wait()
}

// Reload re-reads listen/certificate configuration and, if the node is
// IDLE, re-validates adoption; it is a no-op returning ErrorBusy while
// VERIFY_ADOPT/START_RT are in flight. Added per SPEC_FULL.md supplement
// item 1, grounded on original_source/client/Client.h's reload().
func (n *Node) Reload(cfg Config) error {
	n.mu.Lock()
	switch n.state {
	case StateVerifyAdopt, StateStartRT:
		n.mu.Unlock()
		return ErrorBusy.Error(nil)
	}

	n.cfg.TLSConfig = cfg.TLSConfig
	n.cfg.ListenAddr = cfg.ListenAddr
	n.cfg.ServerName = cfg.ServerName

	idle := n.state == StateIdle
	n.mu.Unlock()

	if idle {
		n.setNextState(StateVerifyAdopt)
	}
	return nil
}

// setNextState raises the external event spec.md §4.5's transition table
// describes ("IDLE -- external setNextState(S) --> S"), waking the
// state-machine thread if it is blocked in IDLE.
func (n *Node) setNextState(s State) {
	n.mu.Lock()
	n.nextState = s
	n.pendingEvent = true
	n.cond.Broadcast()
	n.mu.Unlock()
}

func (n *Node) setState(s State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}

func (n *Node) isShuttingDown() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shutdownFlag
}

// runStateMachine drives START/IDLE/VERIFY_ADOPT/START_RT/SHUTDOWN, per
// spec.md §4.5's transition table. It is the single state-machine thread
// spec.md §5 requires to exist.
func (n *Node) runStateMachine() {
	defer n.wg.Done()

	for {
		switch n.State() {
		case StateStart:
			adopted, err := store.IsAdopted(n.cfg.Store)
			if err != nil {
				adopted = false
			}
			if adopted {
				n.setState(StateVerifyAdopt)
			} else {
				n.setState(StateIdle)
			}

		case StateIdle:
			n.waitForEvent()

		case StateVerifyAdopt:
			if err := n.verify(); err != nil {
				n.metrics.verifyFailures.Inc()
				n.cfg.Log.Warn("adoption verification failed", logger.Field{Key: "error", Value: err.Error()})

				delay := backoffDelay(n.attempt, n.rng)
				n.attempt++
				n.setState(StateIdle)

				if n.isShuttingDown() {
					n.setState(StateShutdown)
					continue
				}
				time.Sleep(delay)
			} else {
				n.attempt = 0
				n.setState(StateStartRT)
			}

		case StateStartRT:
			if err := n.startRealtime(); err != nil {
				n.cfg.Log.Warn("realtime channel start failed", logger.Field{Key: "error", Value: err.Error()})
				n.setState(StateIdle)
			} else {
				n.setState(StateIdle)
			}
			if n.isShuttingDown() {
				n.setState(StateShutdown)
			}

		case StateShutdown:
			n.teardownConns()
			return
		}
	}
}

// waitForEvent implements IDLE's condition-variable wait, per spec.md
// §4.5: "blocks on a condition variable until an event flag is raised.
// Exactly one event raises the flag per wakeup; the flag is consumed
// under the lock. Spurious wakeups return to waiting."
func (n *Node) waitForEvent() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for !n.pendingEvent {
		n.cond.Wait()
	}
	n.pendingEvent = false
	n.state = n.nextState
}

// verify implements spec.md §4.5's verification algorithm.
func (n *Node) verify() error {
	host, ok, err := n.cfg.Store.Get(store.KeyServerHost)
	if err != nil || !ok {
		_ = store.InvalidateAdoption(n.cfg.Store)
		return ErrorMissingField.Error(err)
	}
	port, ok, err := n.cfg.Store.Get(store.KeyServerPort)
	if err != nil || !ok {
		_ = store.InvalidateAdoption(n.cfg.Store)
		return ErrorMissingField.Error(err)
	}

	sess, err := transport.DialTLS(host+":"+port, n.cfg.TLSConfig, n.cfg.ServerName)
	if err != nil {
		_ = store.InvalidateAdoption(n.cfg.Store)
		return err
	}

	secret, ok, err := n.cfg.Store.Get(store.KeyAdoptionSecret)
	if err != nil || !ok {
		_ = sess.Close()
		_ = store.InvalidateAdoption(n.cfg.Store)
		return ErrorMissingField.Error(err)
	}

	proto := &auth.Protocol{Role: auth.RoleInitiator, UUID: n.cfg.UUID, Secret: []byte(secret)}
	if err := proto.Authenticate(sess); err != nil {
		n.metrics.authFailures.Inc()
		_ = sess.Close()
		_ = store.InvalidateAdoption(n.cfg.Store)
		return err
	}

	n.connMu.Lock()
	n.ctrlConn = sess
	n.connMu.Unlock()

	n.metrics.adoptionSuccesses.Inc()
	return nil
}

// startRealtime implements spec.md §4.5's realtime-start algorithm.
func (n *Node) startRealtime() error {
	host, ok, err := n.cfg.Store.Get(store.KeyRTHost)
	if err != nil || !ok {
		_ = store.InvalidateAdoption(n.cfg.Store)
		return ErrorMissingField.Error(err)
	}
	port, ok, err := n.cfg.Store.Get(store.KeyRTPort)
	if err != nil || !ok {
		_ = store.InvalidateAdoption(n.cfg.Store)
		return ErrorMissingField.Error(err)
	}

	sess, err := transport.DialDTLS(host+":"+port, n.cfg.TLSConfig, n.cfg.ServerName)
	if err != nil {
		return err
	}

	secretStr, _, _ := n.cfg.Store.Get(store.KeyAdoptionSecret)
	proto := &auth.Protocol{Role: auth.RoleInitiator, UUID: n.cfg.UUID, Secret: []byte(secretStr)}
	if err := proto.Authenticate(sess); err != nil {
		n.metrics.authFailures.Inc()
		_ = sess.Close()
		return err
	}

	n.connMu.Lock()
	n.rtConn = sess
	n.connMu.Unlock()

	n.wg.Add(1)
	go n.runRealtimeReader(sess)

	return nil
}

func (n *Node) teardownConns() {
	n.connsMu.Lock()
	for c := range n.conns {
		_ = c.sess.Close()
	}
	n.connsMu.Unlock()
}
