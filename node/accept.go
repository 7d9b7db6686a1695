package node

import (
	"github.com/tristanseifert/lichtenstein-node/errors"
	"github.com/tristanseifert/lichtenstein-node/logger"
	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
	"github.com/tristanseifert/lichtenstein-node/transport"
	"github.com/tristanseifert/lichtenstein-node/wire"
)

// runAcceptLoop is the dedicated accept-loop thread of spec.md §5. It
// accepts sessions on the control-plane TLS listener until the listener
// is closed (by Stop), per spec.md §7: "the accept loop catches per-accept
// errors, logs, and continues; only a listener-socket close exits the
// loop."
func (n *Node) runAcceptLoop() {
	defer n.wg.Done()

	for {
		sess, err := n.listener.Accept()
		if err != nil {
			if n.isShuttingDown() {
				return
			}
			if errors.IsCode(err, transport.ErrorSystem) {
				return
			}
			n.cfg.Log.Warn("accept failed", logger.Field{Key: "error", Value: err.Error()})
			continue
		}

		n.metrics.acceptedSessions.Inc()

		c := &connState{sess: sess, node: n}
		n.connsMu.Lock()
		n.conns[c] = struct{}{}
		n.connsMu.Unlock()

		n.wg.Add(1)
		go n.runConn(c)
	}
}

// runConn is the per-accepted-session handler thread of spec.md §5. It
// reads framed messages in a loop, dispatching each to the handler
// registered for its type URL, per spec.md §4.5's accept-loop contract.
func (n *Node) runConn(c *connState) {
	defer n.wg.Done()
	defer func() {
		_ = c.sess.Close()
		n.connsMu.Lock()
		delete(n.conns, c)
		n.connsMu.Unlock()
	}()

	for {
		any, err := wire.ReadMessage(c.sess)
		if err != nil {
			if !errors.IsCode(err, transport.ErrorSessionClosed) {
				n.cfg.Log.Debug("session reader stopped", logger.Field{Key: "error", Value: err.Error()})
			}
			return
		}

		h, ok := lookupHandler(any.MessageName())
		if !ok {
			_ = wire.SendException(c.sess, ErrorUnknownType.Error(nil))
			return
		}

		if err := h(n, c, any); err != nil {
			if isProtocolFatal(err) {
				_ = wire.SendException(c.sess, err)
				return
			}
			// HandlerError: reported to the peer, session continues.
			_ = wire.SendException(c.sess, err)
		}
	}
}

// isProtocolFatal reports whether err is fatal to the session, per
// spec.md §7's "protocol-level errors break the loop; handler errors do
// not." Handlers report application-level failures through the node
// package's own HandlerError-class codes (ErrorAlreadyAdopted,
// ErrorMissingField); anything else is treated as protocol-fatal.
func isProtocolFatal(err error) bool {
	return !errors.IsCode(err, ErrorAlreadyAdopted) && !errors.IsCode(err, ErrorMissingField)
}

// runRealtimeReader is the "one reader thread per outbound realtime DTLS
// session" of spec.md §5: it loops read_message and dispatches realtime
// messages, framed exactly as control-plane messages, per spec.md §4.5
// step 4 of the realtime-start algorithm.
func (n *Node) runRealtimeReader(sess transport.Session) {
	defer n.wg.Done()

	for {
		any, err := wire.ReadMessage(sess)
		if err != nil {
			return
		}
		n.dispatchRealtime(any)

		if n.isShuttingDown() {
			return
		}
	}
}

// dispatchRealtime hands a decoded realtime-channel message to its
// handler, the same registry the control plane uses (spec.md §4.5: "any
// read/write on a transport" is symmetric between the two channels).
// Pixel-frame rendering itself is out of scope (spec.md §1's "the node is
// treated as a sink for pixel frames but the sink itself is outside this
// spec"), so an unrecognized realtime message type is logged and dropped
// rather than tearing down the session.
func (n *Node) dispatchRealtime(any *lichtenstein.Any) {
	h, ok := lookupHandler(any.MessageName())
	if !ok {
		n.cfg.Log.Debug("no handler for realtime message", logger.Field{Key: "type", Value: any.MessageName()})
		return
	}

	c := &connState{sess: n.currentRT(), node: n}
	if err := h(n, c, any); err != nil {
		n.cfg.Log.Warn("realtime handler error", logger.Field{Key: "error", Value: err.Error()})
	}
}

func (n *Node) currentRT() transport.Session {
	n.connMu.Lock()
	defer n.connMu.Unlock()
	return n.rtConn
}
