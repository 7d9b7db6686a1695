package node

import (
	"fmt"
	"sync"

	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
)

// Handler processes one decoded message for a given connection, replying
// on rw as needed. It returns a HandlerError-class error (non-fatal to the
// session, per spec.md §7) or a ProtocolError-class error (fatal to the
// session) — callers distinguish the two with errors.IsCode against the
// kinds each handler's own error package defines.
type Handler func(n *Node, conn *connState, any *lichtenstein.Any) error

// registry is the process-wide, read-only-after-init map from bare message
// type name to handler, per spec.md §4.5: "populated by module-
// initialization side effects (each handler declares its registration)."
var (
	registryMu sync.Mutex
	registry   = map[string]Handler{}
)

// RegisterHandler installs h for messageName. Intended to be called from
// an init() func, mirroring the self-registration pattern spec.md
// describes ("each handler declares its registration"). Duplicate
// registration for the same name is a programming error, so it panics
// rather than returning a value no init() func could act on anyway.
func RegisterHandler(messageName string, h Handler) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[messageName]; exists {
		panic(fmt.Sprintf("node: duplicate handler registration for %q", messageName))
	}
	registry[messageName] = h
}

func lookupHandler(messageName string) (Handler, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()

	h, ok := registry[messageName]
	return h, ok
}
