package node

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised by this package: the ConfigError/HandlerError taxonomy
// of spec.md §7 that belongs to the node lifecycle rather than any single
// transport/wire/auth layer.
const (
	ErrorConfig errors.CodeError = iota + errors.MinPkgNode
	ErrorNilUUID
	ErrorNoStore
	ErrorAlreadyAdopted
	ErrorMissingField
	ErrorBusy
	ErrorUnknownType
	ErrorDuplicateHandler
)

func init() {
	errors.RegisterIdFctMessage(ErrorConfig, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorConfig:
		return "node: invalid configuration"
	case ErrorNilUUID:
		return "node: node UUID is nil"
	case ErrorNoStore:
		return "node: no data store configured"
	case ErrorAlreadyAdopted:
		return "node: already adopted"
	case ErrorMissingField:
		return "node: required field missing from request"
	case ErrorBusy:
		return "node: busy, try again"
	case ErrorUnknownType:
		return "node: no handler registered for message type"
	case ErrorDuplicateHandler:
		return "node: duplicate handler registration"
	}

	return ""
}
