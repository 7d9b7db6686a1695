package store

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised by this package, matching the SystemError taxonomy of
// spec.md §7 applied to the persistent key/value store.
const (
	ErrorOpen errors.CodeError = iota + errors.MinPkgStore
	ErrorGet
	ErrorSet
	ErrorDelete
	ErrorClose
	ErrorNotFound
)

func init() {
	errors.RegisterIdFctMessage(ErrorOpen, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorOpen:
		return "store: failed to open database"
	case ErrorGet:
		return "store: failed to read key"
	case ErrorSet:
		return "store: failed to write key"
	case ErrorDelete:
		return "store: failed to delete key"
	case ErrorClose:
		return "store: failed to close database"
	case ErrorNotFound:
		return "store: key not found"
	}

	return ""
}
