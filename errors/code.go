package errors

import (
	"sort"
	"strconv"
)

// idMsgFct stores the mapping between a package's minimum CodeError (see
// modules.go) and the function that renders messages for its codes.
var idMsgFct = make(map[CodeError]Message)

// Message renders a human-readable string for a CodeError. Each package
// registers one via RegisterIdFctMessage, keyed by that package's MinPkg
// constant.
type Message func(code CodeError) (message string)

// CodeError is a numeric error classification, partitioned into per-package
// ranges by the MinPkg constants in modules.go.
type CodeError uint16

const (
	// UnknownError is the code for an error with no specific classification.
	UnknownError CodeError = 0

	// UNK_ERROR is an alias of UnknownError kept for call sites that predate
	// the rename.
	UNK_ERROR = UnknownError

	// UnknownMessage is the default message for UnknownError.
	UnknownMessage = "unknown error"

	// NullMessage represents an empty error message.
	NullMessage = ""
)

// Uint16 returns the CodeError value as a uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String returns the decimal representation of the code.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Message returns the registered message for c, or UnknownMessage if none
// is registered (or c is UnknownError).
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error builds an Error carrying this code, its registered message, and any
// given parent causes.
func (c CodeError) Error(parent ...error) Error {
	return New(c.Uint16(), c.Message(), parent...)
}

// RegisterIdFctMessage registers fct as the message function for every code
// at or above minCode, until the next registered boundary. Each package
// calls this once from an init() with its own MinPkg constant.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
	orderMapMessage()
}

// ExistInMapMessage reports whether code resolves to a registered message
// function that yields a non-empty message. Packages use this in their
// init() to detect a MinPkg collision before registering.
func ExistInMapMessage(code CodeError) bool {
	f, ok := idMsgFct[findCodeErrorInMapMessage(code)]
	return ok && f(code) != NullMessage
}

func getMapMessageKeys() []CodeError {
	keys := make([]CodeError, 0, len(idMsgFct))
	for k := range idMsgFct {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

func orderMapMessage() {
	res := make(map[CodeError]Message, len(idMsgFct))
	for _, k := range getMapMessageKeys() {
		res[k] = idMsgFct[k]
	}
	idMsgFct = res
}

// findCodeErrorInMapMessage returns the largest registered key that is
// <= code, i.e. the package range code falls into.
func findCodeErrorInMapMessage(code CodeError) CodeError {
	var res CodeError
	for _, k := range getMapMessageKeys() {
		if k <= code && k > res {
			res = k
		}
	}
	return res
}
