package wire

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised by this package, all under the ProtocolError taxonomy
// of spec.md §7: framing, version, and decode failures. Fatal per session,
// non-fatal to the process.
const (
	ErrorShortRead errors.CodeError = iota + errors.MinPkgWire
	ErrorFrameTooLarge
	ErrorDecode
	ErrorVersionMismatch
	ErrorShortWrite
)

func init() {
	errors.RegisterIdFctMessage(ErrorShortRead, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorShortRead:
		return "wire: short read on frame"
	case ErrorFrameTooLarge:
		return "wire: declared frame length exceeds maximum"
	case ErrorDecode:
		return "wire: could not decode envelope"
	case ErrorVersionMismatch:
		return "wire: envelope protocol version mismatch"
	case ErrorShortWrite:
		return "wire: short write on frame"
	}

	return ""
}
