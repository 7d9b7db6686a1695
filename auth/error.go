package auth

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised by this package. A failed handshake is always a
// ProtocolError per spec.md §7 ("framing, version, decode, unexpected
// message type, or HMAC mismatch").
const (
	ErrorUnexpectedMessage errors.CodeError = iota + errors.MinPkgAuth
	ErrorUnsupportedMethod
	ErrorUnknownHashFunction
	ErrorNonceMismatch
	ErrorHmacMismatch
	ErrorUUIDMismatch
	ErrorPeerRejected
	ErrorNonceGeneration
)

func init() {
	errors.RegisterIdFctMessage(ErrorUnexpectedMessage, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorUnexpectedMessage:
		return "auth: received unexpected message type"
	case ErrorUnsupportedMethod:
		return "auth: peer chose an unsupported authentication method"
	case ErrorUnknownHashFunction:
		return "auth: unknown HMAC hash function"
	case ErrorNonceMismatch:
		return "auth: received nonce does not match what was sent"
	case ErrorHmacMismatch:
		return "auth: received HMAC is incorrect"
	case ErrorUUIDMismatch:
		return "auth: peer UUID does not match the expected identity"
	case ErrorPeerRejected:
		return "auth: peer reported authentication failure"
	case ErrorNonceGeneration:
		return "auth: failed to generate nonce"
	}

	return ""
}
