package transport

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised by this package, matching the SystemError/SslError/
// SessionClosed/ConfigError taxonomy of spec.md §7.
const (
	ErrorSystem errors.CodeError = iota + errors.MinPkgTransport
	ErrorSsl
	ErrorSessionClosed
	ErrorConfig
	ErrorCookieMismatch
)

func init() {
	errors.RegisterIdFctMessage(ErrorSystem, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorSystem:
		return "transport: system call failed"
	case ErrorSsl:
		return "transport: TLS/DTLS library error"
	case ErrorSessionClosed:
		return "transport: session is closed"
	case ErrorConfig:
		return "transport: invalid transport configuration"
	case ErrorCookieMismatch:
		return "transport: DTLS cookie verification failed"
	}

	return ""
}
