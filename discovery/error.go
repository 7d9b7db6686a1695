package discovery

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised by this package, matching the SystemError/ProtocolError
// taxonomy of spec.md §7 applied to the mDNS transport.
const (
	ErrorSystem errors.CodeError = iota + errors.MinPkgDiscovery
	ErrorMalformedRecord
	ErrorResolveTimeout
	ErrorClosed
)

func init() {
	errors.RegisterIdFctMessage(ErrorSystem, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorSystem:
		return "discovery: system call failed"
	case ErrorMalformedRecord:
		return "discovery: malformed mDNS record"
	case ErrorResolveTimeout:
		return "discovery: resolve timed out"
	case ErrorClosed:
		return "discovery: browser or advertiser is closed"
	}

	return ""
}
