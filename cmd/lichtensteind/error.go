package main

import "github.com/tristanseifert/lichtenstein-node/errors"

// Error kinds raised while loading process configuration, grounded on
// nabbar-golib/config/errors.go's ErrorParamEmpty under the same
// MinPkgConfig range.
const (
	ErrorMissingUUID errors.CodeError = iota + errors.MinPkgConfig
	ErrorInvalidUUID
	ErrorMissingListenAddr
	ErrorMissingStorePath
	ErrorInvalidTLSConfig
)

func init() {
	errors.RegisterIdFctMessage(ErrorMissingUUID, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorMissingUUID:
		return "config: node uuid is required"
	case ErrorInvalidUUID:
		return "config: node uuid is not a valid RFC 4122 UUID"
	case ErrorMissingListenAddr:
		return "config: listenAddr is required"
	case ErrorMissingStorePath:
		return "config: store.path is required"
	case ErrorInvalidTLSConfig:
		return "config: tls configuration is invalid"
	}

	return ""
}
