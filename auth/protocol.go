// Package auth implements the HMAC challenge/response authentication
// handshake (spec.md §4.3, component C3), grounded on
// original_source/protocol/HmacChallengeHandler.{h,cpp} and
// original_source/client/helpers/HmacChallengeHandler.{h,cpp}. The original
// has two near-identical classes, one used from the client's outbound
// verification path and one from the server's inbound adoption path; this
// port collapses them into a single Protocol usable in either Role, which
// is how the original's logic is actually organized once you look past the
// duplication (both drive the same four-message exchange, just starting
// from opposite ends).
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"fmt"
	"hash"
	"io"

	"github.com/google/uuid"
	"github.com/jzelinskie/whirlpool"

	"github.com/tristanseifert/lichtenstein-node/errors"
	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
	"github.com/tristanseifert/lichtenstein-node/wire"
)

// MethodName is the sole authentication method this node advertises and
// accepts, per spec.md §6.
const MethodName = "me.tseifert.lichtenstein.auth.hmac"

// NonceLength is the number of random bytes a responder generates for the
// challenge, per spec.md §6.
const NonceLength = 64

// Role distinguishes which end of the handshake a Protocol instance plays.
type Role int

const (
	// RoleInitiator sends AuthHello first and proves possession of the
	// shared secret (the outbound/client-verification path).
	RoleInitiator Role = iota
	// RoleResponder issues the challenge and verifies the proof (the
	// inbound/adoption path).
	RoleResponder
)

// Protocol drives one HMAC challenge/response handshake over a framed
// transport. Both sides must agree on UUID and Secret beforehand.
type Protocol struct {
	Role   Role
	UUID   uuid.UUID
	Secret []byte
}

// Authenticate runs the four-message exchange to completion on rw. An
// initiator returns nil only once the peer has reported
// AuthState.success == true; a responder returns nil once it has checked
// the proof and sent AuthState.success == true itself.
func (p *Protocol) Authenticate(rw io.ReadWriter) error {
	if p.Role == RoleInitiator {
		return p.runInitiator(rw)
	}
	return p.runResponder(rw)
}

func (p *Protocol) runInitiator(rw io.ReadWriter) error {
	hello := &lichtenstein.AuthHello{
		UUID:             p.UUID[:],
		SupportedMethods: []string{MethodName},
	}
	if err := wire.SendMessage(rw, hello); err != nil {
		return err
	}

	any, err := wire.ReadMessage(rw)
	if err != nil {
		return err
	}

	switch any.MessageName() {
	case "Error":
		return peerError(any)
	case "AuthChallenge":
		challenge := &lichtenstein.AuthChallenge{}
		if err := wire.Unpack(any, challenge); err != nil {
			return err
		}
		if err := p.respondToChallenge(rw, challenge); err != nil {
			return err
		}
	default:
		return ErrorUnexpectedMessage.Error(
			unexpectedMessage(any.MessageName(), "Error or AuthChallenge"))
	}

	return p.awaitState(rw)
}

func (p *Protocol) respondToChallenge(rw io.ReadWriter, challenge *lichtenstein.AuthChallenge) error {
	if challenge.Method != MethodName {
		return ErrorUnsupportedMethod.Error(unexpectedMessage(challenge.Method, MethodName))
	}
	if challenge.Payload == nil {
		return ErrorUnexpectedMessage.Error(unexpectedMessage("<nil>", "HmacAuthChallenge"))
	}

	digest, err := p.computeHmac(challenge.Payload.Function, challenge.Payload.Nonce)
	if err != nil {
		return err
	}

	response := &lichtenstein.AuthResponse{
		Payload: &lichtenstein.HmacAuthResponse{
			Hmac:  digest,
			Nonce: challenge.Payload.Nonce,
		},
	}
	return wire.SendMessage(rw, response)
}

func (p *Protocol) awaitState(rw io.ReadWriter) error {
	any, err := wire.ReadMessage(rw)
	if err != nil {
		return err
	}

	switch any.MessageName() {
	case "Error":
		return peerError(any)
	case "AuthState":
		state := &lichtenstein.AuthState{}
		if err := wire.Unpack(any, state); err != nil {
			return err
		}
		if !state.Success {
			return ErrorPeerRejected.Error(unexpectedMessage(state.ErrorDetails, ""))
		}
		return nil
	default:
		return ErrorUnexpectedMessage.Error(unexpectedMessage(any.MessageName(), "Error or AuthState"))
	}
}

func (p *Protocol) runResponder(rw io.ReadWriter) error {
	any, err := wire.ReadMessage(rw)
	if err != nil {
		return err
	}
	if any.MessageName() != "AuthHello" {
		return ErrorUnexpectedMessage.Error(unexpectedMessage(any.MessageName(), "AuthHello"))
	}

	hello := &lichtenstein.AuthHello{}
	if err := wire.Unpack(any, hello); err != nil {
		return err
	}
	if err := p.verifyHello(hello); err != nil {
		_ = wire.SendException(rw, err)
		return err
	}

	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return ErrorNonceGeneration.Error(err)
	}

	// WHIRLPOOL is the default chosen by a responder, per spec.md §6.
	if err := wire.SendMessage(rw, &lichtenstein.AuthChallenge{
		Method: MethodName,
		Payload: &lichtenstein.HmacAuthChallenge{
			Function: lichtenstein.HashWHIRLPOOL,
			Nonce:    nonce,
		},
	}); err != nil {
		return err
	}

	expected, err := p.computeHmac(lichtenstein.HashWHIRLPOOL, nonce)
	if err != nil {
		return err
	}

	if err := p.checkResponse(rw, expected, nonce); err != nil {
		if isMismatch(err) {
			_ = wire.SendMessage(rw, &lichtenstein.AuthState{
				Success:      false,
				ErrorDetails: err.Error(),
			})
		} else {
			_ = wire.SendException(rw, err)
		}
		return err
	}

	return wire.SendMessage(rw, &lichtenstein.AuthState{Success: true})
}

func (p *Protocol) verifyHello(hello *lichtenstein.AuthHello) error {
	if len(hello.UUID) != 16 {
		return ErrorUUIDMismatch.Error(unexpectedMessage("<malformed>", p.UUID.String()))
	}
	if !hmac.Equal(hello.UUID, p.UUID[:]) {
		got, _ := uuid.FromBytes(hello.UUID)
		return ErrorUUIDMismatch.Error(unexpectedMessage(got.String(), p.UUID.String()))
	}

	for _, m := range hello.SupportedMethods {
		if m == MethodName {
			return nil
		}
	}
	return ErrorUnsupportedMethod.Error(unexpectedMessage("", MethodName))
}

func (p *Protocol) checkResponse(rw io.ReadWriter, expected, nonce []byte) error {
	any, err := wire.ReadMessage(rw)
	if err != nil {
		return err
	}

	switch any.MessageName() {
	case "Error":
		return peerError(any)
	case "AuthResponse":
		response := &lichtenstein.AuthResponse{}
		if err := wire.Unpack(any, response); err != nil {
			return err
		}
		if response.Payload == nil {
			return ErrorUnexpectedMessage.Error(unexpectedMessage("<nil>", "HmacAuthResponse"))
		}
		if !hmac.Equal(response.Payload.Nonce, nonce) {
			return ErrorNonceMismatch.Error(nil)
		}
		if !hmac.Equal(response.Payload.Hmac, expected) {
			return ErrorHmacMismatch.Error(nil)
		}
		return nil
	default:
		return ErrorUnexpectedMessage.Error(unexpectedMessage(any.MessageName(), "Error or AuthResponse"))
	}
}

// computeHmac reproduces HmacChallengeHandler::doHmac: the keyed hash of the
// 16 raw UUID bytes followed directly by the nonce, with no length prefix
// between them.
func (p *Protocol) computeHmac(fn lichtenstein.HashFunction, nonce []byte) ([]byte, error) {
	var newHash func() hash.Hash

	switch fn {
	case lichtenstein.HashSHA1:
		newHash = sha1.New
	case lichtenstein.HashWHIRLPOOL:
		newHash = whirlpool.New
	default:
		return nil, ErrorUnknownHashFunction.Error(unexpectedMessage(fn.String(), "SHA1 or WHIRLPOOL"))
	}

	mac := hmac.New(newHash, p.Secret)
	mac.Write(p.UUID[:])
	mac.Write(nonce)
	return mac.Sum(nil), nil
}

func isMismatch(err error) bool {
	return errors.IsCode(err, ErrorNonceMismatch) || errors.IsCode(err, ErrorHmacMismatch)
}

func peerError(any *lichtenstein.Any) error {
	e := &lichtenstein.Error{}
	if err := wire.Unpack(any, e); err != nil {
		return err
	}
	return ErrorPeerRejected.Error(fmt.Errorf("peer sent error: %q", e.Description))
}

func unexpectedMessage(got, want string) error {
	if want == "" {
		return fmt.Errorf("%s", got)
	}
	return fmt.Errorf("got %q, wanted %q", got, want)
}
