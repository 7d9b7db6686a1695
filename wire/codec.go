// Package wire implements the length-prefixed message framing described in
// spec.md §4.2 (component C2): a 4-byte big-endian length followed by
// exactly that many bytes of protobuf payload, the payload being a
// lichtenstein.Envelope{version, payload}.
//
// It is the Go equivalent of original_source/protocol/MessageIO.{h,cpp}: the
// wire struct there (protocol/WireMessage.h) is a packed
// `{uint32_t length; char payload[];}`, which is exactly the framing
// implemented by ReadMessage/SendMessage below.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
)

// ProtocolVersion is the process-wide PROTOCOL_VERSION constant from
// spec.md §6. Every envelope sent or accepted must carry this value.
const ProtocolVersion uint32 = 1

// MaxFrameLength bounds the declared payload length of an incoming frame.
// original_source's MessageIO::readMessage has no such bound; it is added
// here so a corrupt or hostile length prefix cannot force an unbounded
// allocation before the declared-vs-actual check in spec.md's
// "Length-prefix integrity" property can run.
const MaxFrameLength = 16 * 1024 * 1024

const lengthPrefixSize = 4

// SendMessage wraps m in an Envelope carrying ProtocolVersion, frames it
// with a big-endian length prefix, and writes the concatenation in a single
// Write call, matching MessageIO::sendMessage's all-or-nothing semantics
// (spec.md §4.2: "no retry — sessions either write a full frame or the
// session is unusable").
func SendMessage(w io.Writer, m lichtenstein.Message) error {
	env := &lichtenstein.Envelope{
		Version: ProtocolVersion,
		Payload: lichtenstein.PackAny(m),
	}

	payload := env.Marshal()
	if len(payload) > MaxFrameLength {
		return ErrorFrameTooLarge.Error(fmt.Errorf("encoded envelope is %d bytes", len(payload)))
	}

	frame := make([]byte, lengthPrefixSize+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[lengthPrefixSize:], payload)

	n, err := w.Write(frame)
	if err != nil {
		return ErrorShortWrite.Error(err)
	}
	if n != len(frame) {
		return ErrorShortWrite.Error(fmt.Errorf("wrote %d of %d bytes", n, len(frame)))
	}
	return nil
}

// SendException packages err as a lichtenstein.Error message and sends it,
// mirroring MessageIO::sendException. Any failure while sending it is
// returned rather than silently ignored, since this Go port exposes a
// single write path instead of a noexcept method.
func SendException(w io.Writer, err error) error {
	return SendMessage(w, &lichtenstein.Error{Description: err.Error()})
}

// ReadMessage reads exactly one framed message from r: the 4-byte length
// prefix, then that many bytes of payload, decodes the Envelope, and
// validates its version against ProtocolVersion. On success it returns the
// inner Any unchanged for type-URL dispatch: callers unmarshal
// any.Value into the concrete message type named by any.MessageName().
//
// A short read on the length prefix with zero bytes read signals a clean
// peer close and returns io.EOF; any other short read or a version
// mismatch is a ProtocolError.
func ReadMessage(r io.Reader) (*lichtenstein.Any, error) {
	var lenBuf [lengthPrefixSize]byte

	n, err := io.ReadFull(r, lenBuf[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			return nil, io.EOF
		}
		return nil, ErrorShortRead.Error(err)
	}

	length := binary.BigEndian.Uint32(lenBuf[:])
	if length > MaxFrameLength {
		return nil, ErrorFrameTooLarge.Error(fmt.Errorf("declared frame length %d", length))
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, ErrorShortRead.Error(err)
	}

	env := &lichtenstein.Envelope{}
	if err := env.Unmarshal(payload); err != nil {
		return nil, ErrorDecode.Error(err)
	}

	if env.Version != ProtocolVersion {
		return nil, ErrorVersionMismatch.Error(fmt.Errorf(
			"message is version 0x%x, expected 0x%x", env.Version, ProtocolVersion))
	}

	if env.Payload == nil {
		return nil, ErrorDecode.Error(fmt.Errorf("envelope carries no payload"))
	}

	return env.Payload, nil
}

// Unpack unmarshals any.Value into dst, which must be the concrete message
// type named by any.MessageName() (the caller is responsible for the
// type-URL-to-type dispatch itself; this just decodes the chosen type).
func Unpack(any *lichtenstein.Any, dst lichtenstein.Message) error {
	if err := dst.Unmarshal(any.Value); err != nil {
		return ErrorDecode.Error(err)
	}
	return nil
}
