package wire_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/tristanseifert/lichtenstein-node/errors"
	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
	"github.com/tristanseifert/lichtenstein-node/wire"
)

func TestSendReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	want := &lichtenstein.AuthHello{UUID: bytes.Repeat([]byte{0x42}, 16)}
	if err := wire.SendMessage(&buf, want); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	any, err := wire.ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if any.MessageName() != "AuthHello" {
		t.Fatalf("MessageName = %q, want AuthHello", any.MessageName())
	}

	got := &lichtenstein.AuthHello{}
	if err := wire.Unpack(any, got); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if !bytes.Equal(got.UUID, want.UUID) {
		t.Fatalf("UUID = %x, want %x", got.UUID, want.UUID)
	}
}

func TestReadMessageCleanEOF(t *testing.T) {
	_, err := wire.ReadMessage(&bytes.Buffer{})
	if err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestReadMessageShortRead(t *testing.T) {
	// Two bytes declared for the length prefix, never four: a genuine
	// truncation, not a clean close.
	r := bytes.NewReader([]byte{0x00, 0x01})
	_, err := wire.ReadMessage(r)
	if err == nil || !errors.IsCode(err, wire.ErrorShortRead) {
		t.Fatalf("err = %v, want ErrorShortRead", err)
	}
}

func TestReadMessageFrameTooLarge(t *testing.T) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], wire.MaxFrameLength+1)

	_, err := wire.ReadMessage(bytes.NewReader(lenBuf[:]))
	if err == nil || !errors.IsCode(err, wire.ErrorFrameTooLarge) {
		t.Fatalf("err = %v, want ErrorFrameTooLarge", err)
	}
}

func TestReadMessageVersionMismatch(t *testing.T) {
	env := &lichtenstein.Envelope{
		Version: wire.ProtocolVersion + 1,
		Payload: lichtenstein.PackAny(&lichtenstein.AuthHello{}),
	}
	payload := env.Marshal()

	var buf bytes.Buffer
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	buf.Write(lenBuf[:])
	buf.Write(payload)

	_, err := wire.ReadMessage(&buf)
	if err == nil || !errors.IsCode(err, wire.ErrorVersionMismatch) {
		t.Fatalf("err = %v, want ErrorVersionMismatch", err)
	}
}

func TestSendException(t *testing.T) {
	var buf bytes.Buffer
	if err := wire.SendException(&buf, wire.ErrorDecode.Error(nil)); err != nil {
		t.Fatalf("SendException: %v", err)
	}

	any, err := wire.ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if any.MessageName() != "Error" {
		t.Fatalf("MessageName = %q, want Error", any.MessageName())
	}

	got := &lichtenstein.Error{}
	if err := wire.Unpack(any, got); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if got.Description == "" {
		t.Fatalf("Description is empty")
	}
}
