// Package lichtenstein contains the hand-encoded protocol buffer messages
// exchanged between a node and its controller. Each type implements a small
// Marshal/Unmarshal pair built directly on top of
// google.golang.org/protobuf/encoding/protowire, the same low-level wire
// primitives the generated protoc-gen-go code itself emits, so the bytes on
// the wire are indistinguishable from a "normal" generated implementation.
//
// Messages are grouped per original_source/proto: the shared envelope
// (Message, Any, Error), the HMAC auth handshake, and the client API.
package lichtenstein

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TypeURLPrefix is prepended to every Any.TypeUrl, per spec.md §3/§6.
const TypeURLPrefix = "type.googleapis.com/lichtenstein.protocol."

// Message is the common contract for every wire type in this package: it can
// serialize itself to protobuf wire bytes and be dispatched by its bare
// protobuf message name (e.g. "AuthHello").
type Message interface {
	Marshal() []byte
	Unmarshal(b []byte) error
	TypeName() string
}

// TypeURL returns the fully-qualified type URL for m, as carried inside Any.
func TypeURL(m Message) string {
	return TypeURLPrefix + m.TypeName()
}

// Envelope is the outer wrapper every framed message travels in:
// Message{version, payload}. It is named Envelope here (rather than
// Message, which original_source and spec.md use for the wire wrapper) to
// avoid colliding with the Message interface above.
type Envelope struct {
	Version uint32
	Payload *Any
}

func (e *Envelope) TypeName() string { return "Message" }

func (e *Envelope) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(e.Version))
	if e.Payload != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, e.Payload.Marshal())
	}
	return b
}

func (e *Envelope) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: Message: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Message.version: %w", protowire.ParseError(m))
			}
			e.Version = uint32(v)
			b = b[m:]
		case num == 2 && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Message.payload: %w", protowire.ParseError(m))
			}
			a := &Any{}
			if err := a.Unmarshal(v); err != nil {
				return err
			}
			e.Payload = a
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Message: %w", protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return nil
}

// Any mirrors google.protobuf.Any's two relevant fields: type_url and value.
type Any struct {
	TypeURL string
	Value   []byte
}

func (a *Any) TypeName() string { return "Any" }

// PackAny wraps m as an Any, setting TypeURL from m.TypeName().
func PackAny(m Message) *Any {
	return &Any{TypeURL: TypeURL(m), Value: m.Marshal()}
}

// MessageName returns the bare message name carried in TypeURL (the part after
// the last '.'), e.g. "type.googleapis.com/lichtenstein.protocol.AuthHello"
// -> "AuthHello".
func (a *Any) MessageName() string {
	s := a.TypeURL
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[i+1:]
		}
	}
	return s
}

func (a *Any) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, a.TypeURL)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, a.Value)
	return b
}

func (a *Any) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: Any: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Any.type_url: %w", protowire.ParseError(m))
			}
			a.TypeURL = v
			b = b[m:]
		case num == 2 && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Any.value: %w", protowire.ParseError(m))
			}
			a.Value = append([]byte(nil), v...)
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Any: %w", protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return nil
}

// Error is sent in place of any expected message when a fallible operation
// fails (spec.md §4.2, §4.3, §7).
type Error struct {
	Description string
}

func (e *Error) TypeName() string { return "Error" }

func (e *Error) Marshal() []byte {
	var b []byte
	if e.Description != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, e.Description)
	}
	return b
}

func (e *Error) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: Error: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Error.description: %w", protowire.ParseError(m))
			}
			e.Description = v
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return fmt.Errorf("lichtenstein: Error: %w", protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return nil
}
