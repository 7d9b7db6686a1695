package lichtenstein

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// HashFunction selects the keyed-hash function used for the HMAC challenge,
// per spec.md §4.3/§6.
type HashFunction int32

const (
	HashSHA1      HashFunction = 0
	HashWHIRLPOOL HashFunction = 1
)

func (h HashFunction) String() string {
	switch h {
	case HashSHA1:
		return "SHA1"
	case HashWHIRLPOOL:
		return "WHIRLPOOL"
	default:
		return fmt.Sprintf("HashFunction(%d)", int32(h))
	}
}

// AuthHello is the initiator's first message: its identity and the
// authentication methods it supports.
type AuthHello struct {
	UUID             []byte
	SupportedMethods []string
}

func (m *AuthHello) TypeName() string { return "AuthHello" }

func (m *AuthHello) Marshal() []byte {
	var b []byte
	if len(m.UUID) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.UUID)
	}
	for _, s := range m.SupportedMethods {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func (m *AuthHello) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AuthHello: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthHello.uuid: %w", protowire.ParseError(k))
			}
			m.UUID = append([]byte(nil), v...)
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthHello.supportedMethods: %w", protowire.ParseError(k))
			}
			m.SupportedMethods = append(m.SupportedMethods, v)
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthHello: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// HmacAuthChallenge is the typed payload of AuthChallenge.
type HmacAuthChallenge struct {
	Function HashFunction
	Nonce    []byte
}

func (m *HmacAuthChallenge) TypeName() string { return "HmacAuthChallenge" }

func (m *HmacAuthChallenge) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Function))
	if len(m.Nonce) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Nonce)
	}
	return b
}

func (m *HmacAuthChallenge) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: HmacAuthChallenge: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: HmacAuthChallenge.function: %w", protowire.ParseError(k))
			}
			m.Function = HashFunction(v)
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: HmacAuthChallenge.nonce: %w", protowire.ParseError(k))
			}
			m.Nonce = append([]byte(nil), v...)
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: HmacAuthChallenge: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// AuthChallenge is the responder's reply to AuthHello.
type AuthChallenge struct {
	Method  string
	Payload *HmacAuthChallenge
}

func (m *AuthChallenge) TypeName() string { return "AuthChallenge" }

func (m *AuthChallenge) Marshal() []byte {
	var b []byte
	if m.Method != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, m.Method)
	}
	if m.Payload != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload.Marshal())
	}
	return b
}

func (m *AuthChallenge) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AuthChallenge: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthChallenge.method: %w", protowire.ParseError(k))
			}
			m.Method = v
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthChallenge.payload: %w", protowire.ParseError(k))
			}
			p := &HmacAuthChallenge{}
			if err := p.Unmarshal(v); err != nil {
				return err
			}
			m.Payload = p
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthChallenge: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// HmacAuthResponse is the typed payload of AuthResponse.
type HmacAuthResponse struct {
	Hmac  []byte
	Nonce []byte
}

func (m *HmacAuthResponse) TypeName() string { return "HmacAuthResponse" }

func (m *HmacAuthResponse) Marshal() []byte {
	var b []byte
	if len(m.Hmac) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Hmac)
	}
	if len(m.Nonce) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Nonce)
	}
	return b
}

func (m *HmacAuthResponse) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: HmacAuthResponse: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: HmacAuthResponse.hmac: %w", protowire.ParseError(k))
			}
			m.Hmac = append([]byte(nil), v...)
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: HmacAuthResponse.nonce: %w", protowire.ParseError(k))
			}
			m.Nonce = append([]byte(nil), v...)
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: HmacAuthResponse: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// AuthResponse is the initiator's proof-of-possession reply to AuthChallenge.
type AuthResponse struct {
	Payload *HmacAuthResponse
}

func (m *AuthResponse) TypeName() string { return "AuthResponse" }

func (m *AuthResponse) Marshal() []byte {
	var b []byte
	if m.Payload != nil {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload.Marshal())
	}
	return b
}

func (m *AuthResponse) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AuthResponse: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthResponse.payload: %w", protowire.ParseError(k))
			}
			p := &HmacAuthResponse{}
			if err := p.Unmarshal(v); err != nil {
				return err
			}
			m.Payload = p
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthResponse: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// AuthState is the responder's final verdict.
type AuthState struct {
	Success      bool
	ErrorDetails string
}

func (m *AuthState) TypeName() string { return "AuthState" }

func (m *AuthState) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	if m.Success {
		b = protowire.AppendVarint(b, 1)
	} else {
		b = protowire.AppendVarint(b, 0)
	}
	if m.ErrorDetails != "" {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, m.ErrorDetails)
	}
	return b
}

func (m *AuthState) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AuthState: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthState.success: %w", protowire.ParseError(k))
			}
			m.Success = v != 0
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthState.errorDetails: %w", protowire.ParseError(k))
			}
			m.ErrorDetails = v
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AuthState: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}
