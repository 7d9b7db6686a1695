package lichtenstein

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// GetInfoRequest asks the responder for some combination of identity,
// adoption, and performance data. Unset wants* fields are not computed by
// the handler, per original_source/client/api/handlers/GetInfoReq.cpp.
type GetInfoRequest struct {
	WantsNode        bool
	WantsAdoption    bool
	WantsPerformance bool
}

func (m *GetInfoRequest) TypeName() string { return "GetInfoRequest" }

func (m *GetInfoRequest) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.WantsNode)
	b = appendBool(b, 2, m.WantsAdoption)
	b = appendBool(b, 3, m.WantsPerformance)
	return b
}

func (m *GetInfoRequest) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: GetInfoRequest: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoRequest.wantsNode: %w", protowire.ParseError(k))
			}
			m.WantsNode = v != 0
			b = b[k:]
		case num == 2 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoRequest.wantsAdoption: %w", protowire.ParseError(k))
			}
			m.WantsAdoption = v != 0
			b = b[k:]
		case num == 3 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoRequest.wantsPerformance: %w", protowire.ParseError(k))
			}
			m.WantsPerformance = v != 0
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoRequest: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// NodeInfo carries the node's static identity, per spec.md §6.
type NodeInfo struct {
	Hostname      string
	Uname         string
	ClientVersion string
	UUID          []byte
}

func (m *NodeInfo) TypeName() string { return "NodeInfo" }

func (m *NodeInfo) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Hostname)
	b = appendString(b, 2, m.Uname)
	b = appendString(b, 3, m.ClientVersion)
	b = appendBytes(b, 4, m.UUID)
	return b
}

func (m *NodeInfo) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: NodeInfo: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: NodeInfo.hostname: %w", protowire.ParseError(k))
			}
			m.Hostname = v
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: NodeInfo.uname: %w", protowire.ParseError(k))
			}
			m.Uname = v
			b = b[k:]
		case num == 3 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: NodeInfo.clientVersion: %w", protowire.ParseError(k))
			}
			m.ClientVersion = v
			b = b[k:]
		case num == 4 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: NodeInfo.uuid: %w", protowire.ParseError(k))
			}
			m.UUID = append([]byte(nil), v...)
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: NodeInfo: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// AdoptionInfo reports whether the node currently considers itself adopted
// by a controller, and by whom.
type AdoptionInfo struct {
	IsAdopted  bool
	ServerUUID []byte
}

func (m *AdoptionInfo) TypeName() string { return "AdoptionInfo" }

func (m *AdoptionInfo) Marshal() []byte {
	var b []byte
	b = appendBool(b, 1, m.IsAdopted)
	b = appendBytes(b, 2, m.ServerUUID)
	return b
}

func (m *AdoptionInfo) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AdoptionInfo: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptionInfo.isAdopted: %w", protowire.ParseError(k))
			}
			m.IsAdopted = v != 0
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptionInfo.serverUuid: %w", protowire.ParseError(k))
			}
			m.ServerUUID = append([]byte(nil), v...)
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptionInfo: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// PerformanceInfo is the supplemented performance block from
// original_source/client/api/handlers/GetInfoReq.cpp, sourced via gopsutil.
type PerformanceInfo struct {
	CPULoad1        float64
	MemoryUsedBytes uint64
	UptimeSeconds   uint64
}

func (m *PerformanceInfo) TypeName() string { return "PerformanceInfo" }

func (m *PerformanceInfo) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, doubleBits(m.CPULoad1))
	b = appendVarint(b, 2, m.MemoryUsedBytes)
	b = appendVarint(b, 3, m.UptimeSeconds)
	return b
}

func (m *PerformanceInfo) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: PerformanceInfo: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.Fixed64Type:
			v, k := protowire.ConsumeFixed64(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: PerformanceInfo.cpuLoad1: %w", protowire.ParseError(k))
			}
			m.CPULoad1 = bitsDouble(v)
			b = b[k:]
		case num == 2 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: PerformanceInfo.memoryUsedBytes: %w", protowire.ParseError(k))
			}
			m.MemoryUsedBytes = v
			b = b[k:]
		case num == 3 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: PerformanceInfo.uptimeSeconds: %w", protowire.ParseError(k))
			}
			m.UptimeSeconds = v
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: PerformanceInfo: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// GetInfoResponse is the reply to GetInfoRequest; each sub-message is nil
// when its corresponding wants* flag was not set.
type GetInfoResponse struct {
	Node        *NodeInfo
	Adoption    *AdoptionInfo
	Performance *PerformanceInfo
}

func (m *GetInfoResponse) TypeName() string { return "GetInfoResponse" }

func (m *GetInfoResponse) Marshal() []byte {
	var b []byte
	if m.Node != nil {
		b = appendBytes(b, 1, m.Node.Marshal())
	}
	if m.Adoption != nil {
		b = appendBytes(b, 2, m.Adoption.Marshal())
	}
	if m.Performance != nil {
		b = appendBytes(b, 3, m.Performance.Marshal())
	}
	return b
}

func (m *GetInfoResponse) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: GetInfoResponse: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoResponse.node: %w", protowire.ParseError(k))
			}
			n := &NodeInfo{}
			if err := n.Unmarshal(v); err != nil {
				return err
			}
			m.Node = n
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoResponse.adoption: %w", protowire.ParseError(k))
			}
			a := &AdoptionInfo{}
			if err := a.Unmarshal(v); err != nil {
				return err
			}
			m.Adoption = a
			b = b[k:]
		case num == 3 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoResponse.performance: %w", protowire.ParseError(k))
			}
			p := &PerformanceInfo{}
			if err := p.Unmarshal(v); err != nil {
				return err
			}
			m.Performance = p
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: GetInfoResponse: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// AdoptRequest is sent by a controller claiming ownership of the node,
// carrying both the control and realtime channel endpoints to use from now
// on, plus the shared adoption secret (spec.md §3, §4.5).
type AdoptRequest struct {
	ServerUUID []byte
	APIAddress string
	APIPort    uint32
	RTAddress  string
	RTPort     uint32
	Secret     string
}

func (m *AdoptRequest) TypeName() string { return "AdoptRequest" }

func (m *AdoptRequest) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, m.ServerUUID)
	b = appendString(b, 2, m.APIAddress)
	b = appendVarint(b, 3, uint64(m.APIPort))
	b = appendString(b, 4, m.RTAddress)
	b = appendVarint(b, 5, uint64(m.RTPort))
	b = appendString(b, 6, m.Secret)
	return b
}

func (m *AdoptRequest) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AdoptRequest: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.BytesType:
			v, k := protowire.ConsumeBytes(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest.serverUuid: %w", protowire.ParseError(k))
			}
			m.ServerUUID = append([]byte(nil), v...)
			b = b[k:]
		case num == 2 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest.apiAddress: %w", protowire.ParseError(k))
			}
			m.APIAddress = v
			b = b[k:]
		case num == 3 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest.apiPort: %w", protowire.ParseError(k))
			}
			m.APIPort = uint32(v)
			b = b[k:]
		case num == 4 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest.rtAddress: %w", protowire.ParseError(k))
			}
			m.RTAddress = v
			b = b[k:]
		case num == 5 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest.rtPort: %w", protowire.ParseError(k))
			}
			m.RTPort = uint32(v)
			b = b[k:]
		case num == 6 && typ == protowire.BytesType:
			v, k := protowire.ConsumeString(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest.secret: %w", protowire.ParseError(k))
			}
			m.Secret = v
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptRequest: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// AdoptAck is the node's reply confirming (or refusing) adoption.
type AdoptAck struct {
	IsAdopted bool
}

func (m *AdoptAck) TypeName() string { return "AdoptAck" }

func (m *AdoptAck) Marshal() []byte {
	return appendBool(nil, 1, m.IsAdopted)
}

func (m *AdoptAck) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("lichtenstein: AdoptAck: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == 1 && typ == protowire.VarintType:
			v, k := protowire.ConsumeVarint(b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptAck.isAdopted: %w", protowire.ParseError(k))
			}
			m.IsAdopted = v != 0
			b = b[k:]
		default:
			k := protowire.ConsumeFieldValue(num, typ, b)
			if k < 0 {
				return fmt.Errorf("lichtenstein: AdoptAck: %w", protowire.ParseError(k))
			}
			b = b[k:]
		}
	}
	return nil
}

// --- shared append helpers -------------------------------------------------

func appendBool(b []byte, field protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, field, protowire.VarintType)
	if v {
		return protowire.AppendVarint(b, 1)
	}
	return protowire.AppendVarint(b, 0)
}

func appendVarint(b []byte, field protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, field, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendString(b []byte, field protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, field protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, field, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
