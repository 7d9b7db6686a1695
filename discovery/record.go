package discovery

import (
	"strings"
)

// ServiceType is the DNS-SD service type this node advertises and browses
// for, per spec.md §4.4/§6.
const ServiceType = "_licht._tcp.,_client-api-v1"

// TXT keys this node's own records carry, per spec.md §6.
const (
	TxtKeyVersion = "version"
	TxtKeyType    = "type"
	TxtKeyUUID    = "uuid"
)

// TxtValueType is the value ServiceRecord.txt["type"] carries for a node
// advertising the client API, per spec.md §6.
const TxtValueType = "client"

// ServiceRecord is an mDNS result, grounded on
// original_source/io/mdns/IBrowserService.h's accessor set. Fields beyond
// ServiceName/ServiceType are empty/zero until Resolve has completed;
// Resolved reports whether that has happened.
type ServiceRecord struct {
	ServiceName   string
	ServiceType   string
	Domain        string
	InterfaceName string
	Hostname      string
	Port          uint16
	TXT           map[string]string

	Resolved bool
}

// encodeTXT packs a key/value map into the length-prefixed "key=value"
// strings spec.md §4.4 specifies for a TXT record blob.
func encodeTXT(txt map[string]string) []byte {
	var buf []byte
	for k, v := range txt {
		s := k + "=" + v
		if len(s) > 255 {
			s = s[:255]
		}
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
	}
	return buf
}

// decodeTXT parses a TXT blob: a concatenation of one-byte-length-prefixed
// ASCII strings of the form "key=value", read until the input is exhausted.
// A string without '=' is stored with an empty value, per spec.md §4.4.
func decodeTXT(blob []byte) map[string]string {
	out := make(map[string]string)

	for len(blob) > 0 {
		n := int(blob[0])
		blob = blob[1:]
		if n > len(blob) {
			n = len(blob)
		}
		s := string(blob[:n])
		blob = blob[n:]

		if idx := strings.IndexByte(s, '='); idx >= 0 {
			out[s[:idx]] = s[idx+1:]
		} else {
			out[s] = ""
		}
	}

	return out
}
