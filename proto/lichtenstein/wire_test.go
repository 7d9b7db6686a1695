package lichtenstein_test

import (
	"testing"

	"github.com/tristanseifert/lichtenstein-node/proto/lichtenstein"
)

func TestAnyMessageNameExtractsBareName(t *testing.T) {
	cases := []struct {
		typeURL string
		want    string
	}{
		{"type.googleapis.com/lichtenstein.protocol.AuthHello", "AuthHello"},
		{"type.googleapis.com/lichtenstein.protocol.GetInfoResponse", "GetInfoResponse"},
		{"NoDotsAtAll", "NoDotsAtAll"},
		{"", ""},
	}
	for _, c := range cases {
		any := &lichtenstein.Any{TypeURL: c.typeURL}
		if got := any.MessageName(); got != c.want {
			t.Errorf("MessageName(%q) = %q, want %q", c.typeURL, got, c.want)
		}
	}
}

func TestPackAnySetsTypeURLFromTypeName(t *testing.T) {
	any := lichtenstein.PackAny(&lichtenstein.AuthHello{UUID: make([]byte, 16)})
	if any.MessageName() != "AuthHello" {
		t.Fatalf("MessageName() = %q, want AuthHello", any.MessageName())
	}
	if any.TypeURL != lichtenstein.TypeURLPrefix+"AuthHello" {
		t.Fatalf("TypeURL = %q, want prefix+AuthHello", any.TypeURL)
	}
}

func TestPerformanceInfoRoundTripsFloat(t *testing.T) {
	want := &lichtenstein.PerformanceInfo{
		CPULoad1:        1.6180339887,
		MemoryUsedBytes: 123456789,
		UptimeSeconds:   987654,
	}
	b := want.Marshal()

	got := &lichtenstein.PerformanceInfo{}
	if err := got.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.CPULoad1 != want.CPULoad1 {
		t.Errorf("CPULoad1 = %v, want %v", got.CPULoad1, want.CPULoad1)
	}
	if got.MemoryUsedBytes != want.MemoryUsedBytes {
		t.Errorf("MemoryUsedBytes = %d, want %d", got.MemoryUsedBytes, want.MemoryUsedBytes)
	}
	if got.UptimeSeconds != want.UptimeSeconds {
		t.Errorf("UptimeSeconds = %d, want %d", got.UptimeSeconds, want.UptimeSeconds)
	}
}

func TestPerformanceInfoZeroValueRoundTrips(t *testing.T) {
	want := &lichtenstein.PerformanceInfo{}
	b := want.Marshal()

	got := &lichtenstein.PerformanceInfo{}
	if err := got.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.CPULoad1 != 0 || got.MemoryUsedBytes != 0 || got.UptimeSeconds != 0 {
		t.Fatalf("got %+v, want all-zero", got)
	}
}

func TestEnvelopeRoundTripsVersionAndPayload(t *testing.T) {
	env := &lichtenstein.Envelope{
		Version: 1,
		Payload: lichtenstein.PackAny(&lichtenstein.Error{Description: "boom"}),
	}
	b := env.Marshal()

	got := &lichtenstein.Envelope{}
	if err := got.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Version != 1 {
		t.Fatalf("Version = %d, want 1", got.Version)
	}
	if got.Payload == nil || got.Payload.MessageName() != "Error" {
		t.Fatalf("Payload = %+v, want an Error", got.Payload)
	}
}
