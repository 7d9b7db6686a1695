package discovery

import (
	"net"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/miekg/dns"
	"golang.org/x/net/ipv4"
)

// mdnsAddr is the well-known mDNS multicast group and port, RFC 6762 §3.
const mdnsAddr = "224.0.0.251:5353"

// recordTTL is the TTL this node advertises on its own records. The original
// never advertised past the lifetime of the process that created the
// records, so a TTL on the order of the node's own advertisement lifetime
// (spec.md §5: "mDNS advertisement: lifetime equals the state machine's
// lifetime") is used rather than RFC 6762's 75-minute default for
// long-lived records.
const recordTTL = 120

// Advertiser publishes this node's service record on the local network and
// keeps it live-updatable, grounded on
// original_source/client/mdns/Service.h's startAdvertising/stopAdvertising/
// setTxtRecord/removeTxtRecord contract. Unlike the original's abstract
// base class with one platform-specific subclass, this is a single
// implementation atop github.com/miekg/dns + golang.org/x/net/ipv4, the
// corpus's own DNS-message and multicast libraries.
type Advertiser struct {
	mu sync.Mutex

	instance string
	svcType  string
	hostname string
	port     uint16
	txt      map[string]string

	conn   *net.UDPConn
	pconn  *ipv4.PacketConn
	closed bool
}

// NewAdvertiser builds an Advertiser for instance (a human-readable service
// name) on port, seeding the TXT record with the version/type/uuid triple
// spec.md §6 requires.
func NewAdvertiser(instance string, port uint16, nodeUUID uuid.UUID, version string) (*Advertiser, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "lichtenstein-node"
	}

	return &Advertiser{
		instance: instance,
		svcType:  ServiceType,
		hostname: hostname,
		port:     port,
		txt: map[string]string{
			TxtKeyVersion: version,
			TxtKeyType:    TxtValueType,
			TxtKeyUUID:    nodeUUID.String(),
		},
	}, nil
}

// StartAdvertising opens the multicast socket and sends an initial
// unsolicited announcement, mirroring Service::startAdvertising.
func (a *Advertiser) StartAdvertising() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	raddr, err := net.ResolveUDPAddr("udp4", mdnsAddr)
	if err != nil {
		return ErrorSystem.Error(err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: raddr.Port})
	if err != nil {
		return ErrorSystem.Error(err)
	}

	pconn := ipv4.NewPacketConn(conn)
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagMulticast == 0 || iface.Flags&net.FlagUp == 0 {
				continue
			}
			_ = pconn.JoinGroup(&iface, raddr)
		}
	}

	a.conn = conn
	a.pconn = pconn
	a.closed = false

	return a.publishLocked()
}

// StopAdvertising closes the multicast socket, ending advertisement. Per
// spec.md §5 this lasts exactly as long as the node's own lifetime; there
// is no separate goodbye-packet deadline to honor since the node process
// itself is exiting.
func (a *Advertiser) StopAdvertising() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.conn == nil {
		return nil
	}
	a.closed = true
	return a.conn.Close()
}

// SetTxtRecord sets record to value and re-publishes, per
// Service::setTxtRecord's "mutate then updateTxtRecords()" pattern
// (SPEC_FULL.md supplement item 4: a live operation, not a
// construction-time-only option).
func (a *Advertiser) SetTxtRecord(record, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.txt == nil {
		a.txt = map[string]string{}
	}
	a.txt[record] = value
	return a.publishLocked()
}

// RemoveTxtRecord deletes record and re-publishes.
func (a *Advertiser) RemoveTxtRecord(record string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.txt, record)
	return a.publishLocked()
}

// publishLocked sends the current record set as an unsolicited multicast
// announcement. Caller must hold a.mu.
func (a *Advertiser) publishLocked() error {
	if a.conn == nil || a.closed {
		return nil
	}

	msg := a.buildAnnounceLocked()
	packed, err := msg.Pack()
	if err != nil {
		return ErrorSystem.Error(err)
	}

	raddr, err := net.ResolveUDPAddr("udp4", mdnsAddr)
	if err != nil {
		return ErrorSystem.Error(err)
	}
	if _, err := a.conn.WriteToUDP(packed, raddr); err != nil {
		return ErrorSystem.Error(err)
	}
	return nil
}

func (a *Advertiser) buildAnnounceLocked() *dns.Msg {
	svcFQDN := dns.Fqdn(a.svcType + ".local")
	instFQDN := dns.Fqdn(a.instance + "." + a.svcType + ".local")
	hostFQDN := dns.Fqdn(a.hostname + ".local")

	msg := new(dns.Msg)
	msg.Response = true
	msg.Authoritative = true

	ptr := &dns.PTR{
		Hdr: dns.RR_Header{Name: svcFQDN, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: recordTTL},
		Ptr: instFQDN,
	}
	srv := &dns.SRV{
		Hdr:      dns.RR_Header{Name: instFQDN, Rrtype: dns.TypeSRV, Class: dns.ClassINET, Ttl: recordTTL},
		Priority: 0,
		Weight:   0,
		Port:     a.port,
		Target:   hostFQDN,
	}

	txtStrings := make([]string, 0, len(a.txt))
	for k, v := range a.txt {
		txtStrings = append(txtStrings, k+"="+v)
	}
	txt := &dns.TXT{
		Hdr: dns.RR_Header{Name: instFQDN, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: recordTTL},
		Txt: txtStrings,
	}

	msg.Answer = []dns.RR{ptr, srv, txt}

	if addr := firstIPv4(); addr != nil {
		msg.Extra = []dns.RR{
			&dns.A{
				Hdr: dns.RR_Header{Name: hostFQDN, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: recordTTL},
				A:   addr,
			},
		}
	}

	return msg
}

func firstIPv4() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4
		}
	}
	return nil
}

func splitInstance(fqdn, svcType string) (string, bool) {
	suffix := "." + strings.TrimSuffix(dns.Fqdn(svcType+".local"), ".")
	name := strings.TrimSuffix(fqdn, ".")
	if !strings.HasSuffix(name, suffix) {
		return "", false
	}
	return strings.TrimSuffix(name, suffix), true
}
