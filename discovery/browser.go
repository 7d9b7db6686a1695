package discovery

import (
	"net"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/ipv4"
)

// Browser issues mDNS queries and collects ServiceRecords, grounded on
// original_source/io/mdns/IBrowserService.h's two-stage contract: Browse
// populates name/type/domain only, Resolve later promotes a single record
// to host/port/txt. Each call opens and tears down its own multicast
// socket, matching "destroying a browse or resolve... returns from any
// outstanding call" (spec.md §5) — there is no long-lived background
// listener to destroy.
type Browser struct{}

// NewBrowser constructs a Browser. It holds no state between calls.
func NewBrowser() *Browser { return &Browser{} }

// Browse queries for serviceType and collects responses until timeout
// elapses, per spec.md §4.4: "returns once either the platform stack
// indicates no more results pending, or the timeout elapses, whichever is
// first." This implementation has no cache-coherent way to detect "no more
// results pending" (RFC 6762 §7.1 known-answer suppression is not
// implemented), so it always runs for the full timeout — still within the
// "≤ T + ε" bound spec.md's Testable Properties section requires, since it
// never runs longer than T.
func (b *Browser) Browse(serviceType string, timeout time.Duration) ([]*ServiceRecord, error) {
	conn, err := openMulticastSocket()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := sendQuestion(conn, serviceType, dns.TypePTR); err != nil {
		return nil, err
	}

	records := map[string]*ServiceRecord{}
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 65536)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(remaining))

		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			break
		}

		msg := new(dns.Msg)
		if err := msg.Unpack(buf[:n]); err != nil {
			continue
		}

		for _, rr := range msg.Answer {
			ptr, ok := rr.(*dns.PTR)
			if !ok {
				continue
			}
			instance, ok := splitInstance(ptr.Ptr, serviceType)
			if !ok {
				continue
			}
			if _, seen := records[ptr.Ptr]; !seen {
				records[ptr.Ptr] = &ServiceRecord{
					ServiceName: instance,
					ServiceType: serviceType,
					Domain:      "local",
				}
			}
		}
	}

	out := make([]*ServiceRecord, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	return out, nil
}

// Resolve promotes rec from name/type/domain only to full host/port/txt,
// independently timed and cancellable from the enclosing Browse call, per
// spec.md §4.4. It mutates rec in place and sets rec.Resolved on success.
func (b *Browser) Resolve(rec *ServiceRecord, timeout time.Duration) error {
	conn, err := openMulticastSocket()
	if err != nil {
		return err
	}
	defer conn.Close()

	instFQDN := dns.Fqdn(rec.ServiceName + "." + rec.ServiceType + ".local")
	if err := sendQuestion(conn, rec.ServiceName+"."+rec.ServiceType, dns.TypeSRV); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 65536)

	var (
		host string
		port uint16
		txt  map[string]string
	)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(remaining))

		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			break
		}

		msg := new(dns.Msg)
		if err := msg.Unpack(buf[:n]); err != nil {
			continue
		}

		for _, rr := range append(msg.Answer, msg.Extra...) {
			switch v := rr.(type) {
			case *dns.SRV:
				if v.Hdr.Name != instFQDN {
					continue
				}
				host = v.Target
				port = v.Port
			case *dns.TXT:
				if v.Hdr.Name != instFQDN {
					continue
				}
				txt = decodeTXT(encodeTxtStrings(v.Txt))
			case *dns.A:
				if host != "" && v.Hdr.Name == host {
					host = v.A.String()
				}
			}
		}

		if host != "" && port != 0 {
			break
		}
	}

	if host == "" || port == 0 {
		return ErrorResolveTimeout.Error(nil)
	}

	rec.Hostname = host
	rec.Port = port
	if txt != nil {
		rec.TXT = txt
	}
	rec.Resolved = true
	return nil
}

// encodeTxtStrings adapts miekg/dns's already-split TXT character-strings
// back through decodeTXT so record.go's single length-prefixed parser
// remains the one place "key=value" splitting happens.
func encodeTxtStrings(strs []string) []byte {
	var buf []byte
	for _, s := range strs {
		if len(s) > 255 {
			s = s[:255]
		}
		buf = append(buf, byte(len(s)))
		buf = append(buf, s...)
	}
	return buf
}

func openMulticastSocket() (*net.UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp4", mdnsAddr)
	if err != nil {
		return nil, ErrorSystem.Error(err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, ErrorSystem.Error(err)
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

	return conn, nil
}

func sendQuestion(conn *net.UDPConn, name string, qtype uint16) error {
	raddr, err := net.ResolveUDPAddr("udp4", mdnsAddr)
	if err != nil {
		return ErrorSystem.Error(err)
	}

	msg := new(dns.Msg)
	msg.Question = []dns.Question{{
		Name:   dns.Fqdn(name + ".local"),
		Qtype:  qtype,
		Qclass: dns.ClassINET,
	}}

	packed, err := msg.Pack()
	if err != nil {
		return ErrorSystem.Error(err)
	}

	if _, err := conn.WriteToUDP(packed, raddr); err != nil {
		return ErrorSystem.Error(err)
	}
	return nil
}
