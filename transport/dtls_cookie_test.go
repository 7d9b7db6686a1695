package transport_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tristanseifert/lichtenstein-node/transport"
)

var _ = Describe("DTLS cookie", func() {
	addr := &net.UDPAddr{IP: net.ParseIP("203.0.113.7"), Port: 5000}
	otherAddr := &net.UDPAddr{IP: net.ParseIP("203.0.113.8"), Port: 5000}

	It("generates a deterministic cookie for the same address", func() {
		c1 := transport.GenerateCookie(addr)
		c2 := transport.GenerateCookie(addr)
		Expect(c1).To(Equal(c2))
		Expect(c1).ToNot(BeEmpty())
	})

	It("generates different cookies for different addresses", func() {
		c1 := transport.GenerateCookie(addr)
		c2 := transport.GenerateCookie(otherAddr)
		Expect(c1).ToNot(Equal(c2))
	})

	It("generates different cookies for different ports", func() {
		withOtherPort := &net.UDPAddr{IP: addr.IP, Port: addr.Port + 1}
		Expect(transport.GenerateCookie(addr)).ToNot(Equal(transport.GenerateCookie(withOtherPort)))
	})

	It("verifies a cookie generated for the same address", func() {
		cookie := transport.GenerateCookie(addr)
		Expect(transport.VerifyCookie(addr, cookie)).To(BeTrue())
	})

	It("rejects a cookie generated for a different address", func() {
		cookie := transport.GenerateCookie(otherAddr)
		Expect(transport.VerifyCookie(addr, cookie)).To(BeFalse())
	})

	It("rejects a tampered cookie", func() {
		cookie := transport.GenerateCookie(addr)
		tampered := append([]byte{}, cookie...)
		tampered[0] ^= 0xFF
		Expect(transport.VerifyCookie(addr, tampered)).To(BeFalse())
	})
})
