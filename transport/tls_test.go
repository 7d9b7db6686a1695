package transport_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tristanseifert/lichtenstein-node/certificates"
	"github.com/tristanseifert/lichtenstein-node/errors"
	"github.com/tristanseifert/lichtenstein-node/transport"
)

var _ = Describe("TLS transport", func() {
	It("reports ErrorSystem when listening on an invalid address", func() {
		_, err := transport.ListenTLS("not-a-valid-address", certificates.New(), "")
		Expect(err).To(HaveOccurred())
		Expect(errors.IsCode(err, transport.ErrorSystem)).To(BeTrue())
	})

	It("reports ErrorSystem when dialing an address nothing listens on", func() {
		_, err := transport.DialTLS("127.0.0.1:1", certificates.New(), "")
		Expect(err).To(HaveOccurred())
		Expect(errors.IsCode(err, transport.ErrorSystem)).To(BeTrue())
	})
})
