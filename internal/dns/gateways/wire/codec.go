package wire

import (
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// DNSCodec builds outgoing queries and decodes the matching responses.
type DNSCodec interface {
	// EncodeQuery draws a fresh transaction id and serializes q as a
	// single-question query carrying that id.
	EncodeQuery(q domain.Question) (uint16, []byte, error)

	// ParseHeader extracts the fixed header without validating it.
	ParseHeader(data []byte) (domain.Header, error)

	// DecodeResponse validates a response against expectedID and decodes its
	// answer and additional sections.
	DecodeResponse(data []byte, expectedID uint16) (domain.ExchangeResult, error)
}

// IDSource yields 16-bit transaction ids.
type IDSource func() uint16
