// Package wire encodes DNS queries and decodes DNS responses in the RFC 1035
// wire format used over UDP.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/miekg/dns"

	"github.com/haukened/rr-dig/internal/dns/common/dnsname"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/common/rrdata"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// MaxMessageSize is the largest query this codec will produce.
const MaxMessageSize = 512

// fixed bytes after a record's owner name: TYPE, CLASS, TTL, RDLENGTH.
const rrFixedSize = 10

// fixed bytes after a question's name: QTYPE, QCLASS.
const questionFixedSize = 4

// udpCodec implements DNSCodec for plain DNS over UDP.
type udpCodec struct {
	logger log.Logger
	ids    IDSource
}

// NewUDPCodec returns a codec that logs through logger and draws transaction
// ids from ids. A nil ids falls back to dns.Id.
func NewUDPCodec(logger log.Logger, ids IDSource) *udpCodec {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if ids == nil {
		ids = dns.Id
	}
	return &udpCodec{
		logger: logger,
		ids:    ids,
	}
}

// BuildQuery validates name and qtype as an IN-class question and encodes it.
func (c *udpCodec) BuildQuery(name string, qtype domain.RRType) (uint16, []byte, error) {
	q, err := domain.NewQuestion(name, qtype)
	if err != nil {
		return 0, nil, err
	}
	return c.EncodeQuery(q)
}

// EncodeQuery serializes q behind a header with RD and RA set, QDCOUNT=1 and
// all other counts zero.
func (c *udpCodec) EncodeQuery(q domain.Question) (uint16, []byte, error) {
	if err := q.Validate(); err != nil {
		return 0, nil, err
	}
	qname, err := dnsname.Encode(q.Name)
	if err != nil {
		return 0, nil, err
	}

	size := domain.HeaderSize + len(qname) + questionFixedSize
	if size > MaxMessageSize {
		return 0, nil, domain.NewError(domain.KindMessageTooLarge,
			fmt.Sprintf("query for %q is %d bytes, limit is %d", q.Name, size, MaxMessageSize))
	}

	id := c.ids()
	h := domain.NewQueryHeader(id)

	msg := make([]byte, 0, size)
	msg = appendHeader(msg, h)
	msg = append(msg, qname...)
	msg = binary.BigEndian.AppendUint16(msg, uint16(q.Type))
	msg = binary.BigEndian.AppendUint16(msg, uint16(q.Class))

	c.logger.Debug(map[string]any{
		"id":   id,
		"name": q.Name,
		"type": q.Type.String(),
		"size": len(msg),
	}, "encoded query")

	return id, msg, nil
}

func appendHeader(b []byte, h domain.Header) []byte {
	b = binary.BigEndian.AppendUint16(b, h.ID)
	b = binary.BigEndian.AppendUint16(b, h.Flags)
	b = binary.BigEndian.AppendUint16(b, h.QDCount)
	b = binary.BigEndian.AppendUint16(b, h.ANCount)
	b = binary.BigEndian.AppendUint16(b, h.NSCount)
	return binary.BigEndian.AppendUint16(b, h.ARCount)
}

// ParseHeader reads the 12-byte header at the start of data.
func (c *udpCodec) ParseHeader(data []byte) (domain.Header, error) {
	if len(data) < domain.HeaderSize {
		return domain.Header{}, domain.NewError(domain.KindTruncatedMessage,
			fmt.Sprintf("message of %d bytes is shorter than the %d-byte header", len(data), domain.HeaderSize))
	}
	return domain.Header{
		ID:      binary.BigEndian.Uint16(data[0:2]),
		Flags:   binary.BigEndian.Uint16(data[2:4]),
		QDCount: binary.BigEndian.Uint16(data[4:6]),
		ANCount: binary.BigEndian.Uint16(data[6:8]),
		NSCount: binary.BigEndian.Uint16(data[8:10]),
		ARCount: binary.BigEndian.Uint16(data[10:12]),
	}, nil
}

// DecodeResponse checks the header in order (id, TC, RA, RCODE), then skips
// the echoed question and decodes the answer and additional sections.
// Authority records are stepped over but not returned. An NXDOMAIN response
// yields OutcomeNameNotFound with no records.
func (c *udpCodec) DecodeResponse(data []byte, expectedID uint16) (domain.ExchangeResult, error) {
	h, err := c.ParseHeader(data)
	if err != nil {
		return domain.ExchangeResult{}, err
	}

	c.logger.Debug(map[string]any{
		"id":      h.ID,
		"flags":   fmt.Sprintf("0x%04x", h.Flags),
		"rcode":   h.RCode().String(),
		"qdcount": h.QDCount,
		"ancount": h.ANCount,
		"nscount": h.NSCount,
		"arcount": h.ARCount,
	}, "decoded response header")

	if h.ID != expectedID {
		return domain.ExchangeResult{}, domain.NewError(domain.KindIDMismatch,
			fmt.Sprintf("ID mismatch: expected %d, got %d", expectedID, h.ID))
	}
	if h.Truncated() {
		return domain.ExchangeResult{}, domain.NewError(domain.KindTruncated,
			"response truncated, retry over a reliable transport")
	}
	if !h.RecursionAvailable() {
		return domain.ExchangeResult{}, domain.NewError(domain.KindRecursionUnsupported,
			"server does not support recursive queries")
	}
	if err := h.RCode().Err(); err != nil {
		return domain.ExchangeResult{}, err
	}
	if h.RCode() == domain.RCodeNXDomain {
		return domain.ExchangeResult{Header: h, Outcome: domain.OutcomeNameNotFound}, nil
	}

	off := domain.HeaderSize
	for i := 0; i < int(h.QDCount); i++ {
		if off, err = skipQuestion(data, off); err != nil {
			return domain.ExchangeResult{}, fmt.Errorf("failed to skip question %d: %w", i, err)
		}
	}

	answers := make([]domain.ResourceRecord, 0, h.ANCount)
	for i := 0; i < int(h.ANCount); i++ {
		rr, next, err := parseResourceRecord(data, off)
		if err != nil {
			return domain.ExchangeResult{}, fmt.Errorf("failed to parse answer record %d: %w", i, err)
		}
		answers = append(answers, rr)
		off = next
	}

	for i := 0; i < int(h.NSCount); i++ {
		if off, err = skipResourceRecord(data, off); err != nil {
			return domain.ExchangeResult{}, fmt.Errorf("failed to skip authority record %d: %w", i, err)
		}
	}

	additional := make([]domain.ResourceRecord, 0, h.ARCount)
	for i := 0; i < int(h.ARCount); i++ {
		rr, next, err := parseResourceRecord(data, off)
		if err != nil {
			return domain.ExchangeResult{}, fmt.Errorf("failed to parse additional record %d: %w", i, err)
		}
		additional = append(additional, rr)
		off = next
	}

	return domain.ExchangeResult{
		Header:     h,
		Outcome:    domain.OutcomeAnswered,
		Answers:    answers,
		Additional: additional,
	}, nil
}

func skipQuestion(data []byte, off int) (int, error) {
	next, err := dnsname.Skip(data, off)
	if err != nil {
		return 0, err
	}
	if next+questionFixedSize > len(data) {
		return 0, domain.NewError(domain.KindTruncatedMessage, "question section cut short")
	}
	return next + questionFixedSize, nil
}

func skipResourceRecord(data []byte, off int) (int, error) {
	next, err := dnsname.Skip(data, off)
	if err != nil {
		return 0, err
	}
	if next+rrFixedSize > len(data) {
		return 0, domain.NewError(domain.KindTruncatedMessage, "record header cut short")
	}
	rdLen := int(binary.BigEndian.Uint16(data[next+8 : next+10]))
	end := next + rrFixedSize + rdLen
	if end > len(data) {
		return 0, domain.NewError(domain.KindTruncatedMessage, "record payload cut short")
	}
	return end, nil
}

// parseResourceRecord decodes the record at off and returns the offset just
// past it.
func parseResourceRecord(data []byte, off int) (domain.ResourceRecord, int, error) {
	name, n, err := dnsname.Decode(data, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("failed to decode record name: %w", err)
	}
	off += n

	if off+rrFixedSize > len(data) {
		return domain.ResourceRecord{}, 0, domain.NewError(domain.KindTruncatedMessage,
			fmt.Sprintf("record header for %s cut short", name))
	}
	rrtype := domain.RRType(binary.BigEndian.Uint16(data[off : off+2]))
	rrclass := domain.RRClass(binary.BigEndian.Uint16(data[off+2 : off+4]))
	ttl := binary.BigEndian.Uint32(data[off+4 : off+8])
	rdLen := int(binary.BigEndian.Uint16(data[off+8 : off+10]))
	off += rrFixedSize

	if !rrclass.IsValid() {
		return domain.ResourceRecord{}, 0, domain.NewError(domain.KindUnexpectedClass,
			fmt.Sprintf("unexpected class %s for %s", rrclass, name))
	}

	payload, err := rrdata.Decode(rrtype, data, off, rdLen)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}

	return domain.ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: rrclass,
		TTL:   ttl,
		Data:  payload,
	}, off + rdLen, nil
}

var _ DNSCodec = &udpCodec{}
