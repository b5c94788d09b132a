package domain

// HeaderSize is the fixed size of a DNS message header in bytes.
const HeaderSize = 12

// Header flag bits and masks (RFC 1035 section 4.1.1).
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA|   Z    |   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
const (
	FlagQR     uint16 = 0x8000
	OpcodeMask uint16 = 0x7800
	FlagAA     uint16 = 0x0400
	FlagTC     uint16 = 0x0200
	FlagRD     uint16 = 0x0100
	FlagRA     uint16 = 0x0080
	ZMask      uint16 = 0x0070
	RCodeMask  uint16 = 0x000F
)

// Header is the fixed 12-byte preamble of every DNS message.
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// NewQueryHeader returns the header of an outgoing query: one question, no records,
// recursion desired, and the RA bit raised as a capability hint.
func NewQueryHeader(id uint16) Header {
	return Header{
		ID:      id,
		Flags:   FlagRD | FlagRA,
		QDCount: 1,
	}
}

// IsResponse returns true if the QR bit is set.
func (h Header) IsResponse() bool {
	return h.Flags&FlagQR != 0
}

// Opcode returns the 4-bit operation code.
func (h Header) Opcode() uint8 {
	return uint8((h.Flags & OpcodeMask) >> 11)
}

// Authoritative returns true if the AA bit is set.
func (h Header) Authoritative() bool {
	return h.Flags&FlagAA != 0
}

// Truncated returns true if the TC bit is set.
func (h Header) Truncated() bool {
	return h.Flags&FlagTC != 0
}

// RecursionDesired returns true if the RD bit is set.
func (h Header) RecursionDesired() bool {
	return h.Flags&FlagRD != 0
}

// RecursionAvailable returns true if the RA bit is set.
func (h Header) RecursionAvailable() bool {
	return h.Flags&FlagRA != 0
}

// Z returns the 3 reserved bits.
func (h Header) Z() uint8 {
	return uint8((h.Flags & ZMask) >> 4)
}

// RCode returns the 4-bit response code.
func (h Header) RCode() RCode {
	return RCode(h.Flags & RCodeMask)
}
