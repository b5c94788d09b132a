package domain

import (
	"fmt"
	"net/netip"
	"strconv"
)

// RData is the type-tagged payload of a ResourceRecord.
// The set of implementations is closed: Address, NameServer, Alias and MailExchange.
type RData interface {
	// Type returns the record type this payload belongs to.
	Type() RRType
	// String returns the payload in presentation form.
	String() string
	rdata()
}

// Address is the payload of an A record.
type Address [4]byte

func (Address) Type() RRType { return RRTypeA }
func (a Address) String() string {
	return netip.AddrFrom4(a).String()
}
func (Address) rdata() {}

// NameServer is the payload of an NS record.
type NameServer struct {
	Host string
}

func (NameServer) Type() RRType     { return RRTypeNS }
func (n NameServer) String() string { return n.Host }
func (NameServer) rdata()           {}

// Alias is the payload of a CNAME record.
type Alias struct {
	Target string
}

func (Alias) Type() RRType     { return RRTypeCNAME }
func (a Alias) String() string { return a.Target }
func (Alias) rdata()           {}

// MailExchange is the payload of an MX record.
type MailExchange struct {
	Preference uint16
	Exchange   string
}

func (MailExchange) Type() RRType { return RRTypeMX }
func (m MailExchange) String() string {
	return strconv.Itoa(int(m.Preference)) + " " + m.Exchange
}
func (MailExchange) rdata() {}

// ResourceRecord is a decoded answer or additional record.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32 // seconds
	Data  RData
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name string, rrtype RRType, class RRClass, ttl uint32, data RData) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks that the class is IN, the type is supported and the payload
// shape agrees with the type.
func (rr ResourceRecord) Validate() error {
	if !rr.Class.IsValid() {
		return NewError(KindUnexpectedClass, fmt.Sprintf("record class should be 1 (IN) but got %d", uint16(rr.Class)))
	}
	if !rr.Type.IsSupported() {
		return NewError(KindUnsupportedType, fmt.Sprintf("unexpected record type in the response: %s", rr.Type))
	}
	if rr.Data == nil || rr.Data.Type() != rr.Type {
		return NewError(KindUnsupportedType, fmt.Sprintf("payload does not match record type %s", rr.Type))
	}
	return nil
}
