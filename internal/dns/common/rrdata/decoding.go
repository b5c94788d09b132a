// Package rrdata decodes the RDATA payload of the record types this client
// understands into typed domain values.
package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// Decode decodes the payload of a record of type rrType occupying length
// bytes at off within msg.
func Decode(rrType domain.RRType, msg []byte, off, length int) (domain.RData, error) {
	if off < 0 || length < 0 || off+length > len(msg) {
		return nil, domain.NewError(domain.KindTruncatedMessage,
			fmt.Sprintf("%s record payload of %d bytes at offset %d runs past end of message", rrType, length, off))
	}
	r := rdata{msg: msg, off: off, length: length}

	switch rrType {
	case domain.RRTypeA: // 1
		return decodeAData(r)
	case domain.RRTypeNS: // 2
		return decodeNSData(r)
	case domain.RRTypeCNAME: // 5
		return decodeCNAMEData(r)
	case domain.RRTypeMX: // 15
		return decodeMXData(r)
	default:
		return nil, domain.NewError(domain.KindUnsupportedType,
			fmt.Sprintf("unexpected RDATA type in the response (%X)", uint16(rrType)))
	}
}
