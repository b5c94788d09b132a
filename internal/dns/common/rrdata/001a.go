package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// decodeAData decodes the 4-byte IPv4 address of an A record.
func decodeAData(r rdata) (domain.RData, error) {
	if r.length != 4 {
		return nil, domain.NewError(domain.KindRdlengthMismatch,
			fmt.Sprintf("expected RDLENGTH to be 4 for type-A record, but got RDLENGTH=%d", r.length))
	}
	var addr domain.Address
	copy(addr[:], r.msg[r.off:r.end()])
	return addr, nil
}
