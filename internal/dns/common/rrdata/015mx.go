package rrdata

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// decodeMXData decodes MX (Mail Exchange) record data: a 16-bit preference
// followed by the exchange host name.
func decodeMXData(r rdata) (domain.RData, error) {
	// preference plus at least the root label
	if r.length < 3 {
		return nil, domain.NewError(domain.KindRdlengthMismatch,
			fmt.Sprintf("MX record RDLENGTH=%d is too short", r.length))
	}
	pref := binary.BigEndian.Uint16(r.msg[r.off : r.off+2])
	exchange, _, err := r.decodeDomainName(r.off + 2)
	if err != nil {
		return nil, fmt.Errorf("invalid MX exchange domain: %w", err)
	}
	return domain.MailExchange{Preference: pref, Exchange: exchange}, nil
}
