package rrdata

import "github.com/haukened/rr-dig/internal/dns/domain"

// decodeCNAMEData decodes the canonical name an alias points to.
func decodeCNAMEData(r rdata) (domain.RData, error) {
	target, _, err := r.decodeDomainName(r.off)
	if err != nil {
		return nil, err
	}
	return domain.Alias{Target: target}, nil
}
