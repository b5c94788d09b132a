package rrdata

import "github.com/haukened/rr-dig/internal/dns/domain"

// decodeNSData decodes the name server host of an NS record.
func decodeNSData(r rdata) (domain.RData, error) {
	host, _, err := r.decodeDomainName(r.off)
	if err != nil {
		return nil, err
	}
	return domain.NameServer{Host: host}, nil
}
