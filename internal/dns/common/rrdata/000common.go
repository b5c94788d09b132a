package rrdata

import (
	"fmt"

	"github.com/haukened/rr-dig/internal/dns/common/dnsname"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// rdata locates one record payload inside the message it came from.
// Names inside a payload may be compressed, so decoders need the whole message.
type rdata struct {
	msg    []byte
	off    int
	length int
}

func (r rdata) end() int {
	return r.off + r.length
}

// decodeDomainName decodes a (possibly compressed) name starting at off and
// checks that its in-place bytes stay within the payload.
func (r rdata) decodeDomainName(off int) (string, int, error) {
	name, n, err := dnsname.Decode(r.msg, off)
	if err != nil {
		return "", 0, err
	}
	if off+n > r.end() {
		return "", 0, domain.NewError(domain.KindRdlengthMismatch,
			fmt.Sprintf("name at offset %d overruns RDLENGTH=%d", off, r.length))
	}
	return name, n, nil
}
