package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// Response codes defined by RFC 1035 section 4.1.1.
const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNXDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
)

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}

// Err maps a response code to the terminal error it represents.
// NOERROR and NXDOMAIN return nil: the first is a plain success and the
// second is the distinguished name-not-found outcome, not a failure.
func (r RCode) Err() error {
	switch r {
	case RCodeNoError, RCodeNXDomain:
		return nil
	case RCodeFormErr:
		return NewError(KindFormatError, "the name server was unable to interpret the query")
	case RCodeServFail:
		return NewError(KindServerFailure, "the name server was unable to process this query due to a problem with the name server")
	case RCodeNotImp:
		return NewError(KindNotImplemented, "the name server does not support the requested kind of query")
	case RCodeRefused:
		return NewError(KindRefused, "the name server refuses to perform the requested operation for policy reasons")
	default:
		return NewError(KindUnknownRcode, fmt.Sprintf("unexpected response code %d", uint8(r)))
	}
}
