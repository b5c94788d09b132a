package domain

import (
	"errors"
	"fmt"
)

// Category groups error kinds by how the exchange reacts to them.
type Category uint8

const (
	// CategoryInput covers bad names and oversized queries. Never retried.
	CategoryInput Category = iota + 1
	// CategoryTransport covers send and receive failures other than timeouts.
	CategoryTransport
	// CategoryTimeout covers a receive window that expired without a datagram.
	CategoryTimeout
	// CategoryProtocol covers malformed or refused responses. Never retried.
	CategoryProtocol
	// CategoryExhausted is the terminal outcome of running out of attempts.
	CategoryExhausted
)

// String returns the textual representation of the Category.
func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "input"
	case CategoryTransport:
		return "transport"
	case CategoryTimeout:
		return "timeout"
	case CategoryProtocol:
		return "protocol"
	case CategoryExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// ErrorKind identifies a single failure condition of a resolution.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota

	// input
	KindEmptyLabel
	KindLabelTooLong
	KindMessageTooLarge
	KindUnsupportedQuery

	// transport
	KindTransport

	// timeout
	KindTimeout

	// protocol
	KindMalformedLabel
	KindPointerCycle
	KindTruncatedMessage
	KindIDMismatch
	KindTruncated
	KindRecursionUnsupported
	KindFormatError
	KindServerFailure
	KindNotImplemented
	KindRefused
	KindUnknownRcode
	KindUnexpectedClass
	KindUnsupportedType
	KindRdlengthMismatch

	// exhausted
	KindRetriesExhausted
)

var kindNames = map[ErrorKind]string{
	KindUnknown:              "Unknown",
	KindEmptyLabel:           "EmptyLabel",
	KindLabelTooLong:         "LabelTooLong",
	KindMessageTooLarge:      "MessageTooLarge",
	KindUnsupportedQuery:     "UnsupportedQuery",
	KindTransport:            "TransportError",
	KindTimeout:              "Timeout",
	KindMalformedLabel:       "MalformedLabel",
	KindPointerCycle:         "PointerCycle",
	KindTruncatedMessage:     "TruncatedMessage",
	KindIDMismatch:           "IdMismatch",
	KindTruncated:            "Truncated",
	KindRecursionUnsupported: "RecursionUnsupported",
	KindFormatError:          "FormatError",
	KindServerFailure:        "ServerFailure",
	KindNotImplemented:       "NotImplemented",
	KindRefused:              "Refused",
	KindUnknownRcode:         "UnknownRcode",
	KindUnexpectedClass:      "UnexpectedClass",
	KindUnsupportedType:      "UnsupportedType",
	KindRdlengthMismatch:     "RdlengthMismatch",
	KindRetriesExhausted:     "RetriesExhausted",
}

// String returns the name of the ErrorKind.
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Category returns the category the kind belongs to.
func (k ErrorKind) Category() Category {
	switch {
	case k >= KindEmptyLabel && k <= KindUnsupportedQuery:
		return CategoryInput
	case k == KindTransport:
		return CategoryTransport
	case k == KindTimeout:
		return CategoryTimeout
	case k >= KindMalformedLabel && k <= KindRdlengthMismatch:
		return CategoryProtocol
	case k == KindRetriesExhausted:
		return CategoryExhausted
	default:
		return 0
	}
}

// Retryable reports whether an attempt that failed with this kind may be repeated.
func (k ErrorKind) Retryable() bool {
	c := k.Category()
	return c == CategoryTransport || c == CategoryTimeout
}

// Error is the typed failure returned by every layer of a resolution.
// Two Errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind ErrorKind
	Msg  string
	// Attempts is only set for KindRetriesExhausted.
	Attempts int
	Err      error
}

// NewError returns an Error of the given kind.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError returns an Error of the given kind wrapping cause.
func WrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// NewRetriesExhaustedError reports that every attempt failed without a reply.
func NewRetriesExhaustedError(attempts int, last error) *Error {
	return &Error{
		Kind:     KindRetriesExhausted,
		Msg:      fmt.Sprintf("maximum number of retries [%d] exceeded", attempts),
		Attempts: attempts,
		Err:      last,
	}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil && e.Kind != KindRetriesExhausted {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same kind, so the Err* sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Sentinels for errors.Is comparisons.
var (
	ErrEmptyLabel           = &Error{Kind: KindEmptyLabel}
	ErrLabelTooLong         = &Error{Kind: KindLabelTooLong}
	ErrMessageTooLarge      = &Error{Kind: KindMessageTooLarge}
	ErrUnsupportedQuery     = &Error{Kind: KindUnsupportedQuery}
	ErrTransport            = &Error{Kind: KindTransport}
	ErrTimeout              = &Error{Kind: KindTimeout}
	ErrMalformedLabel       = &Error{Kind: KindMalformedLabel}
	ErrPointerCycle         = &Error{Kind: KindPointerCycle}
	ErrTruncatedMessage     = &Error{Kind: KindTruncatedMessage}
	ErrIDMismatch           = &Error{Kind: KindIDMismatch}
	ErrTruncated            = &Error{Kind: KindTruncated}
	ErrRecursionUnsupported = &Error{Kind: KindRecursionUnsupported}
	ErrFormatError          = &Error{Kind: KindFormatError}
	ErrServerFailure        = &Error{Kind: KindServerFailure}
	ErrNotImplemented       = &Error{Kind: KindNotImplemented}
	ErrRefused              = &Error{Kind: KindRefused}
	ErrUnknownRcode         = &Error{Kind: KindUnknownRcode}
	ErrUnexpectedClass      = &Error{Kind: KindUnexpectedClass}
	ErrUnsupportedType      = &Error{Kind: KindUnsupportedType}
	ErrRdlengthMismatch     = &Error{Kind: KindRdlengthMismatch}
	ErrRetriesExhausted     = &Error{Kind: KindRetriesExhausted}
)
