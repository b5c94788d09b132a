package domain

import "time"

// Outcome distinguishes the two successful terminal states of a resolution.
type Outcome uint8

const (
	// OutcomeAnswered means the server returned NOERROR; the answer list may still be empty.
	OutcomeAnswered Outcome = iota
	// OutcomeNameNotFound means the server returned NXDOMAIN.
	OutcomeNameNotFound
)

// String returns the textual representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAnswered:
		return "answered"
	case OutcomeNameNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// ExchangeResult is the product of one successful query/response exchange.
type ExchangeResult struct {
	Header     Header
	Outcome    Outcome
	Answers    []ResourceRecord
	Additional []ResourceRecord

	// Elapsed runs from the first send to the accepted receive.
	Elapsed time.Duration
	// Attempts is the number of sends it took, at least 1.
	Attempts int
}

// NotFound returns true if the server reported that the name does not exist.
func (r ExchangeResult) NotFound() bool {
	return r.Outcome == OutcomeNameNotFound
}

// Authoritative returns true if the responding server is an authority for the name.
func (r ExchangeResult) Authoritative() bool {
	return r.Header.Authoritative()
}

// Retries returns the number of retransmissions, i.e. attempts beyond the first.
func (r ExchangeResult) Retries() int {
	if r.Attempts <= 1 {
		return 0
	}
	return r.Attempts - 1
}

// HasAnswers returns true if the response contains answer records.
func (r ExchangeResult) HasAnswers() bool {
	return len(r.Answers) > 0
}
