package exchange

// State is a step of a single exchange.
type State uint8

const (
	StateIdle State = iota
	StateSent
	StateTimedOut
	StateReceived
	StateRetriesExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSent:
		return "sent"
	case StateTimedOut:
		return "timed-out"
	case StateReceived:
		return "received"
	case StateRetriesExhausted:
		return "retries-exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateReceived || s == StateRetriesExhausted
}
