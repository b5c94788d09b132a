package exchange

import (
	"time"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

// QueryCodec builds the query once per exchange and decodes the reply
// against the id it was built with.
type QueryCodec interface {
	EncodeQuery(q domain.Question) (uint16, []byte, error)
	DecodeResponse(data []byte, expectedID uint16) (domain.ExchangeResult, error)
}

// Transport reaches the server. Errors must match domain.ErrTimeout or
// domain.ErrTransport to be retried; anything else ends the exchange.
type Transport interface {
	Send(msg []byte) error
	Receive(timeout time.Duration) ([]byte, error)
}
