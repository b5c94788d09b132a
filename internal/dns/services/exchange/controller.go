// Package exchange runs one query/response exchange against a DNS server,
// retransmitting the same query on timeout until a reply arrives or the
// attempt budget is spent.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

const (
	DefaultTimeout    = 5 * time.Second
	DefaultMaxRetries = 3
)

var (
	errCodecRequired     = errors.New("query codec is required")
	errTransportRequired = errors.New("transport is required")
)

// Controller owns the retry loop for a single resolution at a time. It is
// not safe for concurrent use because the transport it drives is a single
// socket.
type Controller struct {
	codec      QueryCodec
	transport  Transport
	clock      clock.Clock
	logger     log.Logger
	timeout    time.Duration
	maxRetries int
}

// Options configures a Controller.
type Options struct {
	// required
	Codec     QueryCodec
	Transport Transport

	// Timeout bounds each receive. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the total number of sends, including the first.
	// Defaults to DefaultMaxRetries.
	MaxRetries int

	Clock  clock.Clock
	Logger log.Logger
}

// NewController validates opts and fills in defaults.
func NewController(opts Options) (*Controller, error) {
	if opts.Codec == nil {
		return nil, errCodecRequired
	}
	if opts.Transport == nil {
		return nil, errTransportRequired
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	return &Controller{
		codec:      opts.Codec,
		transport:  opts.Transport,
		clock:      opts.Clock,
		logger:     opts.Logger,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
	}, nil
}

// Resolve queries the IN-class records of type qtype for name.
func (c *Controller) Resolve(ctx context.Context, name string, qtype domain.RRType) (domain.ExchangeResult, error) {
	q, err := domain.NewQuestion(name, qtype)
	if err != nil {
		return domain.ExchangeResult{}, err
	}
	return c.Exchange(ctx, q)
}

// Exchange encodes q once and sends the same bytes on every attempt. Send
// failures and timeouts each consume an attempt. Any other failure,
// including every protocol error in the reply, ends the exchange at once.
// Running out of attempts yields an error matching domain.ErrRetriesExhausted
// that wraps the last attempt's failure.
//
// The returned result carries the elapsed time from the first send to the
// accepted reply, and the number of sends made.
func (c *Controller) Exchange(ctx context.Context, q domain.Question) (domain.ExchangeResult, error) {
	id, msg, err := c.codec.EncodeQuery(q)
	if err != nil {
		return domain.ExchangeResult{}, err
	}

	logger := c.logger.With(map[string]any{
		"id":   id,
		"name": q.Name,
		"type": q.Type.String(),
	})

	var (
		start   time.Time
		lastErr error
		state   = StateIdle
	)
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return domain.ExchangeResult{}, fmt.Errorf("exchange cancelled after %d attempts: %w", attempt-1, err)
		}
		if attempt == 1 {
			start = c.clock.Now()
		}

		state = StateSent
		logger.Debug(map[string]any{
			"attempt": attempt,
			"state":   state.String(),
			"bytes":   len(msg),
		}, "sending query")

		data, err := c.roundTrip(msg)
		if err != nil {
			if !domain.KindOf(err).Retryable() {
				return domain.ExchangeResult{}, err
			}
			lastErr = err
			state = StateTimedOut
			logger.Warn(map[string]any{
				"attempt": attempt,
				"state":   state.String(),
				"error":   err.Error(),
			}, "attempt failed")
			continue
		}

		res, err := c.codec.DecodeResponse(data, id)
		if err != nil {
			logger.Warn(map[string]any{
				"attempt": attempt,
				"error":   err.Error(),
			}, "response rejected")
			return domain.ExchangeResult{}, err
		}

		state = StateReceived
		res.Elapsed = c.clock.Since(start)
		res.Attempts = attempt
		logger.Info(map[string]any{
			"attempt":    attempt,
			"state":      state.String(),
			"outcome":    res.Outcome.String(),
			"answers":    len(res.Answers),
			"additional": len(res.Additional),
			"elapsed":    res.Elapsed.String(),
		}, "response received")
		return res, nil
	}

	state = StateRetriesExhausted
	logger.Warn(map[string]any{
		"attempts": c.maxRetries,
		"state":    state.String(),
	}, "giving up")
	return domain.ExchangeResult{}, domain.NewRetriesExhaustedError(c.maxRetries, lastErr)
}

// roundTrip performs one send followed by one bounded receive.
func (c *Controller) roundTrip(msg []byte) ([]byte, error) {
	if err := c.transport.Send(msg); err != nil {
		return nil, err
	}
	return c.transport.Receive(c.timeout)
}
