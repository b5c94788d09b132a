package exchange

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/bassosimone/runtimex"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haukened/rr-dig/internal/dns/common/clock"
	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
	"github.com/haukened/rr-dig/internal/dns/gateways/wire"
)

const testID = 0xCAFE

// MockTransport implements Transport for testing
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Send(msg []byte) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockTransport) Receive(timeout time.Duration) ([]byte, error) {
	args := m.Called(timeout)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

var (
	errTimeout = domain.NewError(domain.KindTimeout, "no response")
	errSend    = domain.WrapError(domain.KindTransport, "write failed", errors.New("network is unreachable"))
)

func newCodec() wire.DNSCodec {
	return wire.NewUDPCodec(log.NewNoopLogger(), func() uint16 { return testID })
}

func aReply(id uint16, modify func(*dns.Msg)) []byte {
	query := new(dns.Msg)
	query.SetQuestion("example.com.", dns.TypeA)
	query.Id = id

	resp := new(dns.Msg)
	resp.SetReply(query)
	resp.RecursionAvailable = true
	resp.Answer = []dns.RR{&dns.A{
		Hdr: dns.RR_Header{Name: "example.com.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 3600},
		A:   net.ParseIP("93.184.216.34"),
	}}
	if modify != nil {
		modify(resp)
	}
	return runtimex.PanicOnError1(resp.Pack())
}

func newTestController(t *testing.T, tr Transport, clk clock.Clock, maxRetries int) *Controller {
	t.Helper()
	c, err := NewController(Options{
		Codec:      newCodec(),
		Transport:  tr,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		Clock:      clk,
		Logger:     log.NewNoopLogger(),
	})
	require.NoError(t, err)
	return c
}

func TestController_FirstAttemptSucceeds(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(nil).Once()
	tr.On("Receive", 2*time.Second).
		Run(func(mock.Arguments) { clk.Advance(120 * time.Millisecond) }).
		Return(aReply(testID, nil), nil).Once()

	c := newTestController(t, tr, clk, 3)
	res, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 0, res.Retries())
	assert.Equal(t, 120*time.Millisecond, res.Elapsed)
	require.Len(t, res.Answers, 1)
	assert.Equal(t, domain.Address{93, 184, 216, 34}, res.Answers[0].Data)
	assert.Equal(t, uint32(3600), res.Answers[0].TTL)
	tr.AssertExpectations(t)
}

func TestController_AlwaysTimesOut(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		t.Run(fmt.Sprintf("max retries %d", n), func(t *testing.T) {
			tr := &MockTransport{}
			tr.On("Send", mock.Anything).Return(nil)
			tr.On("Receive", mock.Anything).Return(nil, errTimeout)

			c := newTestController(t, tr, clock.NewMockClock(time.Now()), n)
			_, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
			require.Error(t, err)

			assert.ErrorIs(t, err, domain.ErrRetriesExhausted)
			assert.ErrorIs(t, err, domain.ErrTimeout, "last failure stays in the chain")
			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, n, de.Attempts)

			tr.AssertNumberOfCalls(t, "Send", n)
			tr.AssertNumberOfCalls(t, "Receive", n)
		})
	}
}

func TestController_RetransmitsSameBytes(t *testing.T) {
	var sent [][]byte
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).
		Run(func(args mock.Arguments) { sent = append(sent, args.Get(0).([]byte)) }).
		Return(nil)
	tr.On("Receive", mock.Anything).Return(nil, errTimeout).Twice()
	tr.On("Receive", mock.Anything).Return(aReply(testID, nil), nil).Once()

	ids := 0
	c, err := NewController(Options{
		Codec: wire.NewUDPCodec(log.NewNoopLogger(), func() uint16 {
			ids++
			return testID
		}),
		Transport:  tr,
		MaxRetries: 3,
	})
	require.NoError(t, err)

	res, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 2, res.Retries())

	assert.Equal(t, 1, ids, "the id is drawn once per exchange")
	require.Len(t, sent, 3)
	assert.Equal(t, sent[0], sent[1])
	assert.Equal(t, sent[0], sent[2])
}

func TestController_ElapsedSpansRetries(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(nil)
	tr.On("Receive", mock.Anything).
		Run(func(mock.Arguments) { clk.Advance(2 * time.Second) }).
		Return(nil, errTimeout).Once()
	tr.On("Receive", mock.Anything).
		Run(func(mock.Arguments) { clk.Advance(250 * time.Millisecond) }).
		Return(aReply(testID, nil), nil).Once()

	c := newTestController(t, tr, clk, 3)
	res, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	require.NoError(t, err)
	assert.Equal(t, 2250*time.Millisecond, res.Elapsed)
	assert.Equal(t, 2, res.Attempts)
}

func TestController_SendFailureConsumesAttempt(t *testing.T) {
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(errSend).Once()
	tr.On("Send", mock.Anything).Return(nil).Once()
	tr.On("Receive", mock.Anything).Return(aReply(testID, nil), nil).Once()

	c := newTestController(t, tr, nil, 2)
	res, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	tr.AssertNumberOfCalls(t, "Receive", 1)
}

func TestController_SendFailuresExhaustRetries(t *testing.T) {
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(errSend)

	c := newTestController(t, tr, nil, 3)
	_, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	assert.ErrorIs(t, err, domain.ErrRetriesExhausted)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, "maximum number of retries [3] exceeded", err.Error())
	tr.AssertNumberOfCalls(t, "Send", 3)
	tr.AssertNotCalled(t, "Receive", mock.Anything)
}

func TestController_ProtocolErrorsAreTerminal(t *testing.T) {
	tests := []struct {
		name    string
		reply   []byte
		wantErr error
	}{
		{"id mismatch", aReply(testID+1, nil), domain.ErrIDMismatch},
		{"truncated", aReply(testID, func(m *dns.Msg) { m.Truncated = true }), domain.ErrTruncated},
		{"no recursion", aReply(testID, func(m *dns.Msg) { m.RecursionAvailable = false }), domain.ErrRecursionUnsupported},
		{"refused", aReply(testID, func(m *dns.Msg) { m.Rcode = dns.RcodeRefused }), domain.ErrRefused},
		{"server failure", aReply(testID, func(m *dns.Msg) { m.Rcode = dns.RcodeServerFailure }), domain.ErrServerFailure},
		{"garbage", []byte{0xCA, 0xFE}, domain.ErrTruncatedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &MockTransport{}
			tr.On("Send", mock.Anything).Return(nil)
			tr.On("Receive", mock.Anything).Return(tt.reply, nil)

			c := newTestController(t, tr, nil, 5)
			_, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, domain.ErrRetriesExhausted)
			tr.AssertNumberOfCalls(t, "Send", 1)
		})
	}
}

func TestController_NameNotFoundIsSuccess(t *testing.T) {
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(nil)
	tr.On("Receive", mock.Anything).Return(aReply(testID, func(m *dns.Msg) {
		m.Rcode = dns.RcodeNameError
		m.Answer = nil
	}), nil)

	c := newTestController(t, tr, nil, 3)
	res, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	require.NoError(t, err)
	assert.True(t, res.NotFound())
	assert.False(t, res.HasAnswers())
	assert.Equal(t, 1, res.Attempts)
}

func TestController_InputErrorsNeverSend(t *testing.T) {
	tests := []struct {
		name    string
		qname   string
		qtype   domain.RRType
		wantErr error
	}{
		{"empty name", "", domain.RRTypeA, domain.ErrEmptyLabel},
		{"empty label", "a..b", domain.RRTypeA, domain.ErrEmptyLabel},
		{"unsupported type", "example.com", domain.RRTypeTXT, domain.ErrUnsupportedQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &MockTransport{}
			c := newTestController(t, tr, nil, 3)

			_, err := c.Resolve(context.Background(), tt.qname, tt.qtype)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.CategoryInput, domain.KindOf(err).Category())
			tr.AssertNotCalled(t, "Send", mock.Anything)
		})
	}
}

func TestController_UnknownTransportErrorIsTerminal(t *testing.T) {
	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(nil)
	tr.On("Receive", mock.Anything).Return(nil, errors.New("unclassified"))

	c := newTestController(t, tr, nil, 3)
	_, err := c.Resolve(context.Background(), "example.com", domain.RRTypeA)
	require.EqualError(t, err, "unclassified")
	tr.AssertNumberOfCalls(t, "Send", 1)
}

func TestController_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	tr := &MockTransport{}
	tr.On("Send", mock.Anything).Return(nil)
	tr.On("Receive", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, errTimeout)

	c := newTestController(t, tr, nil, 5)
	_, err := c.Resolve(ctx, "example.com", domain.RRTypeA)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	tr.AssertNumberOfCalls(t, "Send", 1)
}

func TestNewController(t *testing.T) {
	_, err := NewController(Options{Transport: &MockTransport{}})
	assert.ErrorIs(t, err, errCodecRequired)

	_, err = NewController(Options{Codec: newCodec()})
	assert.ErrorIs(t, err, errTransportRequired)

	c, err := NewController(Options{Codec: newCodec(), Transport: &MockTransport{}})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.Equal(t, DefaultMaxRetries, c.maxRetries)
	assert.NotNil(t, c.clock)
	assert.NotNil(t, c.logger)
}

func TestState(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "timed-out", StateTimedOut.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.True(t, StateReceived.Terminal())
	assert.True(t, StateRetriesExhausted.Terminal())
	assert.False(t, StateSent.Terminal())
}
