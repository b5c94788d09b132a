package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/haukened/rr-dig/internal/dns/common/log"
	"github.com/haukened/rr-dig/internal/dns/domain"
)

// DefaultBufferSize fits any UDP payload, so oversized replies are never
// silently cut.
const DefaultBufferSize = 65535

// DialFunc establishes a network connection. It matches
// (*net.Dialer).DialContext so tests can substitute a fake connection.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options configures a UDPTransport. Zero values select defaults.
type Options struct {
	Dial       DialFunc
	Logger     log.Logger
	BufferSize int
}

// UDPTransport is a connected UDP socket to a single DNS server. A connected
// socket only delivers datagrams whose source is the peer.
type UDPTransport struct {
	conn    net.Conn
	peer    string
	logger  log.Logger
	bufSize int
}

// NewUDPTransport dials peer (host:port) over UDP.
func NewUDPTransport(ctx context.Context, peer string, opts Options) (*UDPTransport, error) {
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}

	conn, err := opts.Dial(ctx, "udp", peer)
	if err != nil {
		return nil, domain.WrapError(domain.KindTransport, fmt.Sprintf("failed to connect to %s", peer), err)
	}

	opts.Logger.Debug(map[string]any{
		"peer":  peer,
		"local": addrString(conn.LocalAddr()),
	}, "UDP transport connected")

	return &UDPTransport{
		conn:    conn,
		peer:    peer,
		logger:  opts.Logger,
		bufSize: opts.BufferSize,
	}, nil
}

// Send writes msg as a single datagram.
func (t *UDPTransport) Send(msg []byte) error {
	n, err := t.conn.Write(msg)
	if err != nil {
		return domain.WrapError(domain.KindTransport, "write failed", err)
	}
	if n != len(msg) {
		return domain.NewError(domain.KindTransport, fmt.Sprintf("short write: %d of %d bytes", n, len(msg)))
	}
	return nil
}

// Receive waits up to timeout for one datagram.
func (t *UDPTransport) Receive(timeout time.Duration) ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, domain.WrapError(domain.KindTransport, "failed to set read deadline", err)
	}

	buf := make([]byte, t.bufSize)
	n, err := t.conn.Read(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, domain.WrapError(domain.KindTimeout, fmt.Sprintf("no response from %s within %v", t.peer, timeout), err)
		}
		return nil, domain.WrapError(domain.KindTransport, "read failed", err)
	}

	t.logger.Debug(map[string]any{
		"peer":  t.peer,
		"bytes": n,
	}, "datagram received")

	return buf[:n:n], nil
}

// Close closes the socket.
func (t *UDPTransport) Close() error {
	return t.conn.Close()
}

// Peer returns the address the transport was dialed to.
func (t *UDPTransport) Peer() string {
	return t.peer
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}

var _ Transport = (*UDPTransport)(nil)
