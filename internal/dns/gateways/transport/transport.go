// Package transport provides the datagram capability the exchange controller
// uses to reach a single, already-resolved DNS server.
package transport

import (
	"time"
)

// Transport sends datagrams to a fixed peer and receives its replies.
// Implementations report a receive window that expires with an error matching
// domain.ErrTimeout and every other send or receive failure with an error
// matching domain.ErrTransport.
type Transport interface {
	// Send writes msg to the peer as one datagram.
	Send(msg []byte) error

	// Receive blocks for at most timeout and returns the next datagram from
	// the peer. The returned slice is owned by the caller.
	Receive(timeout time.Duration) ([]byte, error)

	// Close releases the underlying socket.
	Close() error
}

// TransportType represents the different types of DNS transport protocols.
type TransportType string

const (
	// TransportUDP represents standard DNS over UDP (RFC 1035)
	TransportUDP TransportType = "udp"

	// TransportDoH represents DNS over HTTPS (RFC 8484) - future implementation
	TransportDoH TransportType = "doh"

	// TransportDoT represents DNS over TLS (RFC 7858) - future implementation
	TransportDoT TransportType = "dot"
)
