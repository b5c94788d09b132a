package transport

import (
	"context"
	"fmt"
	"slices"
)

// NewTransport creates a transport of the given type connected to peer.
func NewTransport(ctx context.Context, transportType TransportType, peer string, opts Options) (Transport, error) {
	switch transportType {
	case TransportUDP:
		t, err := NewUDPTransport(ctx, peer, opts)
		if err != nil {
			return nil, err
		}
		return t, nil

	case TransportDoH:
		return nil, fmt.Errorf("DNS over HTTPS transport not yet implemented")

	case TransportDoT:
		return nil, fmt.Errorf("DNS over TLS transport not yet implemented")

	default:
		return nil, fmt.Errorf("unsupported transport type: %s", transportType)
	}
}

// GetSupportedTransports returns a list of currently supported transport types.
func GetSupportedTransports() []TransportType {
	return []TransportType{
		TransportUDP,
	}
}

// IsTransportSupported checks if a given transport type is currently supported.
func IsTransportSupported(transportType TransportType) bool {
	return slices.Contains(GetSupportedTransports(), transportType)
}
