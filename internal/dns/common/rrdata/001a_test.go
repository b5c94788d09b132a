package rrdata

import (
	"errors"
	"testing"

	"github.com/haukened/rr-dig/internal/dns/domain"
)

func TestDecodeAData_Valid(t *testing.T) {
	tests := []struct {
		payload  []byte
		expected string
	}{
		{[]byte{93, 184, 216, 34}, "93.184.216.34"},
		{[]byte{8, 8, 8, 8}, "8.8.8.8"},
		{[]byte{127, 0, 0, 1}, "127.0.0.1"},
	}

	for _, tt := range tests {
		got, err := decodeAData(rdata{msg: tt.payload, off: 0, length: len(tt.payload)})
		if err != nil {
			t.Errorf("decodeAData(%v) returned error: %v", tt.payload, err)
			continue
		}
		if got.String() != tt.expected {
			t.Errorf("decodeAData(%v) = %q, want %q", tt.payload, got.String(), tt.expected)
		}
		if got.Type() != domain.RRTypeA {
			t.Errorf("decodeAData(%v) type = %s, want A", tt.payload, got.Type())
		}
	}
}

func TestDecodeAData_RdlengthMismatch(t *testing.T) {
	// the payload bytes themselves are irrelevant, only the announced length counts
	for _, length := range []int{0, 1, 3, 5, 16} {
		msg := make([]byte, length)
		_, err := decodeAData(rdata{msg: msg, off: 0, length: length})
		if !errors.Is(err, domain.ErrRdlengthMismatch) {
			t.Errorf("decodeAData(length=%d) error = %v, want RdlengthMismatch", length, err)
		}
	}
}
