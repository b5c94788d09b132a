package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRCode_String(t *testing.T) {
	cases := []struct {
		code RCode
		want string
	}{
		{0, "NOERROR"}, {1, "FORMERR"}, {2, "SERVFAIL"}, {3, "NXDOMAIN"}, {4, "NOTIMP"}, {5, "REFUSED"},
		{6, "UNKNOWN(6)"}, {15, "UNKNOWN(15)"},
	}
	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestRCode_Err(t *testing.T) {
	cases := []struct {
		code RCode
		want error
	}{
		{0, nil},
		{1, ErrFormatError},
		{2, ErrServerFailure},
		{3, nil},
		{4, ErrNotImplemented},
		{5, ErrRefused},
	}
	for _, tc := range cases {
		err := tc.code.Err()
		if tc.want == nil {
			assert.NoError(t, err, "rcode %d", tc.code)
			continue
		}
		assert.ErrorIs(t, err, tc.want, "rcode %d", tc.code)
		assert.Equal(t, CategoryProtocol, KindOf(err).Category())
	}

	for code := RCode(6); code <= 15; code++ {
		err := code.Err()
		assert.True(t, errors.Is(err, ErrUnknownRcode), "rcode %d should map to UnknownRcode", code)
	}
}
