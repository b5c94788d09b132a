package domain

import (
	"testing"
)

func TestRRType_IsSupported(t *testing.T) {
	cases := []struct {
		value RRType
		want  bool
	}{
		{1, true}, {2, true}, {5, true}, {15, true},
		{0, false}, {3, false}, {6, false}, {12, false}, {16, false}, {28, false}, {41, false}, {255, false},
	}
	for _, tc := range cases {
		if got := tc.value.IsSupported(); got != tc.want {
			t.Errorf("IsSupported(%d) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRRType_String(t *testing.T) {
	cases := []struct {
		t    RRType
		want string
	}{
		{1, "A"}, {2, "NS"}, {5, "CNAME"}, {6, "SOA"}, {12, "PTR"}, {15, "MX"}, {16, "TXT"},
		{28, "AAAA"}, {33, "SRV"}, {41, "OPT"}, {255, "ANY"},
		{0, "UNKNOWN(0)"}, {3, "UNKNOWN(3)"}, {9999, "UNKNOWN(9999)"},
	}
	for _, tc := range cases {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestRRTypeFromString(t *testing.T) {
	cases := []struct {
		input string
		want  RRType
	}{
		{"A", 1}, {"NS", 2}, {"CNAME", 5}, {"MX", 15},
		{"a", 1}, {" mx ", 15}, {"ns", 2},
		{"AAAA", 0}, {"SOA", 0}, {"", 0}, {"foo", 0},
	}
	for _, tc := range cases {
		if got := RRTypeFromString(tc.input); got != tc.want {
			t.Errorf("RRTypeFromString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
