package domain

import (
	"testing"
)

func TestRRClass_IsValid(t *testing.T) {
	cases := []struct {
		class RRClass
		want  bool
	}{
		{1, true},
		{0, false}, {3, false}, {4, false}, {254, false}, {255, false},
	}
	for _, tc := range cases {
		if got := tc.class.IsValid(); got != tc.want {
			t.Errorf("IsValid(%d) = %v, want %v", tc.class, got, tc.want)
		}
	}
}

func TestRRClass_String(t *testing.T) {
	cases := []struct {
		class RRClass
		want  string
	}{
		{1, "IN"}, {3, "CLASS3"}, {255, "CLASS255"},
	}
	for _, tc := range cases {
		if got := tc.class.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.class, got, tc.want)
		}
	}
}
