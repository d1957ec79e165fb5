package ecc

import "testing"

func TestTypeString(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{TypeNone, "NONE"},
		{TypeHamming, "HAMMING"},
		{TypeBCH, "BCH"},
		{Type(42), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("Type(%d).String() = %q, want %q", int(tc.typ), got, tc.want)
		}
	}
}
