package stats

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.5", "10.5"},
		{"-3.25", "-3.25"},
		{" 7 ", "7"},
		{"", "0"},
		{"undefined", "0"},
		{"null", "0"},
		{"NaN", "0"},
		{"abc", "0"},
		{"10,5", "0"},
	}

	for _, c := range cases {
		got := ParseDecimal(c.in)
		if got.String() != c.want {
			t.Errorf("ParseDecimal(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseDecimalNeverNaN(t *testing.T) {
	// The whole point of parse-or-zero: garbage must sum cleanly.
	total := decimal.Zero
	for _, raw := range []string{"undefined", "", "10", "junk", "-4"} {
		total = total.Add(ParseDecimal(raw))
	}
	if total.String() != "6" {
		t.Errorf("expected garbage-tolerant sum 6, got %s", total)
	}
}

func TestHasValue(t *testing.T) {
	for _, raw := range []string{"0", "10.5", "-1", " 2 "} {
		if !HasValue(raw) {
			t.Errorf("HasValue(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{"", "  ", "undefined", "Undefined", "null", "not a number"} {
		if HasValue(raw) {
			t.Errorf("HasValue(%q) = true, want false", raw)
		}
	}
}
