package stats

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal converts a raw string-typed numeric column into a decimal.
// Null-ish values (empty, "undefined", "null") and unparsable text collapse
// to zero. A naive cast of "undefined" would turn into NaN and poison every
// downstream sum, so this is applied at every string-to-number boundary.
func ParseDecimal(raw string) decimal.Decimal {
	if !HasValue(raw) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// HasValue reports whether raw holds an actual numeric value rather than one
// of the persistence layer's unset placeholders.
func HasValue(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	switch strings.ToLower(s) {
	case "undefined", "null", "nan":
		return false
	}
	_, err := decimal.NewFromString(s)
	return err == nil
}
