package stats

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComposeCapitalAdditive(t *testing.T) {
	// Percentages are summed first and applied once: 1000 * (1 + 7/100).
	got := ComposeCapital(d("1000"), []decimal.Decimal{d("10"), d("-5"), d("2")})
	if !got.Equal(d("1070")) {
		t.Errorf("ComposeCapital = %s, want 1070", got)
	}
}

func TestComposeCapitalEmpty(t *testing.T) {
	got := ComposeCapital(d("2500"), nil)
	if !got.Equal(d("2500")) {
		t.Errorf("ComposeCapital with no trades = %s, want 2500", got)
	}
}

func TestComposeCapitalNegativeSum(t *testing.T) {
	got := ComposeCapital(d("1000"), []decimal.Decimal{d("-30"), d("-80")})
	if !got.Equal(d("-100")) {
		t.Errorf("ComposeCapital = %s, want -100", got)
	}
}

func TestAmountFromPercent(t *testing.T) {
	got := AmountFromPercent(d("10"), d("1000"))
	if !got.Equal(d("100")) {
		t.Errorf("AmountFromPercent(10, 1000) = %s, want 100", got)
	}

	got = AmountFromPercent(d("-5"), d("1000"))
	if !got.Equal(d("-50")) {
		t.Errorf("AmountFromPercent(-5, 1000) = %s, want -50", got)
	}

	// Zero capital degrades to a zero amount, never an error.
	got = AmountFromPercent(d("10"), decimal.Zero)
	if !got.IsZero() {
		t.Errorf("AmountFromPercent(10, 0) = %s, want 0", got)
	}
}

func TestPercentFromAmount(t *testing.T) {
	got, ok := PercentFromAmount(d("-50"), d("1000"))
	if !ok || !got.Equal(d("-5")) {
		t.Errorf("PercentFromAmount(-50, 1000) = %s, %v, want -5, true", got, ok)
	}

	// Division by zero capital cannot derive anything.
	if _, ok := PercentFromAmount(d("100"), decimal.Zero); ok {
		t.Error("PercentFromAmount with zero capital should not derive")
	}
}
