package stats

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComposeCapital computes the current capital from a starting capital and the
// chronologically ordered percentage returns of closed trades.
//
// Composition is additive: the percentages are summed first and applied once,
// current = start * (1 + sum(pct)/100). True compounding would multiply each
// (1+r) sequentially; switching to that would silently change every historical
// figure, so the additive behavior is kept.
func ComposeCapital(start decimal.Decimal, percentages []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range percentages {
		sum = sum.Add(p)
	}
	return start.Mul(decimal.NewFromInt(1).Add(sum.Div(hundred)))
}

// AmountFromPercent derives a trade's absolute amount from its percentage
// return and the capital at the time of the trade.
func AmountFromPercent(pct, capital decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred).Mul(capital)
}

// PercentFromAmount derives a trade's percentage return from its absolute
// amount and the capital at the time of the trade. With zero capital the
// percentage cannot be derived and ok is false; the caller leaves the field
// unset rather than storing an infinity.
func PercentFromAmount(amount, capital decimal.Decimal) (decimal.Decimal, bool) {
	if capital.IsZero() {
		return decimal.Zero, false
	}
	return amount.Div(capital).Mul(hundred), true
}
