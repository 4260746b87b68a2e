package stats

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradePnL is the raw profit/loss of one closed trade as it comes off the
// row: string-typed percentage and amount, plus the owning journal for
// capital lookup.
type TradePnL struct {
	JournalID uuid.UUID
	Percent   string
	Amount    string
}

// ProfitFactor computes total gains over total losses for a set of closed
// trades. Amounts are preferred: each trade resolves to an absolute amount
// via its own stored amount, or percentage times the journal's capital from
// the capitals map. When not a single amount resolves across the whole set,
// the computation falls back to accumulating pure percentage points instead.
// The two modes are never mixed in one sum.
//
// Returns gains/losses, +Inf when there are gains but no losses, and 0 when
// there is nothing on either side.
func ProfitFactor(trades []TradePnL, capitals map[uuid.UUID]decimal.Decimal) float64 {
	var amountGains, amountLosses decimal.Decimal
	var pctGains, pctLosses decimal.Decimal
	amountResolved := false

	for _, t := range trades {
		if amount, ok := resolveAmount(t, capitals); ok {
			amountResolved = true
			switch {
			case amount.IsPositive():
				amountGains = amountGains.Add(amount)
			case amount.IsNegative():
				amountLosses = amountLosses.Add(amount.Neg())
			}
			continue
		}
		pct := ParseDecimal(t.Percent)
		switch {
		case pct.IsPositive():
			pctGains = pctGains.Add(pct)
		case pct.IsNegative():
			pctLosses = pctLosses.Add(pct.Neg())
		}
	}

	gains, losses := pctGains, pctLosses
	if amountResolved {
		gains, losses = amountGains, amountLosses
	}

	switch {
	case losses.IsPositive():
		f, _ := gains.Div(losses).Float64()
		return f
	case gains.IsPositive():
		return math.Inf(1)
	default:
		return 0
	}
}

// resolveAmount attempts the absolute-amount resolution for one trade: the
// stored amount wins, else percentage against the journal's known capital.
func resolveAmount(t TradePnL, capitals map[uuid.UUID]decimal.Decimal) (decimal.Decimal, bool) {
	if HasValue(t.Amount) {
		return ParseDecimal(t.Amount), true
	}
	capital, ok := capitals[t.JournalID]
	if !ok || capital.IsZero() || !HasValue(t.Percent) {
		return decimal.Zero, false
	}
	return AmountFromPercent(ParseDecimal(t.Percent), capital), true
}
