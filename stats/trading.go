package stats

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/momentumlab/momentum/models"
	"github.com/shopspring/decimal"
)

// SortTradesChronological orders trades by trade date ascending, breaking
// ties by creation order. Capital composition and streaks both depend on
// this ordering.
func SortTradesChronological(trades []models.AdvancedTrade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if !trades[i].TradeDate.Equal(trades[j].TradeDate) {
			return trades[i].TradeDate.Before(trades[j].TradeDate)
		}
		return trades[i].CreatedAt.Before(trades[j].CreatedAt)
	})
}

// ComposeTradingStats aggregates a chronologically ordered trade set into the
// dashboard summary. capitals maps journal ids to their starting capital for
// percentage-to-amount resolution; journal, when non-nil, scopes the response
// to a single journal and is echoed back.
func ComposeTradingStats(trades []models.AdvancedTrade, capitals map[uuid.UUID]decimal.Decimal, journal *models.TradingJournal) models.TradingStats {
	s := models.TradingStats{
		TotalTrades: len(trades),
		Journal:     journal,
	}

	var reasons []models.ExitReason
	var pnls []TradePnL
	totalPct := decimal.Zero

	for _, t := range trades {
		if !t.Closed {
			continue
		}
		s.ClosedTrades++
		reasons = append(reasons, t.ExitReason)
		pnls = append(pnls, TradePnL{JournalID: t.JournalID, Percent: t.ProfitLossPct, Amount: t.ProfitLossAmount})
		totalPct = totalPct.Add(ParseDecimal(t.ProfitLossPct))

		switch t.ExitReason {
		case models.ExitTakeProfit:
			s.TPTrades++
			s.WinningTrades++
		case models.ExitStopLoss:
			s.SLTrades++
			s.LosingTrades++
		case models.ExitBreakEven:
			s.BETrades++
		case models.ExitManual:
			// counted in ClosedTrades only
		}
	}

	s.TotalPnL, _ = totalPct.Float64()
	if s.ClosedTrades > 0 {
		s.AvgPnL, _ = totalPct.Div(decimal.NewFromInt(int64(s.ClosedTrades))).Float64()
		// BE and Manual exits stay in the denominator: win rate is
		// winning/closed, not winning/(winning+losing).
		s.WinRate = int(math.Round(float64(s.WinningTrades) / float64(s.ClosedTrades) * 100))
	}

	if amount, ok := totalResolvedAmount(pnls, capitals); ok {
		f, _ := amount.Float64()
		s.TotalAmountPnL = &f
	}

	s.ProfitFactor = models.Ratio(ProfitFactor(pnls, capitals))
	s.CurrentWinningStreak, s.CurrentLosingStreak = CurrentTradeStreaks(reasons)
	s.MaxWinningStreak, s.MaxLosingStreak = MaxTradeStreaks(reasons)

	return s
}

// totalResolvedAmount sums the absolute amounts of every trade that resolves
// one. ok is false when nothing in the set resolved, meaning the account has
// no usable currency figures at all.
func totalResolvedAmount(pnls []TradePnL, capitals map[uuid.UUID]decimal.Decimal) (decimal.Decimal, bool) {
	total := decimal.Zero
	resolved := false
	for _, p := range pnls {
		if amount, ok := resolveAmount(p, capitals); ok {
			total = total.Add(amount)
			resolved = true
		}
	}
	return total, resolved
}

// ComposeDailyPnL folds closed trades into a per-date series for charting.
// Input must be chronological; output dates appear in first-seen order.
func ComposeDailyPnL(trades []models.AdvancedTrade, capitals map[uuid.UUID]decimal.Decimal) []models.DailyPnL {
	series := make([]models.DailyPnL, 0)
	index := make(map[string]int)

	for _, t := range trades {
		if !t.Closed {
			continue
		}
		key := t.TradeDate.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(series)
			index[key] = i
			series = append(series, models.DailyPnL{Date: t.TradeDate})
		}

		pct, _ := ParseDecimal(t.ProfitLossPct).Float64()
		series[i].PnL += pct
		series[i].TradeCount++

		if amount, ok := resolveAmount(TradePnL{JournalID: t.JournalID, Percent: t.ProfitLossPct, Amount: t.ProfitLossAmount}, capitals); ok {
			f, _ := amount.Float64()
			series[i].AmountPnL += f
		}
	}
	return series
}
