package models

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// HabitDayEntry is one habit's state inside a daily stats bundle.
type HabitDayEntry struct {
	HabitID   uuid.UUID `json:"habit_id"`
	Title     string    `json:"title"`
	Emoji     string    `json:"emoji"`
	Color     string    `json:"color"`
	Completed bool      `json:"completed"`
	Note      string    `json:"note,omitempty"`
}

// DailyHabitStats is the computed bundle for one calendar date. It is derived
// on every query and never persisted.
type DailyHabitStats struct {
	Date                 time.Time       `json:"date"`
	TotalHabits          int             `json:"total_habits"`
	CompletedHabits      int             `json:"completed_habits"`
	CompletionPercentage int             `json:"completion_percentage"`
	Habits               []HabitDayEntry `json:"habits"`
}

// WeeklyStat is one point in the rolling seven day series.
type WeeklyStat struct {
	Date                 time.Time `json:"date"`
	CompletedHabits      int       `json:"completed_habits"`
	TotalHabits          int       `json:"total_habits"`
	CompletionPercentage int       `json:"completion_percentage"`
}

// MonthlyProgress summarizes one calendar month of tracked days.
type MonthlyProgress struct {
	Month             string `json:"month"` // YYYY-MM
	DaysTracked       int    `json:"days_tracked"`
	AverageCompletion int    `json:"average_completion"`
}

// HabitStatsOverview bundles streaks and rolling aggregates for the habit
// dashboard.
type HabitStatsOverview struct {
	TotalActiveHabits     int               `json:"total_active_habits"`
	CurrentStreak         int               `json:"current_streak"`
	LongestStreak         int               `json:"longest_streak"`
	AverageCompletionRate int               `json:"average_completion_rate"`
	WeeklyStats           []WeeklyStat      `json:"weekly_stats"`
	MonthlyProgress       []MonthlyProgress `json:"monthly_progress"`
}

// RankInfo describes the badge derived from the current habit streak.
type RankInfo struct {
	Rank           string `json:"rank"`
	MinStreak      int    `json:"min_streak"`
	CurrentStreak  int    `json:"current_streak"`
	NextRank       string `json:"next_rank,omitempty"`
	DaysToNextRank int    `json:"days_to_next_rank"`
}

// Ratio is a profit-factor value. An all-winning trade set yields +Inf, which
// encoding/json refuses to marshal, so infinities serialize as null the same
// way the dashboard treats "no losses yet".
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// TradingStats is the aggregate summary for one journal or a user's whole
// account. TotalPnL/AvgPnL are percentage points; TotalAmountPnL is absolute
// currency and nil when no amount could be resolved for any trade.
type TradingStats struct {
	TotalTrades  int `json:"total_trades"`
	ClosedTrades int `json:"closed_trades"`

	TotalPnL       float64  `json:"total_pnl"`
	AvgPnL         float64  `json:"avg_pnl"`
	TotalAmountPnL *float64 `json:"total_amount_pnl,omitempty"`

	WinningTrades int   `json:"winning_trades"`
	LosingTrades  int   `json:"losing_trades"`
	WinRate       int   `json:"win_rate"`
	ProfitFactor  Ratio `json:"profit_factor"`

	TPTrades int `json:"tp_trades"`
	BETrades int `json:"be_trades"`
	SLTrades int `json:"sl_trades"`

	CurrentWinningStreak int `json:"current_winning_streak"`
	CurrentLosingStreak  int `json:"current_losing_streak"`
	MaxWinningStreak     int `json:"max_winning_streak"`
	MaxLosingStreak      int `json:"max_losing_streak"`

	Journal *TradingJournal `json:"journal,omitempty"`
}

// DailyPnL is one point in the per-date trading series used for charting.
type DailyPnL struct {
	Date       time.Time `json:"date"`
	PnL        float64   `json:"pnl"`
	AmountPnL  float64   `json:"amount_pnl"`
	TradeCount int       `json:"trade_count"`
}

// CapitalInfo reports a journal's capital curve endpoint.
type CapitalInfo struct {
	JournalID       uuid.UUID `json:"journal_id"`
	StartingCapital float64   `json:"starting_capital"`
	CurrentCapital  float64   `json:"current_capital"`
	ClosedTrades    int       `json:"closed_trades"`
}
