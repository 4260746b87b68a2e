package stats

import (
	"testing"
	"time"

	"github.com/momentumlab/momentum/models"
)

func daySeries(percentages ...int) []DayCompletion {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	days := make([]DayCompletion, len(percentages))
	for i, p := range percentages {
		days[i] = DayCompletion{Date: base.AddDate(0, 0, i), CompletionPercentage: p}
	}
	return days
}

func TestCurrentDailyStreak(t *testing.T) {
	cases := []struct {
		name string
		days []DayCompletion
		want int
	}{
		{"empty", nil, 0},
		{"all zero", daySeries(0, 0, 0), 0},
		{"ends on zero", daySeries(100, 50, 0), 0},
		{"unbroken", daySeries(33, 67, 100), 3},
		{"broken middle", daySeries(100, 0, 50, 100), 2},
		{"single day", daySeries(1), 1},
	}

	for _, c := range cases {
		if got := CurrentDailyStreak(c.days); got != c.want {
			t.Errorf("%s: CurrentDailyStreak = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestLongestDailyStreak(t *testing.T) {
	cases := []struct {
		name string
		days []DayCompletion
		want int
	}{
		{"empty", nil, 0},
		{"all zero", daySeries(0, 0, 0), 0},
		{"longest run early", daySeries(50, 50, 50, 0, 100), 3},
		{"longest run late", daySeries(100, 0, 33, 33, 33, 33), 4},
	}

	for _, c := range cases {
		if got := LongestDailyStreak(c.days); got != c.want {
			t.Errorf("%s: LongestDailyStreak = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestStreakMonotonicity(t *testing.T) {
	sequences := [][]int{
		{}, {0}, {100}, {0, 100}, {100, 0},
		{33, 67, 0, 100, 100}, {1, 1, 1, 1}, {0, 0, 1, 0, 1, 1},
	}
	for _, seq := range sequences {
		days := daySeries(seq...)
		current := CurrentDailyStreak(days)
		longest := LongestDailyStreak(days)
		if longest < current {
			t.Errorf("sequence %v: longest %d < current %d", seq, longest, current)
		}
	}
}

func reasons(rs ...models.ExitReason) []models.ExitReason { return rs }

func TestCurrentTradeStreaks(t *testing.T) {
	tp, be, sl, man := models.ExitTakeProfit, models.ExitBreakEven, models.ExitStopLoss, models.ExitManual

	cases := []struct {
		name     string
		reasons  []models.ExitReason
		wantWin  int
		wantLoss int
	}{
		{"empty", nil, 0, 0},
		{"winning run", reasons(sl, tp, tp, tp), 3, 0},
		{"losing run", reasons(tp, sl, sl), 0, 2},
		{"BE breaks not flips", reasons(tp, tp, be, tp), 1, 0},
		{"latest is BE", reasons(tp, tp, be), 0, 0},
		{"latest is manual", reasons(sl, sl, man), 0, 0},
		{"single TP", reasons(tp), 1, 0},
	}

	for _, c := range cases {
		win, loss := CurrentTradeStreaks(c.reasons)
		if win != c.wantWin || loss != c.wantLoss {
			t.Errorf("%s: CurrentTradeStreaks = (%d, %d), want (%d, %d)",
				c.name, win, loss, c.wantWin, c.wantLoss)
		}
	}
}

func TestMaxTradeStreaks(t *testing.T) {
	tp, be, sl, man := models.ExitTakeProfit, models.ExitBreakEven, models.ExitStopLoss, models.ExitManual

	cases := []struct {
		name     string
		reasons  []models.ExitReason
		wantWin  int
		wantLoss int
	}{
		{"empty", nil, 0, 0},
		{"alternating", reasons(tp, sl, tp, sl), 1, 1},
		{"BE resets both", reasons(tp, tp, be, tp), 2, 0},
		{"manual resets both", reasons(sl, sl, man, sl), 0, 2},
		{"long runs", reasons(tp, tp, tp, sl, sl, tp), 3, 2},
	}

	for _, c := range cases {
		win, loss := MaxTradeStreaks(c.reasons)
		if win != c.wantWin || loss != c.wantLoss {
			t.Errorf("%s: MaxTradeStreaks = (%d, %d), want (%d, %d)",
				c.name, win, loss, c.wantWin, c.wantLoss)
		}
	}
}
