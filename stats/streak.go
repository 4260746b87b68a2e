package stats

import (
	"time"

	"github.com/momentumlab/momentum/models"
)

// DayCompletion is one day of the habit series, ordered ascending by date.
type DayCompletion struct {
	Date                 time.Time
	CompletionPercentage int
}

// CurrentDailyStreak walks backward from the most recent day and counts
// consecutive days with a completion percentage above zero, stopping at the
// first zero day.
func CurrentDailyStreak(days []DayCompletion) int {
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].CompletionPercentage <= 0 {
			break
		}
		streak++
	}
	return streak
}

// LongestDailyStreak finds the maximum run of consecutive above-zero days in
// a single forward scan.
func LongestDailyStreak(days []DayCompletion) int {
	longest, run := 0, 0
	for _, d := range days {
		if d.CompletionPercentage > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// CurrentTradeStreaks scans backward from the most recent closed trade.
// A winning streak counts consecutive TP exits; a losing streak counts
// consecutive SL exits. The first trade that does not extend the streak
// terminates the scan, so a BE or Manual exit breaks both without flipping
// to the other side.
func CurrentTradeStreaks(reasons []models.ExitReason) (winning, losing int) {
	if len(reasons) == 0 {
		return 0, 0
	}
	switch reasons[len(reasons)-1] {
	case models.ExitTakeProfit:
		for i := len(reasons) - 1; i >= 0; i-- {
			if reasons[i] != models.ExitTakeProfit {
				break
			}
			winning++
		}
	case models.ExitStopLoss:
		for i := len(reasons) - 1; i >= 0; i-- {
			if reasons[i] != models.ExitStopLoss {
				break
			}
			losing++
		}
	case models.ExitBreakEven, models.ExitManual:
		// neither win nor loss; the current streak is over
	}
	return winning, losing
}

// MaxTradeStreaks finds the longest winning and losing runs in one forward
// scan. A TP extends the winning run and resets the losing run, an SL does
// the opposite, and any other exit resets both.
func MaxTradeStreaks(reasons []models.ExitReason) (maxWinning, maxLosing int) {
	winRun, lossRun := 0, 0
	for _, r := range reasons {
		switch r {
		case models.ExitTakeProfit:
			winRun++
			lossRun = 0
			if winRun > maxWinning {
				maxWinning = winRun
			}
		case models.ExitStopLoss:
			lossRun++
			winRun = 0
			if lossRun > maxLosing {
				maxLosing = lossRun
			}
		case models.ExitBreakEven, models.ExitManual:
			winRun = 0
			lossRun = 0
		}
	}
	return maxWinning, maxLosing
}
