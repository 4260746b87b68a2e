package stats

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/momentumlab/momentum/models"
)

// DateOnly truncates a timestamp to its calendar day in UTC. All habit math
// is day-granular.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CompletionPercentage is round(completed/total*100), zero when total is
// zero. Zero habits must render as 0, never NaN.
func CompletionPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ComposeDailyStats derives the completion bundle for one calendar date.
// Habits created after the date are excluded so a habit added yesterday does
// not show as incomplete for last week; inactive habits are skipped entirely.
// completions maps habit id to that date's completion row, if any.
func ComposeDailyStats(date time.Time, habits []models.Habit, completions map[uuid.UUID]models.HabitCompletion) models.DailyHabitStats {
	day := DateOnly(date)
	out := models.DailyHabitStats{
		Date:   day,
		Habits: make([]models.HabitDayEntry, 0),
	}

	for _, h := range habits {
		if !h.IsActive || DateOnly(h.CreatedAt).After(day) {
			continue
		}
		entry := models.HabitDayEntry{
			HabitID: h.ID,
			Title:   h.Title,
			Emoji:   h.Emoji,
			Color:   h.Color,
		}
		if c, ok := completions[h.ID]; ok {
			entry.Completed = c.Completed
			entry.Note = c.Note
		}
		out.TotalHabits++
		if entry.Completed {
			out.CompletedHabits++
		}
		out.Habits = append(out.Habits, entry)
	}

	out.CompletionPercentage = CompletionPercentage(out.CompletedHabits, out.TotalHabits)
	return out
}

// ComposeOverview assembles the habit dashboard from a window of daily stats
// ordered ascending by date. Days with no eligible habits count as tracked
// zero for streak purposes but are left out of the completion-rate average,
// keeping "no data" distinct from "measured zero".
func ComposeOverview(days []models.DailyHabitStats, totalActiveHabits int) models.HabitStatsOverview {
	series := make([]DayCompletion, len(days))
	for i, d := range days {
		series[i] = DayCompletion{Date: d.Date, CompletionPercentage: d.CompletionPercentage}
	}

	overview := models.HabitStatsOverview{
		TotalActiveHabits: totalActiveHabits,
		CurrentStreak:     CurrentDailyStreak(series),
		LongestStreak:     LongestDailyStreak(series),
		WeeklyStats:       make([]models.WeeklyStat, 0, 7),
		MonthlyProgress:   make([]models.MonthlyProgress, 0),
	}

	pctSum, tracked := 0, 0
	for _, d := range days {
		if d.TotalHabits > 0 {
			pctSum += d.CompletionPercentage
			tracked++
		}
	}
	if tracked > 0 {
		overview.AverageCompletionRate = int(math.Round(float64(pctSum) / float64(tracked)))
	}

	weekStart := len(days) - 7
	if weekStart < 0 {
		weekStart = 0
	}
	for _, d := range days[weekStart:] {
		overview.WeeklyStats = append(overview.WeeklyStats, models.WeeklyStat{
			Date:                 d.Date,
			CompletedHabits:      d.CompletedHabits,
			TotalHabits:          d.TotalHabits,
			CompletionPercentage: d.CompletionPercentage,
		})
	}

	overview.MonthlyProgress = monthlyProgress(days)
	return overview
}

func monthlyProgress(days []models.DailyHabitStats) []models.MonthlyProgress {
	progress := make([]models.MonthlyProgress, 0)
	index := make(map[string]int)
	sums := make(map[string]int)

	for _, d := range days {
		if d.TotalHabits == 0 {
			continue
		}
		month := d.Date.Format("2006-01")
		i, ok := index[month]
		if !ok {
			i = len(progress)
			index[month] = i
			progress = append(progress, models.MonthlyProgress{Month: month})
		}
		progress[i].DaysTracked++
		sums[month] += d.CompletionPercentage
	}

	for i := range progress {
		progress[i].AverageCompletion = int(math.Round(float64(sums[progress[i].Month]) / float64(progress[i].DaysTracked)))
	}
	return progress
}
