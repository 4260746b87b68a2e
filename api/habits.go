package api

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momentumlab/momentum/database"
	"github.com/momentumlab/momentum/models"
	"github.com/momentumlab/momentum/stats"
	"gorm.io/gorm"
)

type habitRequest struct {
	Title       string `json:"title" binding:"required"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Frequency   string `json:"frequency" binding:"omitempty,oneof=daily weekly monthly"`
	SortOrder   int    `json:"sort_order"`
}

func CreateHabit(c *gin.Context) {
	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Frequency == "" {
		req.Frequency = "daily"
	}

	habit := models.Habit{
		ID:          uuid.New(),
		UserID:      currentUserID(c),
		Title:       req.Title,
		Emoji:       req.Emoji,
		Description: req.Description,
		Color:       req.Color,
		Frequency:   req.Frequency,
		IsActive:    true,
		SortOrder:   req.SortOrder,
	}

	if err := database.DB.Create(&habit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, habit)
}

func ListHabits(c *gin.Context) {
	var habits []models.Habit
	q := database.DB.Where("user_id = ?", currentUserID(c))
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("sort_order, created_at").Find(&habits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, habits)
}

type habitUpdateRequest struct {
	Title       *string `json:"title"`
	Emoji       *string `json:"emoji"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Frequency   *string `json:"frequency" binding:"omitempty,oneof=daily weekly monthly"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func UpdateHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	var req habitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var habit models.Habit
	if err := database.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&habit).Error; err != nil {
		handleLookupError(c, err)
		return
	}

	if req.Title != nil {
		habit.Title = *req.Title
	}
	if req.Emoji != nil {
		habit.Emoji = *req.Emoji
	}
	if req.Description != nil {
		habit.Description = *req.Description
	}
	if req.Color != nil {
		habit.Color = *req.Color
	}
	if req.Frequency != nil {
		habit.Frequency = *req.Frequency
	}
	if req.IsActive != nil {
		habit.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		habit.SortOrder = *req.SortOrder
	}

	if err := database.DB.Save(&habit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, habit)
}

// DeleteHabit hard-deletes a habit together with its completions.
func DeleteHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	userID := currentUserID(c)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
			return err
		}
		if err := tx.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&habit).Error
	})
	if err != nil {
		handleLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type toggleRequest struct {
	Date      string `json:"date"`
	Completed *bool  `json:"completed"`
	Note      string `json:"note"`
}

// ToggleHabit flips (or sets) a habit's completion for one calendar date.
// The first toggle creates the row, repeat toggles update it in place; the
// unique (user, habit, date) index backs the upsert. The user's stored rank
// is recomputed afterwards, read-modify-write, last write wins.
func ToggleHabit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	userID := currentUserID(c)

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	var completion models.HabitCompletion
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND habit_id = ? AND date = ?", userID, id, date).First(&completion).Error
		switch {
		case err == nil:
			if req.Completed != nil {
				completion.Completed = *req.Completed
			} else {
				completion.Completed = !completion.Completed
			}
			if req.Note != "" {
				completion.Note = req.Note
			}
			return tx.Save(&completion).Error
		case err == gorm.ErrRecordNotFound:
			completed := true
			if req.Completed != nil {
				completed = *req.Completed
			}
			completion = models.HabitCompletion{
				ID:        uuid.New(),
				UserID:    userID,
				HabitID:   id,
				Date:      date,
				Completed: completed,
				Note:      req.Note,
			}
			return tx.Create(&completion).Error
		default:
			return err
		}
	})
	if err != nil {
		handleLookupError(c, err)
		return
	}

	rank, err := refreshUserRank(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completion": completion, "rank": rank})
}

func GetDailyHabitStats(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	series, err := loadDailySeries(currentUserID(c), date, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, series[0])
}

// GetHabitOverview bundles streaks and rolling aggregates. The habit list
// and the completion window are independent reads, fetched concurrently and
// aggregated in memory once both are materialized.
func GetHabitOverview(c *gin.Context) {
	userID := currentUserID(c)

	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = parsed
	}

	to, _ := parseDate("")
	from := to.AddDate(0, 0, -(days - 1))

	var (
		habits      []models.Habit
		completions []models.HabitCompletion
		habitErr    error
		complErr    error
		wg          sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		habitErr = database.DB.Where("user_id = ?", userID).Find(&habits).Error
	}()
	go func() {
		defer wg.Done()
		complErr = database.DB.
			Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
			Find(&completions).Error
	}()
	wg.Wait()

	if habitErr != nil || complErr != nil {
		if habitErr == nil {
			habitErr = complErr
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": habitErr.Error()})
		return
	}

	series := composeSeries(from, to, habits, completions)

	active := 0
	for _, h := range habits {
		if h.IsActive {
			active++
		}
	}

	c.JSON(http.StatusOK, stats.ComposeOverview(series, active))
}

func GetHabitRank(c *gin.Context) {
	streak, err := currentStreak(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats.RankProgress(streak))
}

// loadDailySeries materializes a user's habits and completions for a date
// range and derives the per-day stats bundles, one per calendar day.
func loadDailySeries(userID uuid.UUID, from, to time.Time) ([]models.DailyHabitStats, error) {
	var habits []models.Habit
	if err := database.DB.Where("user_id = ?", userID).Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	var completions []models.HabitCompletion
	if err := database.DB.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Find(&completions).Error; err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	return composeSeries(from, to, habits, completions), nil
}

func composeSeries(from, to time.Time, habits []models.Habit, completions []models.HabitCompletion) []models.DailyHabitStats {
	byDay := make(map[string]map[uuid.UUID]models.HabitCompletion)
	for _, comp := range completions {
		key := comp.Date.Format("2006-01-02")
		if byDay[key] == nil {
			byDay[key] = make(map[uuid.UUID]models.HabitCompletion)
		}
		byDay[key][comp.HabitID] = comp
	}

	var series []models.DailyHabitStats
	for day := stats.DateOnly(from); !day.After(stats.DateOnly(to)); day = day.AddDate(0, 0, 1) {
		series = append(series, stats.ComposeDailyStats(day, habits, byDay[day.Format("2006-01-02")]))
	}
	return series
}

// currentStreak derives the user's live habit streak over the trailing year.
func currentStreak(userID uuid.UUID) (int, error) {
	to, _ := parseDate("")
	series, err := loadDailySeries(userID, to.AddDate(0, 0, -364), to)
	if err != nil {
		return 0, err
	}

	days := make([]stats.DayCompletion, len(series))
	for i, d := range series {
		days[i] = stats.DayCompletion{Date: d.Date, CompletionPercentage: d.CompletionPercentage}
	}
	return stats.CurrentDailyStreak(days), nil
}

func refreshUserRank(userID uuid.UUID) (models.RankInfo, error) {
	streak, err := currentStreak(userID)
	if err != nil {
		return models.RankInfo{}, err
	}
	rank := stats.RankProgress(streak)

	if err := database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("current_rank", rank.Rank).Error; err != nil {
		return models.RankInfo{}, fmt.Errorf("failed to store rank: %w", err)
	}
	return rank, nil
}
