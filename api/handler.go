package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userIDKey = "userID"

// RequireUser resolves the authenticated user from the X-User-ID header set
// by the auth proxy. Every query downstream is scoped to this id, which is
// what makes cross-user access structurally impossible.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// notFound replies 404 for both "does not exist" and "belongs to someone
// else" so existence never leaks across users.
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func handleLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// parseDate parses a YYYY-MM-DD query value, defaulting to today (UTC).
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

func SetupRoutes(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", RequireUser())
	{
		api.POST("/habits", CreateHabit)
		api.GET("/habits", ListHabits)
		api.PUT("/habits/:id", UpdateHabit)
		api.DELETE("/habits/:id", DeleteHabit)
		api.POST("/habits/:id/toggle", ToggleHabit)
		api.GET("/habits/stats/daily", GetDailyHabitStats)
		api.GET("/habits/stats/overview", GetHabitOverview)
		api.GET("/habits/rank", GetHabitRank)

		api.POST("/journals", CreateJournal)
		api.GET("/journals", ListJournals)
		api.PUT("/journals/:id", UpdateJournal)
		api.DELETE("/journals/:id", DeleteJournal)
		api.GET("/journals/:id/capital", GetJournalCapital)

		api.POST("/trades", CreateTrade)
		api.GET("/trades", ListTrades)
		api.PUT("/trades/:id", UpdateTrade)
		api.DELETE("/trades/:id", DeleteTrade)

		api.GET("/trading/stats", GetTradingStats)
		api.GET("/trading/stats/daily", GetDailyPnL)
	}

	return r
}
