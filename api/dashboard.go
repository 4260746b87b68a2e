package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momentumlab/momentum/database"
	"github.com/momentumlab/momentum/models"
	"github.com/momentumlab/momentum/stats"
	"github.com/shopspring/decimal"
)

// GetTradingStats returns the aggregate summary for one journal, or across
// every journal the user owns when no journal_id is given.
func GetTradingStats(c *gin.Context) {
	userID := currentUserID(c)

	var journal *models.TradingJournal
	var journalID *uuid.UUID
	if raw := c.Query("journal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			notFound(c)
			return
		}
		var j models.TradingJournal
		if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&j).Error; err != nil {
			handleLookupError(c, err)
			return
		}
		journal = &j
		journalID = &j.ID
	}

	var trades []models.AdvancedTrade
	q := database.DB.Where("user_id = ?", userID)
	if journalID != nil {
		q = q.Where("journal_id = ?", *journalID)
	}
	if err := q.Order("trade_date, created_at").Find(&trades).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	capitals, err := journalCapitals(userID, journalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats.ComposeTradingStats(trades, capitals, journal))
}

// GetDailyPnL returns the per-date P&L series used for charting.
func GetDailyPnL(c *gin.Context) {
	userID := currentUserID(c)

	var journalID *uuid.UUID
	if raw := c.Query("journal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			notFound(c)
			return
		}
		var j models.TradingJournal
		if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&j).Error; err != nil {
			handleLookupError(c, err)
			return
		}
		journalID = &j.ID
	}

	trades, err := loadClosedTrades(userID, journalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	capitals, err := journalCapitals(userID, journalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats.ComposeDailyPnL(trades, capitals))
}

// journalCapitals builds the per-journal capital lookup used to resolve
// percentage returns into absolute amounts. Only percentage-accounting
// journals with a usable starting capital participate; for the rest, stored
// amounts are already authoritative.
func journalCapitals(userID uuid.UUID, journalID *uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	q := database.DB.Where("user_id = ?", userID)
	if journalID != nil {
		q = q.Where("id = ?", *journalID)
	}
	var journals []models.TradingJournal
	if err := q.Find(&journals).Error; err != nil {
		return nil, err
	}

	capitals := make(map[uuid.UUID]decimal.Decimal)
	for _, j := range journals {
		if !j.UsePercentageCalculation {
			continue
		}
		capital := stats.ParseDecimal(j.StartingCapital)
		if capital.IsZero() {
			continue
		}
		capitals[j.ID] = capital
	}
	return capitals, nil
}
