package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momentumlab/momentum/database"
	"github.com/momentumlab/momentum/models"
	"github.com/momentumlab/momentum/stats"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type journalRequest struct {
	Name                     string `json:"name" binding:"required"`
	Description              string `json:"description"`
	StartingCapital          string `json:"starting_capital"`
	UsePercentageCalculation bool   `json:"use_percentage_calculation"`
}

func CreateJournal(c *gin.Context) {
	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	journal := models.TradingJournal{
		ID:                       uuid.New(),
		UserID:                   currentUserID(c),
		Name:                     req.Name,
		Description:              req.Description,
		StartingCapital:          req.StartingCapital,
		UsePercentageCalculation: req.UsePercentageCalculation,
	}

	if err := database.DB.Create(&journal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, journal)
}

func ListJournals(c *gin.Context) {
	var journals []models.TradingJournal
	if err := database.DB.
		Where("user_id = ?", currentUserID(c)).
		Order("created_at").
		Find(&journals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, journals)
}

type journalUpdateRequest struct {
	Name                     *string `json:"name"`
	Description              *string `json:"description"`
	StartingCapital          *string `json:"starting_capital"`
	UsePercentageCalculation *bool   `json:"use_percentage_calculation"`
}

func UpdateJournal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	var req journalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var journal models.TradingJournal
	if err := database.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&journal).Error; err != nil {
		handleLookupError(c, err)
		return
	}

	if req.Name != nil {
		journal.Name = *req.Name
	}
	if req.Description != nil {
		journal.Description = *req.Description
	}
	if req.StartingCapital != nil {
		journal.StartingCapital = *req.StartingCapital
	}
	if req.UsePercentageCalculation != nil {
		journal.UsePercentageCalculation = *req.UsePercentageCalculation
	}

	if err := database.DB.Save(&journal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, journal)
}

// DeleteJournal removes a journal and every trade in it.
func DeleteJournal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	userID := currentUserID(c)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var journal models.TradingJournal
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&journal).Error; err != nil {
			return err
		}
		if err := tx.Where("journal_id = ? AND user_id = ?", id, userID).Delete(&models.AdvancedTrade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&journal).Error
	})
	if err != nil {
		handleLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// GetJournalCapital reports the journal's capital curve endpoint: starting
// capital with the summed closed-trade percentages applied once.
func GetJournalCapital(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	userID := currentUserID(c)

	var journal models.TradingJournal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&journal).Error; err != nil {
		handleLookupError(c, err)
		return
	}

	trades, err := loadClosedTrades(userID, &journal.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start := stats.ParseDecimal(journal.StartingCapital)
	percentages := make([]decimal.Decimal, len(trades))
	for i, t := range trades {
		percentages[i] = stats.ParseDecimal(t.ProfitLossPct)
	}
	current := stats.ComposeCapital(start, percentages)

	startF, _ := start.Float64()
	currentF, _ := current.Float64()
	c.JSON(http.StatusOK, models.CapitalInfo{
		JournalID:       journal.ID,
		StartingCapital: startF,
		CurrentCapital:  currentF,
		ClosedTrades:    len(trades),
	})
}

// loadClosedTrades returns a user's closed trades in chronological order,
// optionally scoped to one journal.
func loadClosedTrades(userID uuid.UUID, journalID *uuid.UUID) ([]models.AdvancedTrade, error) {
	q := database.DB.Where("user_id = ? AND closed = ?", userID, true)
	if journalID != nil {
		q = q.Where("journal_id = ?", *journalID)
	}
	var trades []models.AdvancedTrade
	if err := q.Order("trade_date, created_at").Find(&trades).Error; err != nil {
		return nil, err
	}
	return trades, nil
}
