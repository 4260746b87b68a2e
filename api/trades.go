package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momentumlab/momentum/database"
	"github.com/momentumlab/momentum/models"
	"github.com/momentumlab/momentum/stats"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type tradeRequest struct {
	JournalID        uuid.UUID  `json:"journal_id" binding:"required"`
	AssetID          *uuid.UUID `json:"asset_id"`
	SessionID        *uuid.UUID `json:"session_id"`
	SetupID          *uuid.UUID `json:"setup_id"`
	ConfirmationID   *uuid.UUID `json:"confirmation_id"`
	TradeDate        string     `json:"trade_date" binding:"required"`
	ProfitLossPct    string     `json:"profit_loss_pct"`
	ProfitLossAmount string     `json:"profit_loss_amount"`
	ExitReason       string     `json:"exit_reason" binding:"omitempty,oneof=TP BE SL Manual"`
	Closed           bool       `json:"closed"`
	Notes            string     `json:"notes"`
	ChartLink        string     `json:"chart_link"`
	Screenshots      []string   `json:"screenshots"`
}

func CreateTrade(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := currentUserID(c)

	date, err := time.Parse("2006-01-02", req.TradeDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade_date, use YYYY-MM-DD"})
		return
	}

	var journal models.TradingJournal
	if err := database.DB.Where("id = ? AND user_id = ?", req.JournalID, userID).First(&journal).Error; err != nil {
		handleLookupError(c, err)
		return
	}

	if req.Closed && !stats.HasValue(req.ProfitLossPct) && !stats.HasValue(req.ProfitLossAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a closed trade needs a profit/loss percentage or amount"})
		return
	}

	trade := models.AdvancedTrade{
		ID:               uuid.New(),
		UserID:           userID,
		JournalID:        journal.ID,
		AssetID:          req.AssetID,
		SessionID:        req.SessionID,
		SetupID:          req.SetupID,
		ConfirmationID:   req.ConfirmationID,
		TradeDate:        date,
		ProfitLossPct:    req.ProfitLossPct,
		ProfitLossAmount: req.ProfitLossAmount,
		ExitReason:       models.ParseExitReason(req.ExitReason),
		Closed:           req.Closed,
		Notes:            req.Notes,
		ChartLink:        req.ChartLink,
	}
	if req.Screenshots != nil {
		raw, err := json.Marshal(req.Screenshots)
		if err == nil {
			trade.Screenshots = datatypes.JSON(raw)
		}
	}

	if err := deriveTradePnL(&trade, &journal, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Create(&trade).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, trade)
}

func ListTrades(c *gin.Context) {
	userID := currentUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := database.DB.Model(&models.AdvancedTrade{}).Where("user_id = ?", userID)
	if raw := c.Query("journal_id"); raw != "" {
		journalID, err := uuid.Parse(raw)
		if err != nil {
			notFound(c)
			return
		}
		q = q.Where("journal_id = ?", journalID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var trades []models.AdvancedTrade
	if err := q.Order("trade_date DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trades).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trades":    trades,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}

type tradeUpdateRequest struct {
	TradeDate        *string    `json:"trade_date"`
	ProfitLossPct    *string    `json:"profit_loss_pct"`
	ProfitLossAmount *string    `json:"profit_loss_amount"`
	ExitReason       *string    `json:"exit_reason" binding:"omitempty,oneof=TP BE SL Manual"`
	Closed           *bool      `json:"closed"`
	Notes            *string    `json:"notes"`
	ChartLink        *string    `json:"chart_link"`
	Screenshots      []string   `json:"screenshots"`
	AssetID          *uuid.UUID `json:"asset_id"`
	SessionID        *uuid.UUID `json:"session_id"`
	SetupID          *uuid.UUID `json:"setup_id"`
	ConfirmationID   *uuid.UUID `json:"confirmation_id"`
}

func UpdateTrade(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}
	userID := currentUserID(c)

	var req tradeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var trade models.AdvancedTrade
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&trade).Error; err != nil {
		handleLookupError(c, err)
		return
	}
	var journal models.TradingJournal
	if err := database.DB.Where("id = ? AND user_id = ?", trade.JournalID, userID).First(&journal).Error; err != nil {
		handleLookupError(c, err)
		return
	}

	if req.TradeDate != nil {
		date, err := time.Parse("2006-01-02", *req.TradeDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trade_date, use YYYY-MM-DD"})
			return
		}
		trade.TradeDate = date
	}
	if req.ProfitLossPct != nil {
		trade.ProfitLossPct = *req.ProfitLossPct
	}
	if req.ProfitLossAmount != nil {
		trade.ProfitLossAmount = *req.ProfitLossAmount
	}
	if req.ExitReason != nil {
		trade.ExitReason = models.ParseExitReason(*req.ExitReason)
	}
	if req.Closed != nil {
		trade.Closed = *req.Closed
	}
	if req.Notes != nil {
		trade.Notes = *req.Notes
	}
	if req.ChartLink != nil {
		trade.ChartLink = *req.ChartLink
	}
	if req.AssetID != nil {
		trade.AssetID = req.AssetID
	}
	if req.SessionID != nil {
		trade.SessionID = req.SessionID
	}
	if req.SetupID != nil {
		trade.SetupID = req.SetupID
	}
	if req.ConfirmationID != nil {
		trade.ConfirmationID = req.ConfirmationID
	}
	if req.Screenshots != nil {
		raw, err := json.Marshal(req.Screenshots)
		if err == nil {
			trade.Screenshots = datatypes.JSON(raw)
		}
	}

	// Supplying one side of the P&L pair invalidates the stored other side;
	// clearing it lets derivation recompute against the capital curve.
	if req.ProfitLossPct != nil && req.ProfitLossAmount == nil {
		trade.ProfitLossAmount = ""
	}
	if req.ProfitLossAmount != nil && req.ProfitLossPct == nil {
		trade.ProfitLossPct = ""
	}

	if req.ProfitLossPct != nil || req.ProfitLossAmount != nil || req.TradeDate != nil {
		if err := deriveTradePnL(&trade, &journal, trade.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if err := database.DB.Save(&trade).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trade)
}

func DeleteTrade(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	res := database.DB.Where("id = ? AND user_id = ?", id, currentUserID(c)).Delete(&models.AdvancedTrade{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// deriveTradePnL fills in whichever of percentage/amount is missing, using
// the capital at the time of the trade. Journals without percentage
// accounting take amounts at face value and skip derivation entirely. A zero
// capital leaves the missing field unset rather than deriving an infinity.
func deriveTradePnL(trade *models.AdvancedTrade, journal *models.TradingJournal, createdAt time.Time) error {
	if !journal.UsePercentageCalculation {
		return nil
	}

	hasPct := stats.HasValue(trade.ProfitLossPct)
	hasAmount := stats.HasValue(trade.ProfitLossAmount)
	if hasPct == hasAmount {
		return nil
	}

	capital, err := capitalAt(journal, trade.TradeDate, createdAt, trade.ID)
	if err != nil {
		return err
	}

	if hasPct {
		amount := stats.AmountFromPercent(stats.ParseDecimal(trade.ProfitLossPct), capital)
		trade.ProfitLossAmount = amount.StringFixed(2)
		return nil
	}

	if pct, ok := stats.PercentFromAmount(stats.ParseDecimal(trade.ProfitLossAmount), capital); ok {
		trade.ProfitLossPct = pct.StringFixed(4)
	}
	return nil
}

// capitalAt composes the journal's capital from its starting capital and
// every closed trade that chronologically precedes the given point, with
// creation time as the same-date tiebreak.
func capitalAt(journal *models.TradingJournal, date time.Time, createdAt time.Time, excludeID uuid.UUID) (decimal.Decimal, error) {
	var prior []models.AdvancedTrade
	if err := database.DB.
		Where("journal_id = ? AND closed = ? AND id <> ?", journal.ID, true, excludeID).
		Where("trade_date < ? OR (trade_date = ? AND created_at < ?)", date, date, createdAt).
		Order("trade_date, created_at").
		Find(&prior).Error; err != nil {
		return decimal.Zero, err
	}

	percentages := make([]decimal.Decimal, len(prior))
	for i, t := range prior {
		percentages[i] = stats.ParseDecimal(t.ProfitLossPct)
	}
	return stats.ComposeCapital(stats.ParseDecimal(journal.StartingCapital), percentages), nil
}
