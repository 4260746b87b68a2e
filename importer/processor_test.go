package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentumlab/momentum/models"
	"go.uber.org/zap"
)

func testJournal() *models.TradingJournal {
	return &models.TradingJournal{
		ID:     uuid.New(),
		UserID: uuid.New(),
	}
}

func TestParseTradeRecord(t *testing.T) {
	processor := NewProcessor(zap.NewNop())
	journal := testJournal()

	record := TradeRecord{
		Date:          "2024-01-15",
		PnLPercentage: "2.5",
		PnLAmount:     "125.00",
		ExitReason:    "TP",
		Notes:         "breakout continuation",
	}

	trade, err := processor.parseTradeRecord(journal, record)
	if err != nil {
		t.Fatalf("Failed to parse trade record: %v", err)
	}

	expectedDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !trade.TradeDate.Equal(expectedDate) {
		t.Errorf("Expected date %v, got %v", expectedDate, trade.TradeDate)
	}

	if trade.JournalID != journal.ID {
		t.Errorf("Expected journal %s, got %s", journal.ID, trade.JournalID)
	}

	if trade.UserID != journal.UserID {
		t.Errorf("Expected owner %s, got %s", journal.UserID, trade.UserID)
	}

	if trade.ProfitLossPct != "2.5" {
		t.Errorf("Expected percentage 2.5, got %q", trade.ProfitLossPct)
	}

	if trade.ProfitLossAmount != "125.00" {
		t.Errorf("Expected amount 125.00, got %q", trade.ProfitLossAmount)
	}

	if trade.ExitReason != models.ExitTakeProfit {
		t.Errorf("Expected TP exit, got %q", trade.ExitReason)
	}

	if !trade.Closed {
		t.Error("Imported trades must be closed")
	}
}

func TestParseInvalidDate(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	record := TradeRecord{
		Date:          "invalid-date",
		PnLPercentage: "2.5",
		ExitReason:    "TP",
	}

	_, err := processor.parseTradeRecord(testJournal(), record)
	if err == nil {
		t.Error("Expected error for invalid date, got nil")
	}

	if !strings.Contains(err.Error(), "invalid date format") {
		t.Errorf("Expected 'invalid date format' error, got %v", err)
	}
}

func TestParsePlaceholderNumericColumns(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	record := TradeRecord{
		Date:          "2024-01-15",
		PnLPercentage: "undefined",
		PnLAmount:     "not-a-number",
		ExitReason:    "SL",
	}

	trade, err := processor.parseTradeRecord(testJournal(), record)
	if err != nil {
		t.Fatalf("Placeholder numeric columns must not abort the row: %v", err)
	}

	if trade.ProfitLossPct != "" {
		t.Errorf("Expected unset percentage, got %q", trade.ProfitLossPct)
	}
	if trade.ProfitLossAmount != "" {
		t.Errorf("Expected unset amount, got %q", trade.ProfitLossAmount)
	}
}

func TestParseUnknownExitReason(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	record := TradeRecord{
		Date:          "2024-01-15",
		PnLPercentage: "1.0",
		ExitReason:    "LIQUIDATED",
	}

	trade, err := processor.parseTradeRecord(testJournal(), record)
	if err != nil {
		t.Fatalf("Failed to parse trade record: %v", err)
	}

	if trade.ExitReason != models.ExitManual {
		t.Errorf("Unknown exit reasons must map to Manual, got %q", trade.ExitReason)
	}
}
