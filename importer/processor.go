package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/momentumlab/momentum/database"
	"github.com/momentumlab/momentum/models"
	"github.com/momentumlab/momentum/stats"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Default values - can be overridden by environment variables
	DefaultBatchSize   = 500
	DefaultFileWorkers = 4
)

// getEnvInt returns environment variable as int or default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBatchSize() int {
	return getEnvInt("IMPORT_BATCH_SIZE", DefaultBatchSize)
}

func getFileWorkers() int {
	return getEnvInt("IMPORT_FILE_WORKERS", DefaultFileWorkers)
}

// TradeRecord is one raw CSV row: date;pnl_percentage;pnl_amount;exit_reason;notes.
type TradeRecord struct {
	Date          string
	PnLPercentage string
	PnLAmount     string
	ExitReason    string
	Notes         string
}

type Processor struct {
	db            *gorm.DB
	logger        *zap.Logger
	processedRows int64
}

func NewProcessor(logger *zap.Logger) *Processor {
	return &Processor{
		db:     database.DB,
		logger: logger,
	}
}

// ProcessDirectory imports every CSV file in dataDir into the given journal,
// processing files concurrently, then runs the percentage/amount derivation
// pass over the journal's closed trades in chronological order.
func (p *Processor) ProcessDirectory(journalID uuid.UUID, dataDir string) error {
	startTime := time.Now()

	var journal models.TradingJournal
	if err := p.db.Where("id = ?", journalID).First(&journal).Error; err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("failed to find CSV files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found in directory: %s", dataDir)
	}

	p.logger.Info("Found CSV files to process", zap.Int("files", len(files)))

	semaphore := make(chan struct{}, getFileWorkers())
	var wg sync.WaitGroup
	errorChan := make(chan error, len(files))

	for _, file := range files {
		wg.Add(1)
		go func(filename string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fileStart := time.Now()
			if err := p.ProcessFile(&journal, filename); err != nil {
				p.logger.Error("Failed to process file", zap.String("file", filename), zap.Error(err))
				errorChan <- err
				return
			}
			p.logger.Info("Processed file",
				zap.String("file", filename),
				zap.Duration("took", time.Since(fileStart)),
			)
		}(file)
	}

	wg.Wait()
	close(errorChan)

	var failed int
	for range errorChan {
		failed++
	}
	if failed > 0 {
		p.logger.Warn("Some files failed, continuing with derivation", zap.Int("failed", failed))
	}

	p.logger.Info("File processing completed",
		zap.Duration("took", time.Since(startTime)),
		zap.Int64("rows", atomic.LoadInt64(&p.processedRows)),
	)

	if err := p.DeriveJournal(&journal); err != nil {
		return fmt.Errorf("failed to derive trade amounts: %w", err)
	}
	return nil
}

// ProcessFile reads one CSV export and inserts its rows in batches.
func (p *Processor) ProcessFile(journal *models.TradingJournal, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.ReuseRecord = true

	batchSize := getBatchSize()
	var batch []TradeRecord
	lineNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.logger.Warn("Skipping unreadable CSV line",
				zap.String("file", filepath.Base(filename)),
				zap.Int("line", lineNum),
				zap.Error(err),
			)
			continue
		}

		lineNum++

		// Skip header
		if lineNum == 1 {
			continue
		}
		if len(record) < 4 {
			continue
		}

		row := TradeRecord{
			Date:          strings.TrimSpace(record[0]),
			PnLPercentage: strings.TrimSpace(record[1]),
			PnLAmount:     strings.TrimSpace(record[2]),
			ExitReason:    strings.TrimSpace(record[3]),
		}
		if len(record) > 4 {
			row.Notes = strings.TrimSpace(record[4])
		}

		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := p.processBatch(journal, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		return p.processBatch(journal, batch)
	}
	return nil
}

func (p *Processor) processBatch(journal *models.TradingJournal, records []TradeRecord) error {
	if len(records) == 0 {
		return nil
	}

	trades := make([]models.AdvancedTrade, 0, len(records))
	for _, record := range records {
		trade, err := p.parseTradeRecord(journal, record)
		if err != nil {
			// Skip rows without a parsable date; everything else degrades.
			continue
		}
		trades = append(trades, trade)
	}

	if len(trades) == 0 {
		return nil
	}

	atomic.AddInt64(&p.processedRows, int64(len(trades)))

	return p.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(trades, len(trades)).Error
	})
}

// parseTradeRecord maps a raw CSV row onto a closed trade. The numeric
// columns keep parse-or-zero semantics: placeholders and garbage normalize
// to unset, they never abort the row. An unknown exit reason becomes Manual.
func (p *Processor) parseTradeRecord(journal *models.TradingJournal, record TradeRecord) (models.AdvancedTrade, error) {
	var trade models.AdvancedTrade

	tradeDate, err := time.Parse("2006-01-02", record.Date)
	if err != nil {
		return trade, fmt.Errorf("invalid date format: %w", err)
	}

	trade.ID = uuid.New()
	trade.UserID = journal.UserID
	trade.JournalID = journal.ID
	trade.TradeDate = tradeDate
	trade.ExitReason = models.ParseExitReason(record.ExitReason)
	trade.Closed = true
	trade.Notes = record.Notes

	if stats.HasValue(record.PnLPercentage) {
		trade.ProfitLossPct = record.PnLPercentage
	}
	if stats.HasValue(record.PnLAmount) {
		trade.ProfitLossAmount = record.PnLAmount
	}

	return trade, nil
}

// DeriveJournal walks the journal's closed trades in chronological order and
// fills in whichever of percentage/amount each trade is missing, against the
// capital at that point in the curve. Journals without percentage accounting
// keep amounts at face value and are left untouched.
func (p *Processor) DeriveJournal(journal *models.TradingJournal) error {
	if !journal.UsePercentageCalculation {
		return nil
	}

	var trades []models.AdvancedTrade
	if err := p.db.
		Where("journal_id = ? AND closed = ?", journal.ID, true).
		Order("trade_date, created_at").
		Find(&trades).Error; err != nil {
		return fmt.Errorf("failed to load closed trades: %w", err)
	}

	start := stats.ParseDecimal(journal.StartingCapital)
	sumPct := decimal.Zero
	var dirty []models.AdvancedTrade

	for i := range trades {
		t := &trades[i]
		capital := stats.ComposeCapital(start, []decimal.Decimal{sumPct})

		hasPct := stats.HasValue(t.ProfitLossPct)
		hasAmount := stats.HasValue(t.ProfitLossAmount)
		switch {
		case hasPct && !hasAmount:
			t.ProfitLossAmount = stats.AmountFromPercent(stats.ParseDecimal(t.ProfitLossPct), capital).StringFixed(2)
			dirty = append(dirty, *t)
		case hasAmount && !hasPct:
			if pct, ok := stats.PercentFromAmount(stats.ParseDecimal(t.ProfitLossAmount), capital); ok {
				t.ProfitLossPct = pct.StringFixed(4)
				dirty = append(dirty, *t)
			}
		}

		sumPct = sumPct.Add(stats.ParseDecimal(t.ProfitLossPct))
	}

	if len(dirty) == 0 {
		return nil
	}

	p.logger.Info("Storing derived trade figures", zap.Int("trades", len(dirty)))
	return p.db.Transaction(func(tx *gorm.DB) error {
		for i := range dirty {
			if err := tx.Model(&models.AdvancedTrade{}).
				Where("id = ?", dirty[i].ID).
				Updates(map[string]interface{}{
					"profit_loss_pct":    dirty[i].ProfitLossPct,
					"profit_loss_amount": dirty[i].ProfitLossAmount,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
