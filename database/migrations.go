package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OptimizeIndexes creates the composite indexes the dashboard queries lean
// on. AutoMigrate covers the single-column and unique indexes declared in
// struct tags; these cover the hot date-range scans.
func OptimizeIndexes(db *gorm.DB) error {
	// Habit stats walk a user's completions over a date window.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_completions_user_date
		ON habit_completions (user_id, date DESC)
	`).Error; err != nil {
		return fmt.Errorf("failed to create completions index: %w", err)
	}

	// Capital composition and streaks read closed trades chronologically.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_trades_journal_closed_date
		ON advanced_trades (journal_id, trade_date, created_at)
		WHERE closed
	`).Error; err != nil {
		return fmt.Errorf("failed to create closed trades index: %w", err)
	}

	// Account-wide stats scan all of a user's trades regardless of journal.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_trades_user_date
		ON advanced_trades (user_id, trade_date, created_at)
	`).Error; err != nil {
		return fmt.Errorf("failed to create user trades index: %w", err)
	}

	return nil
}
