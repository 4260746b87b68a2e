package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User owns habits and trading journals. CurrentRank is denormalized so the
// dashboard can render the badge without recomputing the streak.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"size:255;uniqueIndex" json:"email"`
	CurrentRank string    `gorm:"size:20;default:NEW" json:"current_rank"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Habit is a user-defined recurring task. Frequency is informational only,
// the streak engine always evaluates calendar days.
type Habit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Emoji       string    `gorm:"size:16" json:"emoji"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:20" json:"color"`
	Frequency   string    `gorm:"size:10;default:daily" json:"frequency"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Completions []HabitCompletion `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"-"`
}

// HabitCompletion records one habit's state for one calendar date. The unique
// index gives toggle its upsert key: at most one row per (user, habit, date).
type HabitCompletion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_user_habit_date" json:"user_id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uidx_user_habit_date" json:"habit_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_habit_date" json:"date"`
	Completed bool      `gorm:"default:false" json:"completed"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TradingJournal is a named bucket of trades with its own capital accounting
// mode. StartingCapital is a string-typed decimal column; empty means unset.
type TradingJournal struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                     string    `gorm:"size:120;not null" json:"name"`
	Description              string    `gorm:"type:text" json:"description"`
	StartingCapital          string    `gorm:"size:32" json:"starting_capital"`
	UsePercentageCalculation bool      `gorm:"default:false" json:"use_percentage_calculation"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`

	Trades []AdvancedTrade `gorm:"foreignKey:JournalID;constraint:OnDelete:CASCADE" json:"-"`
}

// AdvancedTrade is one trading entry. ProfitLossPct and ProfitLossAmount are
// persisted as decimal strings, never binary floats; either may be empty or
// hold the literal placeholder "undefined" from legacy imports, so every read
// goes through stats.ParseDecimal.
type AdvancedTrade struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	JournalID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_journal_date" json:"journal_id"`
	AssetID        *uuid.UUID `gorm:"type:uuid" json:"asset_id"`
	SessionID      *uuid.UUID `gorm:"type:uuid" json:"session_id"`
	SetupID        *uuid.UUID `gorm:"type:uuid" json:"setup_id"`
	ConfirmationID *uuid.UUID `gorm:"type:uuid" json:"confirmation_id"`

	TradeDate        time.Time      `gorm:"type:date;not null;index:idx_journal_date" json:"trade_date"`
	ProfitLossPct    string         `gorm:"size:32" json:"profit_loss_pct"`
	ProfitLossAmount string         `gorm:"size:32" json:"profit_loss_amount"`
	ExitReason       ExitReason     `gorm:"size:10" json:"exit_reason"`
	Closed           bool           `gorm:"default:false" json:"closed"`
	Notes            string         `gorm:"type:text" json:"notes"`
	ChartLink        string         `gorm:"size:500" json:"chart_link"`
	Screenshots      datatypes.JSON `gorm:"type:jsonb" json:"screenshots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Asset, TradeSession, Setup and Confirmation are classification dimensions
// the stats engine never computes over.

type Asset struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol string    `gorm:"size:40;not null" json:"symbol"`
}

type TradeSession struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"size:60;not null" json:"name"`
}

type Setup struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"size:60;not null" json:"name"`
}

type Confirmation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string    `gorm:"size:60;not null" json:"name"`
}

func (HabitCompletion) TableName() string {
	return "habit_completions"
}

func (TradingJournal) TableName() string {
	return "trading_journals"
}

func (AdvancedTrade) TableName() string {
	return "advanced_trades"
}

func (TradeSession) TableName() string {
	return "trade_sessions"
}
