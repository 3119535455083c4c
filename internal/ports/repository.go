package ports

import (
	"context"
	"time"

	"tradeDashboard/internal/domain"
)

// TradeRepository stores the ingested trade history.
type TradeRepository interface {
	// InsertTrade stores a new trade. It returns ports.ErrDuplicateEntry (wrapped) if the ID exists.
	InsertTrade(ctx context.Context, trade *domain.Trade) error
	// UpsertTrades inserts or replaces trades by ID and returns the number written.
	UpsertTrades(ctx context.Context, trades []domain.Trade) (int, error)
	// FindAll retrieves every trade, most recent first.
	FindAll(ctx context.Context) ([]domain.Trade, error)
	// FindSince retrieves trades at or after since, most recent first.
	FindSince(ctx context.Context, since time.Time) ([]domain.Trade, error)
	// FindByID returns ports.ErrNotFound (wrapped) if the trade does not exist.
	FindByID(ctx context.Context, id string) (*domain.Trade, error)
	// UpdateTrade replaces a stored trade. It returns ports.ErrNotFound (wrapped) if the ID is unknown.
	UpdateTrade(ctx context.Context, trade *domain.Trade) error
	// DeleteTrade removes one trade by ID. It returns ports.ErrNotFound (wrapped) if the ID is unknown.
	DeleteTrade(ctx context.Context, id string) error
}

// PositionRepository keeps the last known open positions.
type PositionRepository interface {
	// ReplacePositions swaps the stored set for positions.
	ReplacePositions(ctx context.Context, positions []domain.Position) error
	FindPositions(ctx context.Context) ([]domain.Position, error)
}

// JournalRepository stores journal entries.
type JournalRepository interface {
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error
	FindEntries(ctx context.Context) ([]domain.JournalEntry, error)
	// DeleteEntry returns ports.ErrNotFound (wrapped) if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// PreferenceStore persists dashboard preferences. Trades never go through it.
type PreferenceStore interface {
	// Load returns the stored preferences, or defaults when nothing was saved.
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
