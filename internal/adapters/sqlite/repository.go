package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradeDashboard/internal/ports"

	"github.com/mattn/go-sqlite3" // SQLite driver
)

// DefaultDBPath is used when Config.DBPath is empty.
const DefaultDBPath = "./data/trade_dashboard.db"

// Repository implements the trade, position and journal repository ports using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	ctx := context.Background()
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = DefaultDBPath
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(ctx, err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Debug(ctx, "Data directory checked/created", map[string]interface{}{"path": filepath.Dir(dbPath)})

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(ctx, err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(ctx, err, "SQLite repository initialization failed")
		return nil, err
	}

	// A single connection serializes writers; WAL keeps readers unblocked.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(ctx); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(ctx, err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(ctx, "SQLite trade store ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		market TEXT NOT NULL,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		order_type TEXT NOT NULL,
		size REAL NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NULL,
		fee REAL NOT NULL DEFAULT 0,
		fee_type TEXT NULL,
		rebate REAL NULL,
		pnl REAL NULL,
		status TEXT NOT NULL,
		duration_ms INTEGER NULL,
		leverage INTEGER NULL
	);

	CREATE TABLE IF NOT EXISTS positions (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		market TEXT NOT NULL,
		side TEXT NOT NULL,
		size REAL NOT NULL,
		entry_price REAL NOT NULL,
		current_price REAL NOT NULL,
		unrealized_pnl REAL NOT NULL,
		leverage INTEGER NULL,
		liquidation_price REAL NULL,
		margin REAL NULL,
		timestamp INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		trade_id TEXT NOT NULL,
		date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		sentiment TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 0,
		screenshots TEXT NOT NULL DEFAULT '[]',
		strategy TEXT NOT NULL DEFAULT '',
		mistakes TEXT NOT NULL DEFAULT '[]',
		lessons TEXT NOT NULL DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_trades_timestamp ON trades (timestamp);
	CREATE INDEX IF NOT EXISTS idx_trades_symbol_timestamp ON trades (symbol, timestamp);
	CREATE INDEX IF NOT EXISTS idx_journal_entries_trade_id ON journal_entries (trade_id);
	CREATE INDEX IF NOT EXISTS idx_journal_entries_date ON journal_entries (date);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// mapWriteError translates driver constraint violations into ports sentinels.
func mapWriteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return fmt.Errorf("%w: %w", ports.ErrDuplicateEntry, err)
		}
	}
	return fmt.Errorf("%w: %w", ports.ErrQueryFailed, err)
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
