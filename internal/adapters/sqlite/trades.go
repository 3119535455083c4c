package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

const tradeColumns = `id, timestamp, market, symbol, side, order_type, size, entry_price, exit_price,
	fee, fee_type, rebate, pnl, status, duration_ms, leverage`

// InsertTrade stores a new trade.
func (r *Repository) InsertTrade(ctx context.Context, trade *domain.Trade) error {
	const query = `INSERT INTO trades (` + tradeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, tradeArgs(trade)...); err != nil {
		return fmt.Errorf("failed to insert trade %s: %w", trade.ID, mapWriteError(err))
	}
	r.logger.Debug(ctx, "Trade inserted", map[string]interface{}{"tradeID": trade.ID, "symbol": trade.Symbol})
	return nil
}

// UpsertTrades writes trades in one transaction, replacing rows with the same ID.
func (r *Repository) UpsertTrades(ctx context.Context, trades []domain.Trade) (int, error) {
	if len(trades) == 0 {
		return 0, nil
	}
	const query = `INSERT OR REPLACE INTO trades (` + tradeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin trade upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare trade upsert: %w", err)
	}
	defer stmt.Close()

	for i := range trades {
		if _, err := stmt.ExecContext(ctx, tradeArgs(&trades[i])...); err != nil {
			return 0, fmt.Errorf("failed to upsert trade %s: %w", trades[i].ID, mapWriteError(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit trade upsert: %w", err)
	}
	r.logger.Debug(ctx, "Trades upserted", map[string]interface{}{"count": len(trades)})
	return len(trades), nil
}

// FindAll retrieves every trade, most recent first.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades ORDER BY timestamp DESC, id`
	return r.queryTrades(ctx, "FindAll", query)
}

// FindSince retrieves trades at or after since, most recent first.
func (r *Repository) FindSince(ctx context.Context, since time.Time) ([]domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE timestamp >= ? ORDER BY timestamp DESC, id`
	return r.queryTrades(ctx, "FindSince", query, since.UnixMilli())
}

// FindByID retrieves a trade by its ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Trade, error) {
	const query = `SELECT ` + tradeColumns + ` FROM trades WHERE id = ?`

	trade, err := scanTrade(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug(ctx, "Trade not found by ID", map[string]interface{}{"tradeID": id})
			return nil, fmt.Errorf("trade %s: %w", id, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query trade by ID %s: %w", id, err)
	}
	return trade, nil
}

// UpdateTrade replaces every column of an existing trade.
func (r *Repository) UpdateTrade(ctx context.Context, trade *domain.Trade) error {
	const query = `
	UPDATE trades
	SET timestamp = ?, market = ?, symbol = ?, side = ?, order_type = ?, size = ?, entry_price = ?,
	    exit_price = ?, fee = ?, fee_type = ?, rebate = ?, pnl = ?, status = ?, duration_ms = ?, leverage = ?
	WHERE id = ?`

	args := append(tradeArgs(trade)[1:], trade.ID)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trade %s: %w", trade.ID, mapWriteError(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for update trade %s: %w", trade.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found for update: %w", trade.ID, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade updated", map[string]interface{}{"tradeID": trade.ID, "status": trade.Status})
	return nil
}

// DeleteTrade removes a trade by ID.
func (r *Repository) DeleteTrade(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete trade %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found for delete: %w", id, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade deleted", map[string]interface{}{"tradeID": id})
	return nil
}

func (r *Repository) queryTrades(ctx context.Context, op, query string, args ...interface{}) ([]domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades (%s): %w", op, err)
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade during %s: %w", op, err)
		}
		trades = append(trades, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

func tradeArgs(t *domain.Trade) []interface{} {
	var feeType sql.NullString
	if t.FeeType != nil {
		feeType = sql.NullString{String: string(*t.FeeType), Valid: true}
	}
	return []interface{}{
		t.ID, t.Timestamp, string(t.Market), t.Symbol, string(t.Side), string(t.OrderType),
		t.Size, t.EntryPrice, nullFloat(t.ExitPrice), t.Fee, feeType, nullFloat(t.Rebate),
		nullFloat(t.PnL), string(t.Status), nullInt64(t.Duration), nullInt(t.Leverage),
	}
}

func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var market, side, orderType, status string
	var exitPrice, rebate, pnl sql.NullFloat64
	var feeType sql.NullString
	var duration, leverage sql.NullInt64
	err := s.Scan(
		&t.ID, &t.Timestamp, &market, &t.Symbol, &side, &orderType, &t.Size, &t.EntryPrice, &exitPrice,
		&t.Fee, &feeType, &rebate, &pnl, &status, &duration, &leverage)
	if err != nil {
		return nil, err // sql.ErrNoRows is handled by the caller
	}
	t.Market = domain.MarketType(market)
	t.Side = domain.TradeSide(side)
	t.OrderType = domain.OrderType(orderType)
	t.Status = domain.TradeStatus(status)
	t.ExitPrice = floatPtr(exitPrice)
	t.Rebate = floatPtr(rebate)
	t.PnL = floatPtr(pnl)
	t.Duration = int64Ptr(duration)
	t.Leverage = intPtr(leverage)
	if feeType.Valid {
		t.FeeType = domain.Fee(domain.FeeType(feeType.String))
	}
	return t, nil
}
