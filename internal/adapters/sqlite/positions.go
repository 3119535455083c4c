package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tradeDashboard/internal/domain"
)

// ReplacePositions swaps the stored positions for the given set in one transaction.
func (r *Repository) ReplacePositions(ctx context.Context, positions []domain.Position) error {
	const insert = `
	INSERT INTO positions (id, symbol, market, side, size, entry_price, current_price, unrealized_pnl,
	                       leverage, liquidation_price, margin, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin position replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions`); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}
	for _, p := range positions {
		_, err := tx.ExecContext(ctx, insert,
			p.ID, p.Symbol, string(p.Market), string(p.Side), p.Size, p.EntryPrice, p.CurrentPrice,
			p.UnrealizedPnL, nullInt(p.Leverage), nullFloat(p.LiquidationPrice), nullFloat(p.Margin), p.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert position %s: %w", p.ID, mapWriteError(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit position replace: %w", err)
	}
	r.logger.Debug(ctx, "Positions replaced", map[string]interface{}{"count": len(positions)})
	return nil
}

// FindPositions retrieves the stored positions, largest notional first.
func (r *Repository) FindPositions(ctx context.Context) ([]domain.Position, error) {
	const query = `
	SELECT id, symbol, market, side, size, entry_price, current_price, unrealized_pnl,
	       leverage, liquidation_price, margin, timestamp
	FROM positions
	ORDER BY size * current_price DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]domain.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position rows: %w", err)
	}
	return positions, nil
}

func scanPosition(s scanner) (*domain.Position, error) {
	p := &domain.Position{}
	var market, side string
	var leverage sql.NullInt64
	var liquidation, margin sql.NullFloat64
	err := s.Scan(
		&p.ID, &p.Symbol, &market, &side, &p.Size, &p.EntryPrice, &p.CurrentPrice, &p.UnrealizedPnL,
		&leverage, &liquidation, &margin, &p.Timestamp)
	if err != nil {
		return nil, err
	}
	p.Market = domain.MarketType(market)
	p.Side = domain.TradeSide(side)
	p.Leverage = intPtr(leverage)
	p.LiquidationPrice = floatPtr(liquidation)
	p.Margin = floatPtr(margin)
	return p, nil
}
