package ports

import (
	"context"
	"time"

	"tradeDashboard/internal/domain"
)

// TradeSource supplies trade history and open positions.
// The analytics core treats whatever it returns as already validated input.
type TradeSource interface {
	// Name identifies the source in logs, e.g. "mock" or "binance".
	Name() string
	// FetchTrades returns trades executed at or after since.
	FetchTrades(ctx context.Context, since time.Time) ([]domain.Trade, error)
	// FetchPositions returns currently open positions.
	FetchPositions(ctx context.Context) ([]domain.Position, error)
}
