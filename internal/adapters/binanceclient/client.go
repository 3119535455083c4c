package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
)

const (
	baseURLProduction = "https://fapi.binance.com"
	baseURLTestnet    = "https://testnet.binancefuture.com"

	// The account trade endpoint rejects ranges longer than seven days.
	tradeWindow = 7 * 24 * time.Hour

	defaultPageLimit   = 1000
	defaultMaxLookback = 90 * 24 * time.Hour
)

// Client implements ports.TradeSource over the Binance USDⓈ-M futures API.
type Client struct {
	futuresClient *futures.Client
	logger        ports.Logger
	symbols       []string
	pageLimit     int
	maxLookback   time.Duration
	now           func() time.Time
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey      string
	SecretKey   string
	UseTestnet  bool
	Symbols     []string // exchange symbols, e.g. BTCUSDT
	Logger      ports.Logger
	PageLimit   int           // fills per request, max 1000
	MaxLookback time.Duration // oldest history fetched when since is zero or older
}

// New creates a new Binance trade source.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("binance API key and secret are required: %w", ports.ErrConfigurationError)
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol is required: %w", ports.ErrConfigurationError)
	}

	client := futures.NewClient(cfg.APIKey, cfg.SecretKey)
	if cfg.UseTestnet {
		client.BaseURL = baseURLTestnet
	} else {
		client.BaseURL = baseURLProduction
	}
	cfg.Logger.Info(context.Background(), "Binance trade source configured", map[string]interface{}{
		"baseURL": client.BaseURL,
		"symbols": strings.Join(cfg.Symbols, ","),
	})

	pageLimit := cfg.PageLimit
	if pageLimit <= 0 || pageLimit > defaultPageLimit {
		pageLimit = defaultPageLimit
	}
	lookback := cfg.MaxLookback
	if lookback <= 0 {
		lookback = defaultMaxLookback
	}

	return &Client{
		futuresClient: client,
		logger:        cfg.Logger,
		symbols:       cfg.Symbols,
		pageLimit:     pageLimit,
		maxLookback:   lookback,
		now:           time.Now,
	}, nil
}

// Name identifies the source.
func (c *Client) Name() string { return "binance" }

// Ping checks connectivity to the API.
func (c *Client) Ping(ctx context.Context) error {
	op := "Ping"
	if err := c.futuresClient.NewPingService().Do(ctx); err != nil {
		return c.handleError(ctx, err, op)
	}
	c.logger.Debug(ctx, op+" successful")
	return nil
}

// FetchTrades returns account fills for the configured symbols executed at or after since.
func (c *Client) FetchTrades(ctx context.Context, since time.Time) ([]domain.Trade, error) {
	op := "FetchTrades"
	now := c.now()
	if oldest := now.Add(-c.maxLookback); since.Before(oldest) {
		since = oldest
	}

	leverage, err := c.leverageBySymbol(ctx)
	if err != nil {
		// Fills are still usable without leverage.
		c.logger.Warn(ctx, "Leverage lookup failed, continuing without it", map[string]interface{}{"error": err.Error()})
	}

	trades := make([]domain.Trade, 0)
	for _, symbol := range c.symbols {
		fills, err := c.fetchSymbolFills(ctx, symbol, since, now)
		if err != nil {
			return nil, c.handleError(ctx, err, op)
		}
		for _, f := range fills {
			trades = append(trades, translateAccountTrade(f, leverage[f.Symbol]))
		}
		c.logger.Debug(ctx, "Fetched account trades", map[string]interface{}{"symbol": symbol, "count": len(fills)})
	}
	return trades, nil
}

func (c *Client) fetchSymbolFills(ctx context.Context, symbol string, since, until time.Time) ([]*futures.AccountTrade, error) {
	var fills []*futures.AccountTrade
	for start := since; start.Before(until); start = start.Add(tradeWindow) {
		end := start.Add(tradeWindow)
		if end.After(until) {
			end = until
		}
		page, err := c.futuresClient.NewListAccountTradeService().
			Symbol(symbol).
			StartTime(start.UnixMilli()).
			EndTime(end.UnixMilli()).
			Limit(c.pageLimit).
			Do(ctx)
		if err != nil {
			return nil, err
		}
		if len(page) >= c.pageLimit {
			c.logger.Warn(ctx, "Account trade page is full, older fills in this window may be missing", map[string]interface{}{
				"symbol": symbol, "windowStart": start.Format(time.RFC3339),
			})
		}
		fills = append(fills, page...)
	}
	return fills, nil
}

// FetchPositions returns non-flat positions for the configured symbols.
func (c *Client) FetchPositions(ctx context.Context) ([]domain.Position, error) {
	op := "FetchPositions"
	risks, err := c.futuresClient.NewGetPositionRiskService().Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op)
	}

	wanted := make(map[string]bool, len(c.symbols))
	for _, s := range c.symbols {
		wanted[s] = true
	}
	now := c.now().UnixMilli()
	positions := make([]domain.Position, 0)
	for _, r := range risks {
		if !wanted[r.Symbol] {
			continue
		}
		if p, ok := translatePositionRisk(r, now); ok {
			positions = append(positions, p)
		}
	}
	c.logger.Debug(ctx, "Fetched positions", map[string]interface{}{"count": len(positions)})
	return positions, nil
}

func (c *Client) leverageBySymbol(ctx context.Context) (map[string]int, error) {
	risks, err := c.futuresClient.NewGetPositionRiskService().Do(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(risks))
	for _, r := range risks {
		out[r.Symbol] = parseInt(r.Leverage)
	}
	return out, nil
}

// handleError translates common Binance API errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message

		var mappedErr error
		switch apiErr.Code {
		case -1000, -1001, -1008: // Unknown server error / disconnected / server busy
			mappedErr = ports.ErrSourceUnavailable
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1021: // Timestamp outside of recvWindow
			mappedErr = ports.ErrTimeout
		case -1022: // Invalid signature
			mappedErr = ports.ErrAuthenticationFailed
		case -1100, -1101, -1102, -1103, -1104, -1105, -1106, -1111, -1121, -1127, -1128, -1130:
			mappedErr = ports.ErrInvalidRequest
		case -2014, -2015: // API-key format invalid / invalid key, IP or permissions
			mappedErr = ports.ErrInvalidAPIKeys
		default:
			mappedErr = ports.ErrUnknown
		}
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed with API error", operation), fields)
		return fmt.Errorf("%s failed: %w: %w", operation, mappedErr, err)
	}

	var finalErr error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		finalErr = fmt.Errorf("%s operation canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	case isConnectionError(err):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrConnectionFailed, err)
	default:
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrUnknown, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

func isConnectionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "no such host")
}
