package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeDashboard/internal/adapters/logger"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"TRADE_SOURCE", "BINANCE_API_KEY", "BINANCE_API_SECRET", "SYMBOLS", "MOCK_TRADE_COUNT",
		"MOCK_SEED", "INITIAL_EQUITY", "HISTORY_DAYS", "TIMEZONE", "DB_PATH", "PREFS_PATH",
		"HTTP_ADDR", "REQUEST_TIMEOUT_SECONDS", "LOG_LEVEL", "TRACING_ENABLED", "IS_TESTNET",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceMock, cfg.TradeSource)
	assert.Equal(t, 200, cfg.MockTradeCount)
	assert.Equal(t, int64(12345), cfg.MockSeed)
	assert.Equal(t, 10000.0, cfg.InitialEquity)
	assert.Equal(t, 90, cfg.HistoryDays)
	assert.Equal(t, "./data/trade_dashboard.db", cfg.DBPath)
	assert.Equal(t, "./data/preferences.yaml", cfg.PrefsPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, logger.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.IsTestnet)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}, cfg.Symbols)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TRADE_SOURCE", "BINANCE")
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")
	t.Setenv("SYMBOLS", " btcusdt, ,ethusdt ")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceBinance, cfg.TradeSource)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, cfg.Symbols)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_ValidationErrorsAreJoined(t *testing.T) {
	t.Setenv("TRADE_SOURCE", "binance")
	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_API_SECRET", "")
	t.Setenv("INITIAL_EQUITY", "abc")
	t.Setenv("HISTORY_DAYS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "configuration validation failed")
	assert.Contains(t, msg, "BINANCE_API_KEY must be set")
	assert.Contains(t, msg, "BINANCE_API_SECRET must be set")
	assert.Contains(t, msg, "invalid INITIAL_EQUITY")
	assert.Contains(t, msg, "HISTORY_DAYS must be positive")
}

func TestLoadConfig_UnknownSource(t *testing.T) {
	t.Setenv("TRADE_SOURCE", "kraken")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRADE_SOURCE")
}
