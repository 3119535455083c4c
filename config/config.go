package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradeDashboard/internal/adapters/logger" // Import the logger package for LogLevel
)

// Trade source names accepted in TRADE_SOURCE.
const (
	SourceMock    = "mock"
	SourceBinance = "binance"
)

// Config holds all application configuration.
type Config struct {
	// Trade source
	TradeSource string // mock or binance

	// Binance API
	APIKey    string
	SecretKey string
	IsTestnet bool
	Symbols   []string // exchange symbols fetched by the Binance source, e.g. BTCUSDT

	// Mock source
	MockTradeCount int
	MockSeed       int64

	// Analytics
	InitialEquity float64
	HistoryDays   int
	Timezone      *time.Location

	// Storage
	DBPath    string
	PrefsPath string

	// HTTP
	HTTPAddr       string
	RequestTimeout time.Duration

	// Logging and tracing
	LogLevel       logger.LogLevel
	TracingEnabled bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.TradeSource = strings.ToLower(getEnv("TRADE_SOURCE", SourceMock))
	if cfg.TradeSource != SourceMock && cfg.TradeSource != SourceBinance {
		errs = append(errs, fmt.Sprintf("TRADE_SOURCE must be %q or %q", SourceMock, SourceBinance))
	}

	// Binance API
	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety
	cfg.Symbols = getEnvAsList("SYMBOLS", []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"})

	if cfg.TradeSource == SourceBinance {
		if cfg.APIKey == "" {
			errs = append(errs, "BINANCE_API_KEY must be set")
		}
		if cfg.SecretKey == "" {
			errs = append(errs, "BINANCE_API_SECRET must be set")
		}
		if len(cfg.Symbols) == 0 {
			errs = append(errs, "SYMBOLS must list at least one symbol")
		}
	}

	// Mock source
	cfg.MockTradeCount, err = getEnvAsIntRequired("MOCK_TRADE_COUNT", 200)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MOCK_TRADE_COUNT: %v", err))
	} else if cfg.MockTradeCount <= 0 {
		errs = append(errs, "MOCK_TRADE_COUNT must be positive")
	}

	seed, err := getEnvAsIntRequired("MOCK_SEED", 12345)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid MOCK_SEED: %v", err))
	}
	cfg.MockSeed = int64(seed)

	// Analytics
	cfg.InitialEquity, err = getEnvAsFloatRequired("INITIAL_EQUITY", 10000.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid INITIAL_EQUITY: %v", err))
	} else if cfg.InitialEquity <= 0 {
		errs = append(errs, "INITIAL_EQUITY must be positive")
	}

	cfg.HistoryDays, err = getEnvAsIntRequired("HISTORY_DAYS", 90)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid HISTORY_DAYS: %v", err))
	} else if cfg.HistoryDays <= 0 {
		errs = append(errs, "HISTORY_DAYS must be positive")
	}

	tz := getEnv("TIMEZONE", "Local")
	cfg.Timezone, err = time.LoadLocation(tz)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TIMEZONE %q: %v", tz, err))
	}

	// Storage
	cfg.DBPath = getEnv("DB_PATH", "./data/trade_dashboard.db")
	cfg.PrefsPath = getEnv("PREFS_PATH", "./data/preferences.yaml")

	// HTTP
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	timeoutSeconds := getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 10)
	if timeoutSeconds <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT_SECONDS must be positive")
	}
	cfg.RequestTimeout = time.Duration(timeoutSeconds) * time.Second

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package
	cfg.TracingEnabled = getEnvAsBool("TRACING_ENABLED", false)

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
