package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"syscall"

	"tradeDashboard/config"
	"tradeDashboard/internal/adapters/binanceclient"
	"tradeDashboard/internal/adapters/logger"
	"tradeDashboard/internal/adapters/mocksource"
	"tradeDashboard/internal/adapters/prefs"
	"tradeDashboard/internal/adapters/sqlite"
	"tradeDashboard/internal/app"
	"tradeDashboard/internal/ports"
	"tradeDashboard/internal/trace"
	httpapi "tradeDashboard/internal/transport/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Tracing
	if err := trace.Init(ctx, trace.Config{Enabled: cfg.TracingEnabled}); err != nil {
		appLogger.Warn(ctx, "Tracing disabled", map[string]interface{}{"error": err.Error()})
	}
	defer func() {
		if err := trace.Shutdown(context.Background()); err != nil {
			appLogger.Error(context.Background(), err, "Error shutting down tracer")
		}
	}()

	// 4. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err) // Also log to stderr
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 5. Initialize Preference Store
	prefStore, err := prefs.NewStore(prefs.Config{Path: cfg.PrefsPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize preference store: %v", err)
	}

	// 6. Initialize Trade Source
	source, mock, err := newTradeSource(cfg, appLogger)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize trade source")
		log.Fatalf("FATAL: Failed to initialize trade source: %v", err)
	}
	appLogger.Info(ctx, "Trade source initialized", map[string]interface{}{"source": source.Name()})

	// 7. Initialize Application Service
	dashboard, err := app.NewDashboardService(app.Config{
		Logger:        appLogger,
		Source:        source,
		Trades:        repo,
		Positions:     repo,
		Journal:       repo,
		Preferences:   prefStore,
		InitialEquity: cfg.InitialEquity,
		HistoryDays:   cfg.HistoryDays,
		Location:      cfg.Timezone,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize dashboard service")
		log.Fatalf("FATAL: Failed to initialize dashboard service: %v", err)
	}
	if err := dashboard.Load(ctx); err != nil {
		log.Fatalf("FATAL: Failed to load stored state: %v", err)
	}

	// 8. Initial Sync. Stored trades keep the dashboard usable if the source is down.
	if _, err := dashboard.Sync(ctx); err != nil {
		appLogger.Warn(ctx, "Initial sync failed, serving stored trades", map[string]interface{}{"error": err.Error()})
	}
	if mock != nil {
		n, err := dashboard.SeedJournal(ctx, mock.JournalEntries(dashboard.Snapshot().Trades))
		if err != nil {
			appLogger.Warn(ctx, "Failed to seed demo journal", map[string]interface{}{"error": err.Error()})
		} else if n > 0 {
			appLogger.Info(ctx, "Demo journal seeded", map[string]interface{}{"entries": n})
		}
	}

	// 9. Start the HTTP Server
	server, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:           cfg.HTTPAddr,
		Dashboard:      dashboard,
		Logger:         appLogger,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize HTTP server: %v", err)
	}
	if err := server.Start(ctx); err != nil {
		appLogger.Error(context.Background(), err, "HTTP server exited with error")
		log.Fatalf("FATAL: HTTP server exited with error: %v", err)
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}

// newTradeSource builds the configured source. The mock is also returned concretely
// so its demo journal can be seeded.
func newTradeSource(cfg *config.Config, l ports.Logger) (ports.TradeSource, *mocksource.Source, error) {
	if cfg.TradeSource == config.SourceBinance {
		client, err := binanceclient.New(binanceclient.Config{
			APIKey:     cfg.APIKey,
			SecretKey:  cfg.SecretKey,
			UseTestnet: cfg.IsTestnet,
			Symbols:    cfg.Symbols,
			Logger:     l,
		})
		return client, nil, err
	}
	mock, err := mocksource.New(mocksource.Config{
		Seed:        cfg.MockSeed,
		TradeCount:  cfg.MockTradeCount,
		HistoryDays: cfg.HistoryDays,
		Logger:      l,
	})
	return mock, mock, err
}
