package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"tradeDashboard/config"
	"tradeDashboard/internal/adapters/binanceclient"
	"tradeDashboard/internal/adapters/logger"
	"tradeDashboard/internal/adapters/mocksource"
	"tradeDashboard/internal/adapters/sqlite"
	"tradeDashboard/internal/ports"
)

func main() {
	sourceFlag := flag.String("source", "", "trade source: mock or binance (defaults to TRADE_SOURCE)")
	sinceFlag := flag.Duration("since", 720*time.Hour, "fetch trades executed within this window")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}
	if *sourceFlag != "" {
		cfg.TradeSource = *sourceFlag
	}

	// 2. Initialize Logger
	ctx := context.Background()
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Initialize Repository
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	// 4. Initialize Trade Source
	var source ports.TradeSource
	var mock *mocksource.Source
	switch cfg.TradeSource {
	case config.SourceBinance:
		source, err = binanceclient.New(binanceclient.Config{
			APIKey:      cfg.APIKey,
			SecretKey:   cfg.SecretKey,
			UseTestnet:  cfg.IsTestnet,
			Symbols:     cfg.Symbols,
			Logger:      appLogger,
			MaxLookback: *sinceFlag,
		})
	case config.SourceMock:
		mock, err = mocksource.New(mocksource.Config{
			Seed:        cfg.MockSeed,
			TradeCount:  cfg.MockTradeCount,
			HistoryDays: cfg.HistoryDays,
			Logger:      appLogger,
		})
		source = mock
	default:
		err = fmt.Errorf("unknown trade source %q", cfg.TradeSource)
	}
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize trade source: %v", err)
	}

	since := time.Now().Add(-*sinceFlag)
	fmt.Printf("Fetching %s trades since %s...\n", source.Name(), since.Format(time.RFC3339))

	trades, err := source.FetchTrades(ctx, since)
	if err != nil {
		appLogger.Error(ctx, err, "Error fetching trades")
		log.Fatalf("Error fetching trades: %v", err)
	}
	stored, err := repo.UpsertTrades(ctx, trades)
	if err != nil {
		log.Fatalf("Error storing trades: %v", err)
	}

	positions, err := source.FetchPositions(ctx)
	if err != nil {
		appLogger.Error(ctx, err, "Error fetching positions")
		log.Fatalf("Error fetching positions: %v", err)
	}
	if err := repo.ReplacePositions(ctx, positions); err != nil {
		log.Fatalf("Error storing positions: %v", err)
	}

	seeded := 0
	if mock != nil {
		existing, err := repo.FindEntries(ctx)
		if err != nil {
			log.Fatalf("Error reading journal: %v", err)
		}
		if len(existing) == 0 {
			for _, e := range mock.JournalEntries(trades) {
				if err := repo.SaveEntry(ctx, &e); err != nil {
					log.Fatalf("Error seeding journal: %v", err)
				}
				seeded++
			}
		}
	}

	appLogger.Info(ctx, "Sync finished", map[string]interface{}{
		"source":    source.Name(),
		"trades":    stored,
		"positions": len(positions),
		"journal":   seeded,
		"db":        cfg.DBPath,
	})
	fmt.Printf("Stored %d trades, %d positions, %d journal entries in %s\n", stored, len(positions), seeded, cfg.DBPath)
}
