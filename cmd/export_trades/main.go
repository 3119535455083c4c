package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradeDashboard/config"
	"tradeDashboard/internal/adapters/logger"
	"tradeDashboard/internal/adapters/sqlite"
	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/export"
	"tradeDashboard/internal/filter"
)

func main() {
	formatFlag := flag.String("format", "csv", "export format: csv, json or report")
	outDir := flag.String("out", "data", "output directory")
	symbols := flag.String("symbol", "", "comma separated symbols to keep")
	statuses := flag.String("status", "", "comma separated statuses to keep (OPEN, CLOSED)")
	markets := flag.String("market", "", "comma separated markets to keep (SPOT, PERP)")
	from := flag.String("from", "", "first day to keep, YYYY-MM-DD")
	to := flag.String("to", "", "last day to keep, YYYY-MM-DD")
	query := flag.String("q", "", "case-insensitive search over symbol and trade id")
	flag.Parse()

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	ctx := context.Background()
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	trades, err := repo.FindAll(ctx)
	if err != nil {
		log.Fatalf("Error reading trades: %v", err)
	}

	f := domain.TradeFilters{
		Symbols:     splitList(*symbols),
		SearchQuery: *query,
	}
	for _, s := range splitList(*statuses) {
		f.Status = append(f.Status, domain.TradeStatus(s))
	}
	for _, m := range splitList(*markets) {
		f.Markets = append(f.Markets, domain.MarketType(m))
	}
	if *from != "" || *to != "" {
		dr := &domain.DateRange{End: time.Now()}
		if *from != "" {
			if dr.Start, err = time.ParseInLocation("2006-01-02", *from, cfg.Timezone); err != nil {
				log.Fatalf("invalid -from: %v", err)
			}
		}
		if *to != "" {
			end, err := time.ParseInLocation("2006-01-02", *to, cfg.Timezone)
			if err != nil {
				log.Fatalf("invalid -to: %v", err)
			}
			dr.End = end.Add(24*time.Hour - time.Nanosecond)
		}
		f.DateRange = dr
	}
	selected := filter.Apply(trades, f)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Error creating %s: %v", *outDir, err)
	}
	now := time.Now()
	path := filepath.Join(*outDir, export.Filename(format.BaseName(), format.Extension(), now))
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Error creating %s: %v", path, err)
	}
	defer file.Close()

	if err := export.Write(file, format, selected, cfg.Timezone, now); err != nil {
		appLogger.Error(ctx, err, "Export failed", map[string]interface{}{"path": path})
		log.Fatalf("Error writing %s: %v", path, err)
	}
	appLogger.Info(ctx, "Export written", map[string]interface{}{"path": path, "trades": len(selected), "format": format})
	fmt.Printf("Exported %d of %d trades to %s\n", len(selected), len(trades), path)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToUpper(part))
		}
	}
	return out
}
