package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"tradeDashboard/config"
	"tradeDashboard/internal/adapters/logger"
	"tradeDashboard/internal/adapters/sqlite"
	"tradeDashboard/internal/analytics"
	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/risk"
)

func main() {
	days := flag.Int("days", 0, "only analyze trades from the last N days (0 means all)")
	flag.Parse()

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

	var trades []domain.Trade
	if *days > 0 {
		trades, err = repo.FindSince(ctx, time.Now().AddDate(0, 0, -*days))
	} else {
		trades, err = repo.FindAll(ctx)
	}
	if err != nil {
		log.Fatalf("Error reading trades: %v", err)
	}
	if len(trades) == 0 {
		log.Println("No trades stored. Run sync_trades first.")
		return
	}
	positions, err := repo.FindPositions(ctx)
	if err != nil {
		log.Fatalf("Error reading positions: %v", err)
	}

	snapshot := analytics.ComputeAnalytics(trades)
	curve := analytics.EquityCurve(trades, cfg.InitialEquity)
	metrics := risk.Compute(curve, snapshot)
	score := analytics.ComputeScore(snapshot)
	streaks := analytics.ComputeStreaks(trades)

	fmt.Println("## Overview")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Trades\tClosed\tWinRate\tPF\tExpectancy\tTotalPnL\tFees\tMaxDD\tSharpe\tRisk\t")
	fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%.2f\t%s\t%.2f\t%s\t%.2f\t%s\t\n",
		snapshot.TotalTrades,
		snapshot.ClosedTrades,
		analytics.FormatPercent(snapshot.WinRate),
		analytics.FormatRatio(snapshot.ProfitFactor),
		snapshot.Expectancy,
		analytics.FormatCurrency(snapshot.TotalPnL),
		snapshot.TotalFees,
		analytics.FormatPercent(metrics.MaxDrawdown),
		metrics.SharpeRatio,
		metrics.Level,
	)
	w.Flush()

	fmt.Printf("\nScore: %d/%d (%s, %s)\n", score.Total, score.Max, score.Grade, score.Label)
	fmt.Printf("Streak: %d %s, longest win %d, longest loss %d\n",
		streaks.CurrentCount, streaks.CurrentType, streaks.LongestWinStreak, streaks.LongestLossStreak)

	fmt.Println("\n## Symbols")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Symbol\tTrades\tVolume\tPnL\tWinRate\tAvgHold\t")
	for _, s := range analytics.BySymbol(trades) {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%s\t%s\t\n",
			s.Symbol, s.Trades, s.Volume, s.PnL,
			analytics.FormatPercent(s.WinRate),
			analytics.FormatDuration(s.AvgTradeDuration),
		)
	}
	w.Flush()

	fmt.Println("\n## Order Types")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Type\tTrades\tVolume\tPnL\tWinRate\tAvgPnL\t")
	for _, o := range analytics.ByOrderType(trades) {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%s\t%.2f\t\n",
			o.OrderType, o.Trades, o.Volume, o.PnL, analytics.FormatPercent(o.WinRate), o.AvgPnL)
	}
	w.Flush()

	if len(positions) > 0 {
		e := risk.ComputeExposure(positions)
		fmt.Println("\n## Exposure")
		fmt.Printf("Positions: %d, notional %.2f (long %.2f / short %.2f), unrealized %.2f, leverage %.1fx\n",
			e.Positions, e.TotalNotional, e.LongNotional, e.ShortNotional, e.TotalUnrealized, e.WeightedLeverage)
	}
}
