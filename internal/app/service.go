package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"tradeDashboard/internal/adapters/charts"
	"tradeDashboard/internal/analytics"
	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/export"
	"tradeDashboard/internal/filter"
	"tradeDashboard/internal/journal"
	"tradeDashboard/internal/ports"
	"tradeDashboard/internal/risk"
	"tradeDashboard/internal/trace"
)

const (
	defaultHistoryDays = 90
	defaultWindowDays  = 30
)

// Config holds the dependencies and settings of the dashboard service.
type Config struct {
	Logger      ports.Logger
	Source      ports.TradeSource
	Trades      ports.TradeRepository
	Positions   ports.PositionRepository
	Journal     ports.JournalRepository
	Preferences ports.PreferenceStore

	InitialEquity float64          // starting balance for the equity curve
	HistoryDays   int              // how far back Sync asks the source for trades
	WindowDays    int              // fee and volume chart window
	Location      *time.Location   // calendar day boundaries
	Thresholds    *risk.Thresholds // nil selects risk.DefaultThresholds
	Now           func() time.Time // test hook
}

// DashboardService owns the application state and serves every dashboard view from it.
type DashboardService struct {
	logger    ports.Logger
	source    ports.TradeSource
	tradeRepo ports.TradeRepository
	posRepo   ports.PositionRepository
	jrnlRepo  ports.JournalRepository
	prefStore ports.PreferenceStore

	initialEquity float64
	historyDays   int
	windowDays    int
	loc           *time.Location
	thresholds    risk.Thresholds
	now           func() time.Time

	mu    sync.RWMutex // protects state
	state State

	group       singleflight.Group
	memoMu      sync.Mutex
	memo        map[string]*Bundle
	memoVersion uint64
	memoBucket  int64
}

// SyncResult summarizes one Sync run.
type SyncResult struct {
	Source    string        `json:"source"`
	Fetched   int           `json:"fetched"`
	Stored    int           `json:"stored"`
	Positions int           `json:"positions"`
	Duration  time.Duration `json:"duration"`
}

// NewDashboardService creates a new application service instance.
func NewDashboardService(cfg Config) (*DashboardService, error) {
	if cfg.Logger == nil || cfg.Source == nil || cfg.Trades == nil || cfg.Positions == nil ||
		cfg.Journal == nil || cfg.Preferences == nil {
		return nil, fmt.Errorf("missing required dependencies for DashboardService")
	}
	if cfg.InitialEquity < 0 {
		return nil, fmt.Errorf("%w: initial equity must not be negative", ports.ErrConfigurationError)
	}
	if cfg.InitialEquity == 0 {
		cfg.InitialEquity = analytics.DefaultInitialEquity
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = defaultHistoryDays
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = defaultWindowDays
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	thresholds := risk.DefaultThresholds()
	if cfg.Thresholds != nil {
		thresholds = *cfg.Thresholds
	}

	return &DashboardService{
		logger:        cfg.Logger,
		source:        cfg.Source,
		tradeRepo:     cfg.Trades,
		posRepo:       cfg.Positions,
		jrnlRepo:      cfg.Journal,
		prefStore:     cfg.Preferences,
		initialEquity: cfg.InitialEquity,
		historyDays:   cfg.HistoryDays,
		windowDays:    cfg.WindowDays,
		loc:           cfg.Location,
		thresholds:    thresholds,
		now:           cfg.Now,
		state:         State{Preferences: domain.DefaultPreferences()},
	}, nil
}

// SourceName returns the configured trade source's name.
func (s *DashboardService) SourceName() string { return s.source.Name() }

// Location returns the time zone used for calendar days and exports.
func (s *DashboardService) Location() *time.Location { return s.loc }

// Snapshot returns a copy of the current state. The slices it holds are never mutated.
func (s *DashboardService) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Status summarizes the current state for the API.
func (s *DashboardService) Status() Status {
	st := s.Snapshot()
	return Status{
		State:         st,
		Source:        s.source.Name(),
		TradeCount:    len(st.Trades),
		PositionCount: len(st.Positions),
		JournalCount:  len(st.Journal),
	}
}

// update applies fn to a copy of the state under the write lock.
// bump advances the version, which invalidates memoized bundles.
func (s *DashboardService) update(bump bool, fn func(st *State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	fn(&next)
	if bump {
		next.Version++
	}
	s.state = next
	return next
}

// Load fills the state from the repositories and the preference store.
func (s *DashboardService) Load(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "DashboardService.Load")
	defer span.End()

	var (
		trades    []domain.Trade
		positions []domain.Position
		entries   []domain.JournalEntry
		prefs     domain.Preferences
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		trades, err = s.tradeRepo.FindAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		positions, err = s.posRepo.FindPositions(gctx)
		return err
	})
	g.Go(func() (err error) {
		entries, err = s.jrnlRepo.FindEntries(gctx)
		return err
	})
	g.Go(func() (err error) {
		prefs, err = s.prefStore.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		s.logger.Error(ctx, err, "Failed to load dashboard state")
		return fmt.Errorf("failed to load dashboard state: %w", err)
	}

	st := s.update(true, func(st *State) {
		st.Trades = trades
		st.Positions = positions
		st.Journal = entries
		st.Preferences = prefs
	})
	s.logger.Info(ctx, "Dashboard state loaded", map[string]interface{}{
		"trades":    len(st.Trades),
		"positions": len(st.Positions),
		"journal":   len(st.Journal),
		"version":   st.Version,
	})
	return nil
}

// Sync pulls trades and positions from the source concurrently, stores them and
// reloads the trade snapshot from the repository.
func (s *DashboardService) Sync(ctx context.Context) (SyncResult, error) {
	ctx, span := trace.StartSpan(ctx, "DashboardService.Sync")
	defer span.End()

	start := s.now()
	result := SyncResult{Source: s.source.Name()}
	s.update(false, func(st *State) {
		st.Loading = true
		st.LastError = ""
	})

	fail := func(err error) (SyncResult, error) {
		span.RecordError(err)
		s.update(false, func(st *State) {
			st.Loading = false
			st.LastError = err.Error()
		})
		s.logger.Error(ctx, err, "Trade sync failed", map[string]interface{}{"source": result.Source})
		return result, err
	}

	since := start.AddDate(0, 0, -s.historyDays)
	var (
		fetched   []domain.Trade
		positions []domain.Position
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.source.FetchTrades(gctx, since)
		if err != nil {
			return fmt.Errorf("failed to fetch trades from %s: %w", result.Source, err)
		}
		fetched = t
		return nil
	})
	g.Go(func() error {
		p, err := s.source.FetchPositions(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch positions from %s: %w", result.Source, err)
		}
		positions = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return fail(err)
	}
	result.Fetched = len(fetched)
	result.Positions = len(positions)

	stored, err := s.tradeRepo.UpsertTrades(ctx, fetched)
	if err != nil {
		return fail(fmt.Errorf("failed to store trades: %w", err))
	}
	result.Stored = stored
	if err := s.posRepo.ReplacePositions(ctx, positions); err != nil {
		return fail(fmt.Errorf("failed to store positions: %w", err))
	}

	all, err := s.tradeRepo.FindAll(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to reload trades: %w", err))
	}

	finished := s.now()
	result.Duration = finished.Sub(start)
	st := s.update(true, func(st *State) {
		st.Trades = all
		st.Positions = positions
		st.Loading = false
		st.LastSync = finished
	})

	s.logger.Info(ctx, "Trade sync completed", map[string]interface{}{
		"source":    result.Source,
		"fetched":   result.Fetched,
		"stored":    result.Stored,
		"positions": result.Positions,
		"total":     len(all),
		"version":   st.Version,
	})
	return result, nil
}

// --- Trades ---

// TradeQuery selects, orders and pages trades. A nil Filters uses the active filters.
type TradeQuery struct {
	Filters  *domain.TradeFilters
	SortBy   filter.SortField
	Desc     bool
	Page     int
	PageSize int
}

// FilteredTrades applies f to the loaded trades, or the active filters when f is nil.
func (s *DashboardService) FilteredTrades(f *domain.TradeFilters) []domain.Trade {
	st := s.Snapshot()
	active := st.Filters
	if f != nil {
		active = *f
	}
	return filter.Apply(st.Trades, active)
}

// ListTrades returns one page of filtered and sorted trades.
func (s *DashboardService) ListTrades(q TradeQuery) (filter.Page, error) {
	trades := s.FilteredTrades(q.Filters)
	if q.SortBy != "" {
		trades = filter.Sort(trades, q.SortBy, q.Desc)
	}
	return filter.Paginate(trades, q.Page, q.PageSize)
}

// Trade returns one loaded trade by ID.
func (s *DashboardService) Trade(id string) (domain.Trade, error) {
	st := s.Snapshot()
	for i := range st.Trades {
		if st.Trades[i].ID == id {
			return st.Trades[i], nil
		}
	}
	return domain.Trade{}, fmt.Errorf("trade %s: %w", id, ports.ErrNotFound)
}

// Symbols lists the distinct symbols of the loaded trades, sorted.
func (s *DashboardService) Symbols() []string {
	st := s.Snapshot()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range st.Trades {
		sym := st.Trades[i].Symbol
		if _, ok := seen[sym]; ok {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// AddTrade stores a manually entered trade. An empty ID is assigned a new UUID.
func (s *DashboardService) AddTrade(ctx context.Context, t domain.Trade) (domain.Trade, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Timestamp == 0 {
		t.Timestamp = s.now().UnixMilli()
	}
	if err := validateTrade(&t); err != nil {
		return domain.Trade{}, err
	}
	if err := s.tradeRepo.InsertTrade(ctx, &t); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to add trade: %w", err)
	}

	st := s.update(true, func(st *State) {
		next := make([]domain.Trade, 0, len(st.Trades)+1)
		next = append(next, st.Trades...)
		next = append(next, t)
		sortNewestFirst(next)
		st.Trades = next
	})
	s.logger.Info(ctx, "Trade added", map[string]interface{}{"id": t.ID, "symbol": t.Symbol, "version": st.Version})
	return t, nil
}

// UpdateTrade replaces a stored trade with the same ID.
func (s *DashboardService) UpdateTrade(ctx context.Context, t domain.Trade) error {
	if err := validateTrade(&t); err != nil {
		return err
	}
	if err := s.tradeRepo.UpdateTrade(ctx, &t); err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	st := s.update(true, func(st *State) {
		next := make([]domain.Trade, len(st.Trades))
		copy(next, st.Trades)
		for i := range next {
			if next[i].ID == t.ID {
				next[i] = t
				break
			}
		}
		sortNewestFirst(next)
		st.Trades = next
	})
	s.logger.Info(ctx, "Trade updated", map[string]interface{}{"id": t.ID, "version": st.Version})
	return nil
}

// DeleteTrade removes a trade by ID.
func (s *DashboardService) DeleteTrade(ctx context.Context, id string) error {
	if err := s.tradeRepo.DeleteTrade(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	st := s.update(true, func(st *State) {
		next := make([]domain.Trade, 0, len(st.Trades))
		for i := range st.Trades {
			if st.Trades[i].ID != id {
				next = append(next, st.Trades[i])
			}
		}
		st.Trades = next
	})
	s.logger.Info(ctx, "Trade deleted", map[string]interface{}{"id": id, "version": st.Version})
	return nil
}

func validateTrade(t *domain.Trade) error {
	var problems []string
	if t.ID == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(t.Symbol) == "" {
		problems = append(problems, "symbol is required")
	}
	if !t.Side.Valid() {
		problems = append(problems, fmt.Sprintf("unknown side %q", t.Side))
	}
	if t.Size < 0 || t.EntryPrice < 0 || t.Fee < 0 {
		problems = append(problems, "size, entry price and fee must not be negative")
	}
	switch t.Status {
	case domain.StatusOpen, domain.StatusClosed:
	default:
		problems = append(problems, fmt.Sprintf("unknown status %q", t.Status))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ports.ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}

func sortNewestFirst(trades []domain.Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		if trades[i].Timestamp != trades[j].Timestamp {
			return trades[i].Timestamp > trades[j].Timestamp
		}
		return trades[i].ID < trades[j].ID
	})
}

// Positions returns the last known open positions.
func (s *DashboardService) Positions() []domain.Position {
	return s.Snapshot().Positions
}

// --- Filters ---

// SetFilters replaces the active filters.
func (s *DashboardService) SetFilters(f domain.TradeFilters) domain.TradeFilters {
	return s.update(false, func(st *State) { st.Filters = f }).Filters
}

// ClearFilters resets the active filters.
func (s *DashboardService) ClearFilters() {
	s.update(false, func(st *State) { st.Filters = domain.TradeFilters{} })
}

// --- Journal ---

// JournalQuery narrows the journal listing. Empty fields place no constraint.
type JournalQuery struct {
	TradeID   string
	Date      string
	Tag       string
	Sentiment domain.Sentiment
}

// JournalEntries returns the entries matching q, newest first.
func (s *DashboardService) JournalEntries(q JournalQuery) []domain.JournalEntry {
	entries := s.Snapshot().Journal
	if q.TradeID != "" {
		if e, ok := journal.ByTradeID(entries, q.TradeID); ok {
			entries = []domain.JournalEntry{e}
		} else {
			entries = []domain.JournalEntry{}
		}
	}
	if q.Date != "" {
		entries = journal.ByDate(entries, q.Date)
	}
	if q.Tag != "" {
		entries = journal.ByTag(entries, q.Tag)
	}
	if q.Sentiment != "" {
		entries = journal.BySentiment(entries, q.Sentiment)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries
}

// JournalTags returns every tag in use, sorted.
func (s *DashboardService) JournalTags() []string {
	return journal.AllTags(s.Snapshot().Journal)
}

// JournalStats summarizes the journal.
func (s *DashboardService) JournalStats() journal.Stats {
	return journal.ComputeStats(s.Snapshot().Journal)
}

// SaveJournalEntry creates or replaces an entry. A new entry gets a UUID and today's date.
func (s *DashboardService) SaveJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date == "" {
		e.Date = s.now().In(s.loc).Format(analytics.DateLayout)
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if err := journal.Validate(&e); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := s.jrnlRepo.SaveEntry(ctx, &e); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.update(false, func(st *State) {
		next := make([]domain.JournalEntry, 0, len(st.Journal)+1)
		next = append(next, e)
		for i := range st.Journal {
			if st.Journal[i].ID != e.ID {
				next = append(next, st.Journal[i])
			}
		}
		sort.SliceStable(next, func(i, j int) bool { return next[i].Date > next[j].Date })
		st.Journal = next
	})
	s.logger.Info(ctx, "Journal entry saved", map[string]interface{}{"id": e.ID, "tradeId": e.TradeID})
	return e, nil
}

// DeleteJournalEntry removes an entry by ID.
func (s *DashboardService) DeleteJournalEntry(ctx context.Context, id string) error {
	if err := s.jrnlRepo.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	s.update(false, func(st *State) {
		next := make([]domain.JournalEntry, 0, len(st.Journal))
		for i := range st.Journal {
			if st.Journal[i].ID != id {
				next = append(next, st.Journal[i])
			}
		}
		st.Journal = next
	})
	s.logger.Info(ctx, "Journal entry deleted", map[string]interface{}{"id": id})
	return nil
}

// SeedJournal stores entries when the journal is still empty and reports how many were written.
func (s *DashboardService) SeedJournal(ctx context.Context, entries []domain.JournalEntry) (int, error) {
	if len(s.Snapshot().Journal) > 0 {
		return 0, nil
	}
	for i := range entries {
		if _, err := s.SaveJournalEntry(ctx, entries[i]); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}

// --- Preferences ---

// Preferences returns the current preferences.
func (s *DashboardService) Preferences() domain.Preferences {
	return s.Snapshot().Preferences
}

// UpdatePreferences persists prefs and makes them current.
func (s *DashboardService) UpdatePreferences(ctx context.Context, prefs domain.Preferences) error {
	if err := s.prefStore.Save(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	s.update(false, func(st *State) { st.Preferences = prefs })
	return nil
}

// --- Output ---

// Export writes the filtered trades in format f. A nil filter uses the active filters.
func (s *DashboardService) Export(ctx context.Context, w io.Writer, f export.Format, filters *domain.TradeFilters) error {
	ctx, span := trace.StartSpan(ctx, "DashboardService.Export")
	defer span.End()

	trades := s.FilteredTrades(filters)
	if err := export.Write(w, f, trades, s.loc, s.now()); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to export %s: %w", f, err)
	}
	s.logger.Debug(ctx, "Trades exported", map[string]interface{}{"format": f, "trades": len(trades)})
	return nil
}

// RenderCharts writes the HTML chart page for period using the current theme.
func (s *DashboardService) RenderCharts(ctx context.Context, w io.Writer, period domain.Period) error {
	b, err := s.Bundle(ctx, period)
	if err != nil {
		return err
	}
	return charts.Render(w, charts.Input{
		Title:    fmt.Sprintf("Trading Dashboard (%s)", b.Period),
		Curve:    b.Equity,
		Daily:    b.PnLChart,
		Theme:    s.Preferences().Theme,
		Location: s.loc,
	})
}
