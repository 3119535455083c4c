package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradeDashboard/internal/app"
	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/export"
	"tradeDashboard/internal/filter"
	"tradeDashboard/internal/journal"
	"tradeDashboard/internal/ports"
)

// Dashboard is the application surface the HTTP layer depends on.
// *app.DashboardService implements it.
type Dashboard interface {
	Status() app.Status
	Location() *time.Location
	Sync(ctx context.Context) (app.SyncResult, error)
	Bundle(ctx context.Context, period domain.Period) (*app.Bundle, error)

	ListTrades(q app.TradeQuery) (filter.Page, error)
	Trade(id string) (domain.Trade, error)
	Symbols() []string
	AddTrade(ctx context.Context, t domain.Trade) (domain.Trade, error)
	UpdateTrade(ctx context.Context, t domain.Trade) error
	DeleteTrade(ctx context.Context, id string) error
	Positions() []domain.Position

	Snapshot() app.State
	SetFilters(f domain.TradeFilters) domain.TradeFilters
	ClearFilters()

	JournalEntries(q app.JournalQuery) []domain.JournalEntry
	JournalTags() []string
	JournalStats() journal.Stats
	SaveJournalEntry(ctx context.Context, e domain.JournalEntry) (domain.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id string) error

	Preferences() domain.Preferences
	UpdatePreferences(ctx context.Context, prefs domain.Preferences) error

	Export(ctx context.Context, w io.Writer, f export.Format, filters *domain.TradeFilters) error
	RenderCharts(ctx context.Context, w io.Writer, period domain.Period) error
}

var _ Dashboard = (*app.DashboardService)(nil)

type handlers struct {
	dash   Dashboard
	logger ports.Logger
}

func (h *handlers) register(g *gin.RouterGroup) {
	g.GET("/status", h.status)
	g.POST("/sync", h.sync)

	g.GET("/bundle", h.bundleView(func(b *app.Bundle) interface{} { return b }))
	g.GET("/analytics", h.bundleView(func(b *app.Bundle) interface{} { return b.Analytics }))
	g.GET("/equity", h.bundleView(func(b *app.Bundle) interface{} { return b.Equity }))
	g.GET("/daily", h.bundleView(func(b *app.Bundle) interface{} { return b.Daily }))
	g.GET("/calendar", h.bundleView(func(b *app.Bundle) interface{} { return b.Calendar }))
	g.GET("/pnl", h.bundleView(func(b *app.Bundle) interface{} { return b.PnLChart }))
	g.GET("/symbols", h.bundleView(func(b *app.Bundle) interface{} { return b.Symbols }))
	g.GET("/time", h.bundleView(func(b *app.Bundle) interface{} { return b.Time }))
	g.GET("/ordertypes", h.bundleView(func(b *app.Bundle) interface{} { return b.OrderTypes }))
	g.GET("/directional", h.bundleView(func(b *app.Bundle) interface{} { return b.Directional }))
	g.GET("/fees", h.bundleView(func(b *app.Bundle) interface{} { return b.Fees }))
	g.GET("/volume", h.bundleView(func(b *app.Bundle) interface{} { return b.Volume }))
	g.GET("/allocation", h.bundleView(func(b *app.Bundle) interface{} { return b.Allocation }))
	g.GET("/streaks", h.bundleView(func(b *app.Bundle) interface{} { return b.Streaks }))
	g.GET("/score", h.bundleView(func(b *app.Bundle) interface{} { return b.Score }))
	g.GET("/risk", h.bundleView(func(b *app.Bundle) interface{} { return b.Risk }))
	g.GET("/exposure", h.bundleView(func(b *app.Bundle) interface{} { return b.Exposure }))

	g.GET("/trades", h.listTrades)
	g.GET("/trades/symbols", h.tradeSymbols)
	g.GET("/trades/:id", h.getTrade)
	g.POST("/trades", h.createTrade)
	g.PUT("/trades/:id", h.updateTrade)
	g.DELETE("/trades/:id", h.deleteTrade)
	g.GET("/positions", h.positions)

	g.GET("/filters", h.getFilters)
	g.PUT("/filters", h.putFilters)
	g.DELETE("/filters", h.clearFilters)

	g.GET("/journal", h.listJournal)
	g.GET("/journal/stats", h.journalStats)
	g.GET("/journal/tags", h.journalTags)
	g.POST("/journal", h.saveJournal)
	g.PUT("/journal/:id", h.saveJournal)
	g.DELETE("/journal/:id", h.deleteJournal)

	g.GET("/preferences", h.getPreferences)
	g.PUT("/preferences", h.putPreferences)

	g.GET("/export/:format", h.export)
}

// statusFor maps sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrInvalidRequest), errors.Is(err, filter.ErrInvalidPageSize):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ports.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ports.ErrSourceUnavailable), errors.Is(err, ports.ErrConnectionFailed), errors.Is(err, ports.ErrRateLimited):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), err, "Request failed", map[string]interface{}{"path": c.Request.URL.Path})
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

func (h *handlers) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Status())
}

func (h *handlers) sync(c *gin.Context) {
	res, err := h.dash.Sync(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":     res.Source,
		"fetched":    res.Fetched,
		"stored":     res.Stored,
		"positions":  res.Positions,
		"durationMs": res.Duration.Milliseconds(),
	})
}

func (h *handlers) bundleView(pick func(*app.Bundle) interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := h.dash.Bundle(c.Request.Context(), domain.Period(c.Query("period")))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, pick(b))
	}
}

func (h *handlers) listTrades(c *gin.Context) {
	q, err := parseTradeQuery(c, h.dash.Location())
	if err != nil {
		h.fail(c, err)
		return
	}
	page, err := h.dash.ListTrades(q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) tradeSymbols(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Symbols())
}

func (h *handlers) getTrade(c *gin.Context) {
	t, err := h.dash.Trade(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) createTrade(c *gin.Context) {
	var t domain.Trade
	if err := c.ShouldBindJSON(&t); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	created, err := h.dash.AddTrade(c.Request.Context(), t)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateTrade(c *gin.Context) {
	var t domain.Trade
	if err := c.ShouldBindJSON(&t); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	t.ID = c.Param("id")
	if err := h.dash.UpdateTrade(c.Request.Context(), t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handlers) deleteTrade(c *gin.Context) {
	if err := h.dash.DeleteTrade(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) positions(c *gin.Context) {
	positions := h.dash.Positions()
	if positions == nil {
		positions = []domain.Position{}
	}
	c.JSON(http.StatusOK, positions)
}

func (h *handlers) getFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Snapshot().Filters)
}

func (h *handlers) putFilters(c *gin.Context) {
	var f domain.TradeFilters
	if err := c.ShouldBindJSON(&f); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	c.JSON(http.StatusOK, h.dash.SetFilters(f))
}

func (h *handlers) clearFilters(c *gin.Context) {
	h.dash.ClearFilters()
	c.Status(http.StatusNoContent)
}

func (h *handlers) listJournal(c *gin.Context) {
	q := app.JournalQuery{
		TradeID:   c.Query("tradeId"),
		Date:      c.Query("date"),
		Tag:       c.Query("tag"),
		Sentiment: domain.Sentiment(c.Query("sentiment")),
	}
	if q.Sentiment != "" && !q.Sentiment.Valid() {
		h.fail(c, fmt.Errorf("%w: unknown sentiment %q", ports.ErrInvalidRequest, q.Sentiment))
		return
	}
	c.JSON(http.StatusOK, h.dash.JournalEntries(q))
}

func (h *handlers) journalStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.JournalStats())
}

func (h *handlers) journalTags(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.JournalTags())
}

func (h *handlers) saveJournal(c *gin.Context) {
	var e domain.JournalEntry
	if err := c.ShouldBindJSON(&e); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	code := http.StatusCreated
	if id := c.Param("id"); id != "" {
		e.ID = id
		code = http.StatusOK
	}
	saved, err := h.dash.SaveJournalEntry(c.Request.Context(), e)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(code, saved)
}

func (h *handlers) deleteJournal(c *gin.Context) {
	if err := h.dash.DeleteJournalEntry(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Preferences())
}

func (h *handlers) putPreferences(c *gin.Context) {
	prefs := h.dash.Preferences()
	if err := c.ShouldBindJSON(&prefs); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err))
		return
	}
	if err := h.dash.UpdatePreferences(c.Request.Context(), prefs); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *handlers) export(c *gin.Context) {
	f, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		h.fail(c, err)
		return
	}
	filters, err := parseFilters(c, h.dash.Location())
	if err != nil {
		h.fail(c, err)
		return
	}
	name := export.Filename(f.BaseName(), f.Extension(), time.Now())
	c.Header("Content-Type", f.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Status(http.StatusOK)
	if err := h.dash.Export(c.Request.Context(), c.Writer, f, filters); err != nil {
		h.logger.Error(c.Request.Context(), err, "Export failed mid-stream", map[string]interface{}{"format": f})
	}
}

func (h *handlers) charts(c *gin.Context) {
	period := domain.Period(c.Query("period"))
	if period != "" && !period.Valid() {
		h.fail(c, fmt.Errorf("%w: unknown period %q", ports.ErrInvalidRequest, period))
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.dash.RenderCharts(c.Request.Context(), c.Writer, period); err != nil {
		h.logger.Error(c.Request.Context(), err, "Chart rendering failed", map[string]interface{}{"period": period})
	}
}
