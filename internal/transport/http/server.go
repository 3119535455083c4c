// Package httpapi serves the dashboard's JSON API and chart page over gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradeDashboard/internal/ports"
	"tradeDashboard/internal/trace"
)

const (
	defaultAddr           = ":8080"
	defaultRequestTimeout = 10 * time.Second
	shutdownTimeout       = 5 * time.Second
)

// ServerConfig describes the HTTP server's dependencies.
type ServerConfig struct {
	Addr           string
	Dashboard      Dashboard
	Logger         ports.Logger
	RequestTimeout time.Duration
}

// Server exposes the dashboard over HTTP.
type Server struct {
	addr   string
	router *gin.Engine
	logger ports.Logger
}

// NewServer builds the gin engine and registers every route.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Dashboard == nil {
		return nil, errors.New("http server requires a dashboard")
	}
	if cfg.Logger == nil {
		return nil, errors.New("http server requires a logger")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestTracer(), requestLogger(cfg.Logger), requestTimeout(cfg.RequestTimeout))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{dash: cfg.Dashboard, logger: cfg.Logger}
	router.GET("/charts", h.charts)
	h.register(router.Group("/api"))

	return &Server{addr: cfg.Addr, router: router, logger: cfg.Logger}, nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Start serves until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": s.addr})

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		s.logger.Info(context.Background(), "HTTP server stopped")
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}
}

func requestTracer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := trace.StartSpan(c.Request.Context(), "HTTP "+c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"ip":       c.ClientIP(),
			"duration": time.Since(start).String(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields["query"] = q
		}
		logger.Debug(c.Request.Context(), "HTTP request", fields)
	}
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
