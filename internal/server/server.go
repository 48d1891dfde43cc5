// Package server serves the analytics file over HTTP for the dashboard
// and the CLI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/logging"
)

const (
	AnalyticsRoute      = "/api/analytics"
	AnalyticsAliasRoute = "/api/browsing_analytics"

	errNotFound   = "Analytics data not found"
	errLoadFailed = "Failed to load analytics data"

	shutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	Host          string
	Port          int
	AnalyticsFile string
	Development   bool

	// RateLimit is per client IP; the zero value disables it.
	RateLimit RateLimit
}

// Server serves the analytics JSON file, a health check and metrics.
type Server struct {
	cfg     Config
	router  *gin.Engine
	metrics *Metrics
	logger  *zap.Logger
}

// New builds the router. It does not start listening.
func New(cfg Config, logger *zap.Logger) *Server {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		router:  gin.New(),
		metrics: NewMetrics(),
		logger:  logging.OrNop(logger),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.metrics.Middleware())
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:    []string{"Accept", "Content-Type", "Origin"},
		MaxAge:          12 * time.Hour,
	}))
	if cfg.RateLimit.Enabled() {
		s.router.Use(perClientLimiter(cfg.RateLimit))
	}

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", s.metrics.Handler())
	s.router.GET(AnalyticsRoute, s.analytics)
	s.router.GET(AnalyticsAliasRoute, s.analytics)

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run listens until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server",
			zap.String("addr", srv.Addr),
			zap.String("analytics_file", s.cfg.AnalyticsFile),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) analytics(c *gin.Context) {
	body, err := os.ReadFile(s.cfg.AnalyticsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.metrics.AnalyticsReads.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		s.logger.Error("read analytics file", zap.String("path", s.cfg.AnalyticsFile), zap.Error(err))
		s.metrics.AnalyticsReads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadFailed})
		return
	}

	if !json.Valid(body) {
		s.logger.Error("analytics file is not valid JSON", zap.String("path", s.cfg.AnalyticsFile))
		s.metrics.AnalyticsReads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadFailed})
		return
	}

	s.metrics.AnalyticsReads.WithLabelValues("ok").Inc()
	c.Data(http.StatusOK, "application/json", body)
}
