package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/logging"
)

// AnalyticsPath is the backend endpoint serving the analytics snapshot.
const AnalyticsPath = "/api/browsing_analytics"

// Fetcher produces one analytics snapshot per call.
type Fetcher interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Client fetches analytics snapshots from the backend. Each Fetch is a
// single GET with no retry and no caching.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a Client for the backend at baseURL. Every request is
// bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{http: rc, logger: logging.OrNop(logger)}
}

// Fetch issues one GET against the analytics endpoint. On failure the
// returned error is a *FetchError carrying the failure kind.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	resp, err := c.http.R().SetContext(ctx).Get(AnalyticsPath)
	if err != nil {
		c.logger.Warn("analytics request failed", zap.Error(err))
		return nil, networkErr(fmt.Errorf("get %s: %w", AnalyticsPath, err))
	}

	if !resp.IsSuccess() {
		c.logger.Warn("analytics request rejected", zap.Int("status", resp.StatusCode()))
		return nil, networkErr(fmt.Errorf("get %s: unexpected status %d", AnalyticsPath, resp.StatusCode()))
	}

	snap, err := Decode(resp.Body())
	if err != nil {
		c.logger.Warn("analytics response malformed", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("analytics fetched",
		zap.Int("domains", len(snap.DomainFrequency)),
		zap.Int("categories", len(snap.CategoryBreakdown)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return snap, nil
}
