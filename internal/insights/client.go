// Package insights queries per-date browsing insights and tracks the
// state of the date panel.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/logging"
)

// QueryPath is the backend endpoint answering per-date queries.
const QueryPath = "/api/query_history_by_date"

// DateLayout is the wire format of a selected date.
const DateLayout = "2006-01-02"

// FormatDate renders the calendar date of t in t's own location. The
// time of day is dropped.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// Querier answers an insights query for one date.
type Querier interface {
	QueryByDate(ctx context.Context, date time.Time) (string, error)
}

type queryRequest struct {
	Date string `json:"date"`
}

type queryResponse struct {
	Result string `json:"result"`
}

// Client posts date queries to the backend.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{http: rc, logger: logging.OrNop(logger)}
}

// QueryByDate sends one POST for date and returns the result text, which
// may be empty.
func (c *Client) QueryByDate(ctx context.Context, date time.Time) (string, error) {
	day := FormatDate(date)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(queryRequest{Date: day}).
		Post(QueryPath)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", QueryPath, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("post %s: unexpected status %d", QueryPath, resp.StatusCode())
	}

	var out queryResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode insights response: %w", err)
	}

	c.logger.Debug("fetched insights", zap.String("date", day), zap.Int("length", len(out.Result)))
	return out.Result, nil
}
