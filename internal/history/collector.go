// Package history collects recent browsing history with its visit records
// and submits it to the ingestion endpoint as one batch.
package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/browseiq/internal/logging"
	"github.com/runnerr0/browseiq/internal/storage"
)

// IngestPath is the endpoint that receives history batches.
const IngestPath = "/api/history"

const (
	DefaultWindowDays  = 7
	DefaultMaxResults  = 10000
	DefaultConcurrency = 8
)

// Visit is one visit to a URL.
type Visit struct {
	ID               string  `json:"id"`
	VisitID          string  `json:"visitId"`
	VisitTime        float64 `json:"visitTime"`
	ReferringVisitID string  `json:"referringVisitId"`
	Transition       string  `json:"transition"`
}

// Entry is one URL with its visits. Times are milliseconds since the Unix
// epoch.
type Entry struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	VisitCount    int64   `json:"visitCount"`
	LastVisitTime float64 `json:"lastVisitTime"`
	Visits        []Visit `json:"visits"`
}

// Options bounds a collection run.
type Options struct {
	WindowDays  int
	MaxResults  int
	Concurrency int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Collector reads history from a HistoryStore and posts it to the
// ingestion endpoint.
type Collector struct {
	store  storage.HistoryStore
	http   *resty.Client
	opts   Options
	logger *zap.Logger
}

// NewCollector creates a Collector that reads from store and submits to
// ingestURL.
func NewCollector(store storage.HistoryStore, ingestURL string, timeout time.Duration, opts Options, logger *zap.Logger) *Collector {
	rc := resty.New().
		SetBaseURL(ingestURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json")

	return &Collector{
		store:  store,
		http:   rc,
		opts:   opts.withDefaults(),
		logger: logging.OrNop(logger),
	}
}

// Collect returns every URL visited inside the window, newest first, each
// with its visits attached. Visit lookups run concurrently; the batch is
// returned only once all of them have finished.
func (c *Collector) Collect(ctx context.Context) ([]Entry, error) {
	start := c.opts.Now().AddDate(0, 0, -c.opts.WindowDays)

	rows, err := c.store.RecentURLs(ctx, storage.ToWebKit(start), c.opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("list recent history: %w", err)
	}

	entries := make([]Entry, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			visits, err := c.store.Visits(gctx, row.ID)
			if err != nil {
				return err
			}
			entries[i] = newEntry(row, visits)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load visits: %w", err)
	}

	fields := []zap.Field{zap.Int("urls", len(entries)), zap.Time("since", start)}
	if len(rows) > 0 {
		fields = append(fields, zap.Time("newest", rows[0].LastVisit()))
	}
	c.logger.Debug("collected history", fields...)
	return entries, nil
}

func newEntry(row storage.URLRow, visits []storage.VisitRow) Entry {
	e := Entry{
		URL:           row.URL,
		Title:         row.Title,
		VisitCount:    row.VisitCount,
		LastVisitTime: storage.WebKitToUnixMillis(row.LastVisitTime),
		Visits:        make([]Visit, 0, len(visits)),
	}
	for _, v := range visits {
		e.Visits = append(e.Visits, Visit{
			ID:               strconv.FormatInt(v.URLID, 10),
			VisitID:          strconv.FormatInt(v.ID, 10),
			VisitTime:        storage.WebKitToUnixMillis(v.VisitTime),
			ReferringVisitID: strconv.FormatInt(v.FromVisit, 10),
			Transition:       storage.TransitionName(v.Transition),
		})
	}
	return e
}

// Submit posts batch to the ingestion endpoint once. It returns the
// request id sent in the X-Request-ID header.
func (c *Collector) Submit(ctx context.Context, batch []Entry) (string, error) {
	if batch == nil {
		batch = []Entry{}
	}
	requestID := uuid.New().String()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetBody(batch).
		Post(IngestPath)
	if err != nil {
		return requestID, fmt.Errorf("post %s: %w", IngestPath, err)
	}
	if !resp.IsSuccess() {
		return requestID, fmt.Errorf("post %s: unexpected status %d", IngestPath, resp.StatusCode())
	}

	c.logger.Info("submitted history batch",
		zap.String("request_id", requestID),
		zap.Int("entries", len(batch)),
	)
	return requestID, nil
}
