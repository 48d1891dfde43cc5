package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/config"
	"github.com/runnerr0/browseiq/internal/history"
	"github.com/runnerr0/browseiq/internal/storage"
)

type collectJSON struct {
	URLs      int             `json:"urls"`
	Visits    int             `json:"visits"`
	Days      int             `json:"days"`
	Submitted bool            `json:"submitted"`
	RequestID string          `json:"request_id,omitempty"`
	Batch     []history.Entry `json:"batch,omitempty"`
}

// Execute implements the go-flags Commander interface for CollectCommand.
func (c *CollectCommand) Execute(args []string) error {
	cfg, logger, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	profile, err := config.ExpandPath(firstNonEmpty(c.Profile, cfg.History.Profile))
	if err != nil {
		return err
	}

	store, err := storage.OpenHistory(profile)
	if err != nil {
		return err
	}
	defer store.Close()

	return c.executeWithStore(context.Background(), store, cfg, logger)
}

// executeWithStore collects from store and submits the batch (for testing).
func (c *CollectCommand) executeWithStore(ctx context.Context, store storage.HistoryStore, cfg *config.Config, logger *zap.Logger) error {
	days := firstPositive(c.Days, cfg.History.WindowDays)
	collector := history.NewCollector(
		store,
		firstNonEmpty(c.Ingest, cfg.Ingest.BaseURL),
		cfg.Backend.RequestTimeout,
		history.Options{
			WindowDays:  days,
			MaxResults:  firstPositive(c.MaxResults, cfg.History.MaxResults),
			Concurrency: cfg.History.Concurrency,
		},
		logger,
	)

	batch, err := collector.Collect(ctx)
	if err != nil {
		return err
	}

	out := collectJSON{URLs: len(batch), Days: days}
	for _, e := range batch {
		out.Visits += len(e.Visits)
	}

	if !c.DryRun {
		id, err := collector.Submit(ctx, batch)
		if err != nil {
			return fmt.Errorf("submit history: %w", err)
		}
		out.Submitted = true
		out.RequestID = id
	} else {
		out.Batch = batch
	}

	if wantJSON(c.globals) {
		return printJSON(out)
	}

	fmt.Printf("Collected %s URLs (%s visits) from the last %d days\n",
		formatNumber(int64(out.URLs)), formatNumber(int64(out.Visits)), days)
	if out.Submitted {
		fmt.Printf("Submitted batch %s\n", out.RequestID)
	} else {
		fmt.Println("Dry run: batch not submitted")
	}
	return nil
}
