package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/runnerr0/browseiq/internal/analytics"
	"github.com/runnerr0/browseiq/internal/chart"
	"github.com/runnerr0/browseiq/internal/dashboard"
)

const (
	categoryChartTitle = "Browsing Categories"
	domainChartTitle   = "Top Domains"
)

// Execute implements the go-flags Commander interface for AnalyticsCommand.
func (c *AnalyticsCommand) Execute(args []string) error {
	cfg, logger, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client := analytics.NewClient(
		firstNonEmpty(c.Backend, cfg.Backend.BaseURL),
		cfg.Backend.RequestTimeout,
		logger,
	)
	return c.executeWithFetcher(context.Background(), client, firstPositive(c.Limit, cfg.Charts.DomainLimit))
}

// executeWithFetcher loads analytics through f and prints the view (for testing).
func (c *AnalyticsCommand) executeWithFetcher(ctx context.Context, f analytics.Fetcher, limit int) error {
	view := dashboard.Present(analytics.Load(ctx, f), limit)

	if wantJSON(c.globals) {
		return printJSON(view)
	}
	return printView(os.Stdout, view)
}

func printView(w io.Writer, view dashboard.View) error {
	if view.Banner != "" {
		fmt.Fprintf(w, "Warning: %s\n\n", view.Banner)
	}

	if view.Status != dashboard.StatusCharts {
		_, err := fmt.Fprintln(w, view.Message)
		return err
	}

	fmt.Fprintf(w, "Total visits: %s\n\n", formatNumber(int64(view.Visits)))

	if err := chart.RenderText(w, categoryChartTitle, view.Categories); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return chart.RenderText(w, domainChartTitle, view.Domains)
}
