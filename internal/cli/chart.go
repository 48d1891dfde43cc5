package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/runnerr0/browseiq/internal/analytics"
	"github.com/runnerr0/browseiq/internal/chart"
	"github.com/runnerr0/browseiq/internal/dashboard"
)

// chartSize is the rendered image size in pixels.
type chartSize struct {
	Width, Height int
}

// Execute implements the go-flags Commander interface for ChartCommand.
func (c *ChartCommand) Execute(args []string) error {
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
	size := chartSize{
		Width:  firstPositive(c.Width, cfg.Charts.Width),
		Height: firstPositive(c.Height, cfg.Charts.Height),
	}
	return c.executeWithFetcher(context.Background(), client, firstPositive(c.Limit, cfg.Charts.DomainLimit), size)
}

// executeWithFetcher renders the selected chart from f's snapshot (for testing).
func (c *ChartCommand) executeWithFetcher(ctx context.Context, f analytics.Fetcher, limit int, size chartSize) error {
	if c.Output == "" {
		return fmt.Errorf("--output is required")
	}
	format, err := chart.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	view := dashboard.Present(analytics.Load(ctx, f), limit)
	if view.Banner != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", view.Banner)
	}
	if view.Status != dashboard.StatusCharts {
		fmt.Println(view.Message)
		return nil
	}

	title, points := categoryChartTitle, view.Categories
	if c.Kind == "domain" {
		title, points = domainChartTitle, view.Domains
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.Output, err)
	}

	renderErr := chart.RenderImage(out, format, title, size.Width, size.Height, points)
	closeErr := out.Close()
	if renderErr != nil {
		os.Remove(c.Output)
		if errors.Is(renderErr, chart.ErrEmptySeries) {
			fmt.Println(dashboard.NoDataMessage)
			return nil
		}
		return renderErr
	}
	if closeErr != nil {
		return fmt.Errorf("write %s: %w", c.Output, closeErr)
	}

	fmt.Printf("Wrote %s chart (%d slices) to %s\n", c.Kind, len(points), c.Output)
	return nil
}
