package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/insights"
)

type insightsJSON struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Text   string `json:"text"`
}

// Execute implements the go-flags Commander interface for InsightsCommand.
func (c *InsightsCommand) Execute(args []string) error {
	cfg, logger, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	client := insights.NewClient(
		firstNonEmpty(c.Backend, cfg.Backend.BaseURL),
		cfg.Backend.RequestTimeout,
		logger,
	)
	return c.executeWithQuerier(context.Background(), client, logger)
}

// executeWithQuerier runs one date selection against q (for testing).
func (c *InsightsCommand) executeWithQuerier(ctx context.Context, q insights.Querier, logger *zap.Logger) error {
	date := time.Now()
	if c.Date != "" {
		d, err := insights.ParseDate(c.Date, time.Local)
		if err != nil {
			return err
		}
		date = d
	}

	panel := insights.NewPanel(q, logger)
	st := panel.Select(ctx, date)

	if wantJSON(c.globals) {
		return printJSON(insightsJSON{
			Date:   insights.FormatDate(st.Date),
			Status: st.Phase.String(),
			Text:   st.Text,
		})
	}

	fmt.Printf("Insights for %s\n\n%s\n", insights.FormatDate(st.Date), st.Text)
	return nil
}
