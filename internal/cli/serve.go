package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/runnerr0/browseiq/internal/server"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, logger, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	srv := server.New(server.Config{
		Host:          firstNonEmpty(c.Host, cfg.Server.Host),
		Port:          firstPositive(c.Port, cfg.Server.Port),
		AnalyticsFile: firstNonEmpty(c.File, cfg.Server.AnalyticsFile),
		Development:   cfg.Logging.Development,
		RateLimit: server.RateLimit{
			RequestsPerSecond: cfg.Server.RateLimit.RequestsPerSecond,
			Burst:             cfg.Server.RateLimit.Burst,
		},
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
