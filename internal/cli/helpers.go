package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/runnerr0/browseiq/internal/config"
	"github.com/runnerr0/browseiq/internal/logging"
)

// loadEnv resolves the config for this run and builds the logger.
// --verbose forces debug logging.
func loadEnv(globals *GlobalFlags) (*config.Config, *zap.Logger, error) {
	path := ""
	verbose := false
	if globals != nil {
		path = globals.Config
		verbose = globals.Verbose
	}

	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: cfg.Logging.Development})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, logger, nil
}

// firstNonEmpty returns override unless it is empty.
func firstNonEmpty(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// firstPositive returns override unless it is not positive.
func firstPositive(override, fallback int) int {
	if override > 0 {
		return override
	}
	return fallback
}

func wantJSON(globals *GlobalFlags) bool {
	return globals != nil && globals.JSON
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
