package config

import "time"

// DefaultRequestTimeout bounds every backend request.
const DefaultRequestTimeout = 10 * time.Second

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8001",
			RequestTimeout: DefaultRequestTimeout,
		},
		Ingest: IngestConfig{
			BaseURL: "http://localhost:5000",
		},
		History: HistoryConfig{
			Profile:     DefaultHistoryPath(),
			WindowDays:  7,
			MaxResults:  10000,
			Concurrency: 8,
		},
		Charts: ChartsConfig{
			DomainLimit: 8,
			Width:       640,
			Height:      480,
		},
		Server: ServerConfig{
			Host:          "127.0.0.1",
			Port:          8001,
			AnalyticsFile: "data/browsing_analytics.json",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 20,
				Burst:             40,
			},
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
		},
	}
}
