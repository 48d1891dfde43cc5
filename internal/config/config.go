package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/browseiq/config.yaml"

// EnvPrefix is the prefix for environment overrides (BROWSEIQ_BACKEND_URL, ...).
const EnvPrefix = "BROWSEIQ"

// Config holds all BrowseIQ configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Ingest  IngestConfig  `yaml:"ingest"`
	History HistoryConfig `yaml:"history"`
	Charts  ChartsConfig  `yaml:"charts"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type BackendConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type IngestConfig struct {
	BaseURL string `yaml:"base_url"`
}

type HistoryConfig struct {
	Profile     string `yaml:"profile"`
	WindowDays  int    `yaml:"window_days"`
	MaxResults  int    `yaml:"max_results"`
	Concurrency int    `yaml:"concurrency"`
}

type ChartsConfig struct {
	DomainLimit int `yaml:"domain_limit"`
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
}

type ServerConfig struct {
	Host          string          `yaml:"host"`
	Port          int             `yaml:"port"`
	AnalyticsFile string          `yaml:"analytics_file"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds requests per client IP. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// envOverrides lists the settings that may be overridden from the
// environment. Pointers distinguish "unset" from zero values.
type envOverrides struct {
	BackendURL     *string        `envconfig:"BACKEND_URL"`
	RequestTimeout *time.Duration `envconfig:"REQUEST_TIMEOUT"`
	IngestURL      *string        `envconfig:"INGEST_URL"`
	HistoryProfile *string        `envconfig:"HISTORY_PROFILE"`
	ServerPort     *int           `envconfig:"SERVER_PORT"`
	AnalyticsFile  *string        `envconfig:"ANALYTICS_FILE"`
	LogLevel       *string        `envconfig:"LOG_LEVEL"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv loads an optional .env file from the working directory and then
// applies BROWSEIQ_* environment overrides on top of cfg.
func ApplyEnv(cfg *Config) error {
	// A missing .env is the common case.
	_ = godotenv.Load(".env")

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	if env.BackendURL != nil {
		cfg.Backend.BaseURL = *env.BackendURL
	}
	if env.RequestTimeout != nil {
		cfg.Backend.RequestTimeout = *env.RequestTimeout
	}
	if env.IngestURL != nil {
		cfg.Ingest.BaseURL = *env.IngestURL
	}
	if env.HistoryProfile != nil {
		cfg.History.Profile = *env.HistoryProfile
	}
	if env.ServerPort != nil {
		cfg.Server.Port = *env.ServerPort
	}
	if env.AnalyticsFile != nil {
		cfg.Server.AnalyticsFile = *env.AnalyticsFile
	}
	if env.LogLevel != nil {
		cfg.Logging.Level = *env.LogLevel
	}

	return nil
}

// Validate rejects settings that would make a component misbehave.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"backend.base_url": c.Backend.BaseURL,
		"ingest.base_url":  c.Ingest.BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}
	if c.Backend.RequestTimeout <= 0 {
		return fmt.Errorf("backend.request_timeout must be positive")
	}
	if c.History.WindowDays <= 0 {
		return fmt.Errorf("history.window_days must be positive")
	}
	if c.History.MaxResults <= 0 {
		return fmt.Errorf("history.max_results must be positive")
	}
	if c.History.Concurrency <= 0 {
		return fmt.Errorf("history.concurrency must be positive")
	}
	if c.Charts.DomainLimit <= 0 {
		return fmt.Errorf("charts.domain_limit must be positive")
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// Resolve loads the config used by a command run: the explicit path if one
// was given, otherwise the default path (created on first use). Environment
// overrides are applied last and the result is validated.
func Resolve(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = LoadOrCreate()
	}
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
