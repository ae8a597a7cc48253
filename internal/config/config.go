// Package config loads the application configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Store struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"store"`
	Sources struct {
		Browser struct {
			Enabled  bool   `yaml:"enabled"`
			PageURL  string `yaml:"page_url"`
			Headless *bool  `yaml:"headless"`
			SettleMS int    `yaml:"settle_ms"`
		} `yaml:"browser"`
		HTTP struct {
			Enabled  bool   `yaml:"enabled"`
			Endpoint string `yaml:"endpoint"`
		} `yaml:"http"`
		Stream struct {
			Enabled      bool   `yaml:"enabled"`
			Endpoint     string `yaml:"endpoint"`
			ReadWindowMS int    `yaml:"read_window_ms"`
			MaxMessages  int    `yaml:"max_messages"`
		} `yaml:"stream"`
		Spans []int `yaml:"spans"` // lookback spans in years
	} `yaml:"sources"`
	Aliases struct {
		Date       []string `yaml:"date"`
		Price      []string `yaml:"price"`
		Containers []string `yaml:"containers"`
	} `yaml:"aliases"`
	Database struct {
		PostgresDSN   string `yaml:"postgres_dsn"`
		ClickhouseDSN string `yaml:"clickhouse_dsn"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("EUA_CSV_PATH"); v != "" {
		cfg.Store.CSVPath = v
	}
	if v := os.Getenv("EUA_PAGE_URL"); v != "" {
		cfg.Sources.Browser.PageURL = v
		cfg.Sources.Browser.Enabled = true
	}
	if v := os.Getenv("EUA_HTTP_ENDPOINT"); v != "" {
		cfg.Sources.HTTP.Endpoint = v
		cfg.Sources.HTTP.Enabled = true
	}
	if v := os.Getenv("EUA_STREAM_ENDPOINT"); v != "" {
		cfg.Sources.Stream.Endpoint = v
		cfg.Sources.Stream.Enabled = true
	}
	if v := os.Getenv("EUA_SPANS"); v != "" {
		if spans, err := parseSpans(v); err == nil {
			cfg.Sources.Spans = spans
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		cfg.Database.ClickhouseDSN = v
	}
	if v := os.Getenv("EUA_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("EUA_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Store.CSVPath == "" {
		cfg.Store.CSVPath = "data/eua2_prices.csv"
	}
	if len(cfg.Sources.Spans) == 0 {
		cfg.Sources.Spans = []int{3, 1, 2, 5, 10}
	}
	if cfg.Sources.Browser.Headless == nil {
		headless := true
		cfg.Sources.Browser.Headless = &headless
	}
	if cfg.Sources.Browser.SettleMS == 0 {
		cfg.Sources.Browser.SettleMS = 5000
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 7 * * 2-6" // after daily settlement
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9190"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Store.CSVPath == "" {
		return fmt.Errorf("store.csv_path is required")
	}
	if c.Sources.Browser.Enabled && c.Sources.Browser.PageURL == "" {
		return fmt.Errorf("sources.browser.page_url is required when the browser source is enabled")
	}
	if c.Sources.HTTP.Enabled && c.Sources.HTTP.Endpoint == "" {
		return fmt.Errorf("sources.http.endpoint is required when the http source is enabled")
	}
	if c.Sources.Stream.Enabled && c.Sources.Stream.Endpoint == "" {
		return fmt.Errorf("sources.stream.endpoint is required when the stream source is enabled")
	}
	for _, span := range c.Sources.Spans {
		if span <= 0 {
			return fmt.Errorf("sources.spans must be positive years, got %d", span)
		}
	}
	return nil
}

// BrowserSettle returns the browser settle period as a duration.
func (c *Config) BrowserSettle() time.Duration {
	return time.Duration(c.Sources.Browser.SettleMS) * time.Millisecond
}

// StreamReadWindow returns the stream read window as a duration.
func (c *Config) StreamReadWindow() time.Duration {
	return time.Duration(c.Sources.Stream.ReadWindowMS) * time.Millisecond
}

// parseSpans parses a comma-separated span list like "3,1,2,5,10".
func parseSpans(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	spans := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse span %q: %w", p, err)
		}
		spans = append(spans, n)
	}
	return spans, nil
}
