package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/oceantrends/pkg/visualize"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "OCEAN"

// Config drives one pipeline run and the consumer that renders it.
type Config struct {
	TideStation string  `split_words:"true" default:"9410230"`
	WaveStation string  `split_words:"true" default:"46225"`
	Latitude    float64 `default:"32.9211"`
	Longitude   float64 `default:"-117.2526"`
	Days        int     `default:"7"`
	Timezone    string  `default:"America/Los_Angeles"`

	Tolerance time.Duration `default:"1h"`
	SpikeK    float64       `split_words:"true" default:"2.0"`

	RequestTimeout time.Duration `split_words:"true" default:"30s"`
	Retries        int           `default:"2"`
	RetryBackoff   time.Duration `split_words:"true" default:"1s"`

	Consumer      string `default:"trends"`
	AdvisoryStart string `split_words:"true"`
	AdvisoryEnd   string `split_words:"true"`

	// Server mode only.
	Port     string        `default:"8080"`
	Prefix   string        `default:"/"`
	CacheTTL time.Duration `split_words:"true" default:"1h"`
	// SecureCookies marks session cookies HTTPS-only. Turn it off when
	// serving plain HTTP without a TLS terminating proxy in front.
	SecureCookies bool `split_words:"true" default:"true"`
}

// ConfigFromEnv reads and validates a Config from OCEAN_* variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := ProcessEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ProcessEnv fills cfg from the environment and defaults without validating,
// so command line flags can still override it.
func ProcessEnv(cfg *Config) error {
	return envconfig.Process(EnvPrefix, cfg)
}

// DefaultConfig returns a Config with every default applied, ignoring the
// environment.
func DefaultConfig() Config {
	return Config{
		TideStation:    "9410230",
		WaveStation:    "46225",
		Latitude:       32.9211,
		Longitude:      -117.2526,
		Days:           7,
		Timezone:       "America/Los_Angeles",
		Tolerance:      time.Hour,
		SpikeK:         2.0,
		RequestTimeout: 30 * time.Second,
		Retries:        2,
		RetryBackoff:   time.Second,
		Consumer:       Trends,
		Port:           "8080",
		Prefix:         "/",
		CacheTTL:       time.Hour,
		SecureCookies:  true,
	}
}

func (c Config) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1, got %d", c.Days)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %s", c.Tolerance)
	}
	if c.SpikeK < 0 {
		return fmt.Errorf("spike multiplier must not be negative, got %v", c.SpikeK)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if !KnownConsumer(c.Consumer) {
		return fmt.Errorf("unknown consumer %q, want one of %v", c.Consumer, Consumers)
	}
	if !strings.HasPrefix(c.Prefix, "/") {
		return fmt.Errorf("prefix must start with /, got %q", c.Prefix)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.AdvisoryWindow(); err != nil {
		return err
	}
	return nil
}

// Location loads the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("bad timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AdvisoryWindow parses the advisory bounds. It returns nil when neither is
// set; a lone bound is an error.
func (c Config) AdvisoryWindow() (*visualize.Window, error) {
	if c.AdvisoryStart == "" && c.AdvisoryEnd == "" {
		return nil, nil
	}
	if c.AdvisoryStart == "" || c.AdvisoryEnd == "" {
		return nil, fmt.Errorf("advisory window needs both start and end")
	}
	start, err := time.Parse(time.RFC3339, c.AdvisoryStart)
	if err != nil {
		return nil, fmt.Errorf("bad advisory start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, c.AdvisoryEnd)
	if err != nil {
		return nil, fmt.Errorf("bad advisory end: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("advisory window ends (%s) before it starts (%s)", c.AdvisoryEnd, c.AdvisoryStart)
	}
	return &visualize.Window{Start: start, End: end}, nil
}
