// Package config loads the cartera configuration file.
//
// The file is TOML, every key is optional:
//
//	positions_file   = "cartera.jsonl"
//	display_currency = "ARS"
//	merge            = true
//	sort             = "-value"
//	log_level        = "info"
//
//	[feeds]
//	coingecko_url = "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd"
//	cedears_url   = "https://api.cedears.ar"
//	dolar_url     = "https://dolarapi.com/v1/dolares"
//	timeout       = "10s"
//	interval      = "60s"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/etnz/cartera"
	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables overriding the configuration.
const (
	EnvConfig        = "CARTERA_CONFIG"
	EnvPositionsFile = "CARTERA_POSITIONS_FILE"
	EnvCurrency      = "CARTERA_CURRENCY"
	EnvLogLevel      = "CARTERA_LOG_LEVEL"
)

// DefaultFile is the configuration file used when none is given.
const DefaultFile = "cartera.toml"

// Config holds the cartera configuration.
type Config struct {
	PositionsFile   string `toml:"positions_file"`
	DisplayCurrency string `toml:"display_currency"`
	Merge           bool   `toml:"merge"`
	Sort            string `toml:"sort"`
	LogLevel        string `toml:"log_level"`
	Feeds           Feeds  `toml:"feeds"`
}

// Feeds configures the price and rate feeds.
type Feeds struct {
	CoinGeckoURL string `toml:"coingecko_url"`
	CedearsURL   string `toml:"cedears_url"`
	DolarURL     string `toml:"dolar_url"`
	Timeout      string `toml:"timeout"`
	Interval     string `toml:"interval"`
}

// GetTimeout returns the per request timeout, 10s when unset or invalid.
func (f Feeds) GetTimeout() time.Duration { return duration(f.Timeout, 10*time.Second) }

// GetInterval returns the polling interval, 60s when unset or invalid.
func (f Feeds) GetInterval() time.Duration { return duration(f.Interval, 60*time.Second) }

func duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PositionsFile:   "cartera.jsonl",
		DisplayCurrency: string(cartera.ARS),
		Merge:           true,
		Sort:            cartera.ValueDesc.String(),
		LogLevel:        "info",
		Feeds: Feeds{
			CoinGeckoURL: "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd",
			CedearsURL:   "https://api.cedears.ar",
			DolarURL:     "https://dolarapi.com/v1/dolares",
			Timeout:      "10s",
			Interval:     "60s",
		},
	}
}

// Load reads the configuration file path over the defaults, then applies the
// environment overrides. An empty path means the CARTERA_CONFIG variable, or
// DefaultFile. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultFile
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPositionsFile); v != "" {
		cfg.PositionsFile = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.DisplayCurrency = strings.ToUpper(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the values that are parsed later on.
func (c *Config) Validate() error {
	var errs []error
	if _, err := cartera.ParseCurrency(c.DisplayCurrency); err != nil {
		errs = append(errs, fmt.Errorf("display_currency: %w", err))
	}
	if _, err := cartera.ParseSortMode(c.Sort); err != nil {
		errs = append(errs, fmt.Errorf("sort: %w", err))
	}
	if c.PositionsFile == "" {
		errs = append(errs, errors.New("positions_file: must not be empty"))
	}
	return errors.Join(errs...)
}

// Options returns the evaluation options configured.
func (c *Config) Options() cartera.Options {
	opts := cartera.DefaultOptions()
	if cur, err := cartera.ParseCurrency(c.DisplayCurrency); err == nil {
		opts.Display = cur
	}
	if mode, err := cartera.ParseSortMode(c.Sort); err == nil {
		opts.Sort = mode
	}
	opts.Merge = c.Merge
	return opts
}
