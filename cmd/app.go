// Package cmd implements the CLI application to manage a cartera.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cartera"
	"github.com/etnz/cartera/config"
	"github.com/etnz/cartera/feeds"
	"github.com/etnz/cartera/logging"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&holdingCmd{}, "report")
	c.Register(&watchCmd{}, "report")
	c.Register(&exportCmd{}, "report")

	c.Register(&positionsCmd{}, "positions")
	c.Register(&addCmd{}, "positions")
	c.Register(&editCmd{}, "positions")
	c.Register(&removeCmd{}, "positions")
	c.Register(&favCmd{}, "positions")

	c.Register(&quoteCmd{}, "market")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (TOML). Defaults to $"+config.EnvConfig+" or "+config.DefaultFile)
var positionsFile = flag.String("positions", "", "Path to the positions file (JSONL format). Overrides the configuration")
var offline = flag.Bool("offline", false, "Do not fetch market prices, all positions are pending")

// Verbose enables debug logging.
var Verbose = flag.Bool("v", false, "Verbose output")

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// loadConfig loads the configuration with the global flags applied.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *positionsFile != "" {
		cfg.PositionsFile = *positionsFile
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger returns the logger configured, writing to stderr.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(cfg.LogLevel, os.Stderr)
}

// newFeedsClient returns a feeds client on the configured endpoints.
func newFeedsClient(cfg *config.Config, log zerolog.Logger) *feeds.Client {
	c := feeds.NewClient(cfg.Feeds.GetTimeout(), log)
	if cfg.Feeds.CoinGeckoURL != "" {
		c.CoinGeckoURL = cfg.Feeds.CoinGeckoURL
	}
	if cfg.Feeds.CedearsURL != "" {
		c.CedearsURL = cfg.Feeds.CedearsURL
	}
	if cfg.Feeds.DolarURL != "" {
		c.DolarURL = cfg.Feeds.DolarURL
	}
	return c
}

// fetchSnapshot fetches the market snapshot, unless offline. Feed errors are
// logged, the snapshot holds what could be fetched.
func fetchSnapshot(ctx context.Context, cfg *config.Config, log zerolog.Logger) *cartera.Snapshot {
	if *offline {
		return &cartera.Snapshot{Prices: cartera.PriceTable{}}
	}
	s, err := newFeedsClient(cfg, log).Snapshot(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("some market data is missing")
	}
	return s
}

// loadPositions reads the records of the positions file. Invalid records
// are reported on stderr and left out.
func loadPositions(cfg *config.Config) ([]cartera.RawPosition, error) {
	positions, err := cartera.LoadPositions(cfg.PositionsFile)
	if err != nil {
		return nil, err
	}
	valid, err := cartera.SplitValid(positions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return valid, nil
}

// printMarkdown renders md for the terminal, or prints it as is when stdout
// is not a terminal.
func printMarkdown(md string) {
	if f, ok := stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out, err := glamour.Render(md, "auto")
		if err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}
