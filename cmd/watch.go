package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/feeds"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	viewFlags
	interval time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh the holdings on a regular basis" }
func (*watchCmd) Usage() string {
	return `cartera watch [-i <interval>] [-c <currency>] [-merge=false] [-s <sort>] [-t <type>] [-q <text>]

  Displays the holdings like 'cartera holding', and displays them again each
  time market prices are refreshed, until interrupted.

  The positions file is read again on each refresh, so that changes made
  with the other commands are displayed.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.viewFlags.SetFlags(f)
	f.DurationVar(&c.interval, "i", 0, "Refresh interval. Defaults to the configuration")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	opts, err := c.options(f, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return subcommands.ExitUsageError
	}
	if *offline {
		fmt.Fprintln(os.Stderr, "Error: watch needs market prices, it cannot run -offline")
		return subcommands.ExitUsageError
	}
	interval := c.interval
	if interval <= 0 {
		interval = cfg.Feeds.GetInterval()
	}

	log := newLogger(cfg)
	var book cartera.PriceBook
	poller := &feeds.Poller{
		Client:   newFeedsClient(cfg, log),
		Book:     &book,
		Interval: interval,
		Log:      log,
		OnUpdate: func(s *cartera.Snapshot) {
			positions, err := loadPositions(cfg)
			if err != nil {
				log.Error().Err(err).Str("file", cfg.PositionsFile).Msg("cannot load positions")
				return
			}
			printMarkdown(renderer.SnapshotHoldingsMarkdown(cartera.Evaluate(positions, s.Prices, s.Rate, opts), s))
		},
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error watching prices: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
