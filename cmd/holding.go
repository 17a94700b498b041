package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	viewFlags
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the positions valued at current market prices" }
func (*holdingCmd) Usage() string {
	return `cartera holding [-c <currency>] [-merge=false] [-s <sort>] [-t <type>] [-q <text>]

  Fetches current market prices and the CCL rate, and displays every position
  with its cost, value, gain and share of the portfolio, and the totals.

  Positions without market price are displayed as pending and left out of
  the total value.
`
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	positions, err := loadPositions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}

	log := newLogger(cfg)
	var book cartera.PriceBook
	book.Store(fetchSnapshot(ctx, cfg, log))

	printMarkdown(renderer.SnapshotHoldingsMarkdown(book.Evaluate(positions, opts), book.Load()))
	return subcommands.ExitSuccess
}
