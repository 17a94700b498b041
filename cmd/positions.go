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

type positionsCmd struct {
	typ    string
	search string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list the purchase records" }
func (*positionsCmd) Usage() string {
	return `cartera positions [-t <type>] [-q <text>]

  Lists the purchase records as stored, in file order, with the short id used
  to select them in 'edit', 'remove' and 'fav'. Invalid records are reported.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "", "Only list one asset type (cripto, accion, cedear)")
	f.StringVar(&c.search, "q", "", "Only list records whose ticker or name contains this text")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	filter := cartera.Filter{Search: c.search}
	if c.typ != "" {
		filter.Type, err = cartera.ParseAssetType(c.typ)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing type: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	// list all records, even invalid ones, so that they can be fixed.
	positions, err := cartera.LoadPositions(cfg.PositionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := cartera.SplitValid(positions); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	printMarkdown(renderer.PositionsMarkdown(filter.Apply(positions)))
	return subcommands.ExitSuccess
}
