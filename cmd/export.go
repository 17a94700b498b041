package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cartera"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	viewFlags
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the positions as CSV" }
func (*exportCmd) Usage() string {
	return `cartera export [-o <file>] [-merge] [-t <type>] [-q <text>]

  Writes the positions as CSV, sorted by purchase date, with the columns:
  Ticker, Nombre, Tipo, Cantidad, PPC, Moneda, Fecha de compra.

  The purchase price is the stored one, in its own currency. Individual
  purchases are exported unless -merge is set, merged positions report their
  average purchase price, which needs the CCL rate when purchases were made
  in different currencies.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.viewFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	// unlike reports, exports list purchases unless asked otherwise.
	opts.Merge = isSet(f, "merge") && c.merge

	positions, err := loadPositions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading positions: %v\n", err)
		return subcommands.ExitFailure
	}

	rate := cartera.NoRate
	if opts.Merge && !*offline {
		log := newLogger(cfg)
		rate, err = newFeedsClient(cfg, log).Rate(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("purchases in different currencies are averaged without conversion")
		}
	}
	e := cartera.Evaluate(positions, nil, rate, opts)

	var w io.Writer = stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := cartera.WriteCSV(w, e.Rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting positions: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Fprintf(os.Stderr, "Exported %d positions to %s\n", len(e.Rows), c.output)
	}
	return subcommands.ExitSuccess
}
