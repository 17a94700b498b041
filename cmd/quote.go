package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/feeds"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct {
	typ string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display current market prices and the CCL rate" }
func (*quoteCmd) Usage() string {
	return `cartera quote [-t <type>] [<ticker>...]

  Fetches and displays the current market price of the given tickers, or of
  every listed asset when none is given, and the CCL rate.

Usage Examples:
$ cartera quote BTC GGAL
$ cartera quote -t cedear
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "t", "", "Only display one asset type (cripto, accion, cedear)")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	var t cartera.AssetType
	if c.typ != "" {
		if t, err = cartera.ParseAssetType(c.typ); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing type: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if *offline {
		fmt.Fprintln(os.Stderr, "Error: quote cannot run -offline")
		return subcommands.ExitUsageError
	}

	log := newLogger(cfg)
	client := newFeedsClient(cfg, log)
	quotes, err := client.Quotes(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("some quotes are missing")
	}
	rate, err := client.Rate(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("the CCL rate is missing")
	}
	printMarkdown(renderer.QuotesMarkdown(rate, selectQuotes(quotes, t, f.Args())))
	return subcommands.ExitSuccess
}

// selectQuotes returns the quotes of type t (any when zero) whose ticker is
// one of tickers (any when empty).
func selectQuotes(quotes []feeds.Quote, t cartera.AssetType, tickers []string) []feeds.Quote {
	wanted := make(map[string]bool, len(tickers))
	for _, ticker := range tickers {
		wanted[strings.ToUpper(strings.TrimSpace(ticker))] = true
	}
	var res []feeds.Quote
	for _, q := range quotes {
		if t != 0 && q.Key.Type != t {
			continue
		}
		if len(wanted) > 0 && !wanted[q.Key.Ticker] {
			continue
		}
		res = append(res, q)
	}
	return res
}
