package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/feeds"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// recordFlags are the fields of a purchase record, shared by 'add' and 'edit'.
type recordFlags struct {
	typ      string
	name     string
	quantity string
	price    string
	currency string
	date     string
	favorite bool
}

func (r *recordFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.typ, "t", "", "Asset type (cripto, accion, cedear)")
	f.StringVar(&r.name, "n", "", "Asset name")
	f.StringVar(&r.quantity, "q", "", "Quantity bought. Whole number for stocks and CEDEARs")
	f.StringVar(&r.price, "p", "", "Purchase price per unit")
	f.StringVar(&r.currency, "c", "", "Currency of the purchase price (ARS or USD). Defaults to the market currency of the type")
	f.StringVar(&r.date, "d", "0d", "Purchase date. See the user manual for supported date formats")
	f.BoolVar(&r.favorite, "fav", false, "Mark the position as favorite")
}

// apply sets the fields of p from the flags set on f.
func (r *recordFlags) apply(f *flag.FlagSet, p *cartera.RawPosition) error {
	if isSet(f, "t") {
		t, err := cartera.ParseAssetType(r.typ)
		if err != nil {
			return err
		}
		p.Type = t
	}
	if isSet(f, "n") {
		p.Name = strings.TrimSpace(r.name)
	}
	if isSet(f, "q") {
		q, err := cartera.ParseQuantity(r.quantity)
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", r.quantity, err)
		}
		p.Quantity = q
	}
	cur := p.Cost.Currency()
	if isSet(f, "c") {
		c, err := cartera.ParseCurrency(r.currency)
		if err != nil {
			return err
		}
		cur = c
	}
	if cur == "" && p.Type.IsValid() {
		cur = p.Type.NativeCurrency()
	}
	amount := p.Cost.Decimal()
	if isSet(f, "p") {
		m, err := cartera.ParseMoney(r.price, cur)
		if err != nil {
			return err
		}
		amount = m.Decimal()
	}
	p.Cost = cartera.M(amount, cur)
	if isSet(f, "d") || p.Date.IsZero() {
		on, err := date.Parse(r.date)
		if err != nil {
			return err
		}
		p.Date = on
	}
	if isSet(f, "fav") {
		p.Favorite = r.favorite
	}
	return nil
}

type addCmd struct {
	recordFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a purchase" }
func (*addCmd) Usage() string {
	return `cartera add -t <type> -q <quantity> -p <price> [-c <currency>] [-d <date>] [-n <name>] [-fav] <ticker>

  Appends a purchase record to the positions file.

  When no name is given, the name listed by the market feed is used.

Usage Examples:
$ cartera add -t cripto -q 0.5 -p 20000 BTC
$ cartera add -t accion -q 10 -p 1500.5 -d 2024-03-01 GGAL
$ cartera add -t cedear -q 3 -p 5 -c USD AAPL
`
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: add needs exactly one ticker")
		return subcommands.ExitUsageError
	}
	for _, required := range []string{"t", "q", "p"} {
		if !isSet(f, required) {
			fmt.Fprintf(os.Stderr, "Error: -%s is required\n", required)
			return subcommands.ExitUsageError
		}
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	p := cartera.NewPosition(0, f.Arg(0), "", cartera.Quantity{}, cartera.Money{}, date.Date{})
	if err := c.apply(f, &p); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := p.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if p.Name == "" && !*offline {
		log := newLogger(cfg)
		p.Name = lookupName(ctx, newFeedsClient(cfg, log), p.Key(), log)
	}

	if err := cartera.AppendPosition(cfg.PositionsFile, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to positions file %q: %v\n", cfg.PositionsFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Recorded %s %s %s as %s in %s\n", p.Quantity, p.Ticker, p.Type, renderer.ShortID(p.ID), cfg.PositionsFile)
	return subcommands.ExitSuccess
}

// lookupName returns the name of k in the market feed, or "" if it cannot be
// found.
func lookupName(ctx context.Context, c *feeds.Client, k cartera.AssetKey, log zerolog.Logger) string {
	quotes, err := c.Fetch(ctx, k.Type)
	if err != nil {
		log.Warn().Err(err).Msg("cannot look the asset name up")
		return ""
	}
	for _, q := range quotes {
		if q.Key == k {
			return q.Name
		}
	}
	log.Warn().Stringer("asset", k).Msg("asset not listed by the market feed, it will stay pending")
	return ""
}
