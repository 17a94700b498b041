package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/config"
	"github.com/etnz/cartera/renderer"
	"github.com/google/subcommands"
)

// updatePositions loads all the records, calls update on them and saves
// them back.
func updatePositions(cfg *config.Config, update func([]cartera.RawPosition) ([]cartera.RawPosition, error)) error {
	positions, err := cartera.LoadPositions(cfg.PositionsFile)
	if err != nil {
		return err
	}
	positions, err = update(positions)
	if err != nil {
		return err
	}
	return cartera.SavePositions(cfg.PositionsFile, positions)
}

type editCmd struct {
	recordFlags
	ticker string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a purchase record" }
func (*editCmd) Usage() string {
	return `cartera edit [-ticker <ticker>] [-t <type>] [-q <quantity>] [-p <price>] [-c <currency>] [-d <date>] [-n <name>] [-fav=<bool>] <id>

  Changes the fields of the record <id> given as flags, the other fields are
  kept. <id> can be any unambiguous prefix of the record id, as listed by
  'cartera positions'.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.recordFlags.SetFlags(f)
	f.StringVar(&c.ticker, "ticker", "", "Asset ticker")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit needs exactly one id")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	var edited cartera.RawPosition
	err = updatePositions(cfg, func(positions []cartera.RawPosition) ([]cartera.RawPosition, error) {
		i, err := cartera.FindPosition(positions, f.Arg(0))
		if err != nil {
			return nil, err
		}
		p := positions[i]
		if err := c.apply(f, &p); err != nil {
			return nil, err
		}
		if isSet(f, "ticker") {
			p.Ticker = strings.ToUpper(strings.TrimSpace(c.ticker))
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		positions[i] = p
		edited = p
		return positions, nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error editing position: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Updated %s %s\n", renderer.ShortID(edited.ID), edited.Ticker)
	return subcommands.ExitSuccess
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete purchase records" }
func (*removeCmd) Usage() string {
	return `cartera remove <id>...

  Deletes the records <id> from the positions file. <id> can be any
  unambiguous prefix of the record id.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (*removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: remove needs at least one id")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	var removed []string
	err = updatePositions(cfg, func(positions []cartera.RawPosition) ([]cartera.RawPosition, error) {
		for _, id := range f.Args() {
			i, err := cartera.FindPosition(positions, id)
			if err != nil {
				return nil, err
			}
			removed = append(removed, positions[i].Ticker)
			positions = append(positions[:i], positions[i+1:]...)
		}
		return positions, nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing position: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Removed %d position(s): %s\n", len(removed), strings.Join(removed, ", "))
	return subcommands.ExitSuccess
}

type favCmd struct{}

func (*favCmd) Name() string     { return "fav" }
func (*favCmd) Synopsis() string { return "toggle the favorite mark of purchase records" }
func (*favCmd) Usage() string {
	return `cartera fav <id>...

  Toggles the favorite mark of the records <id>. Favorite positions are
  always displayed first.
`
}

func (*favCmd) SetFlags(f *flag.FlagSet) {}

func (*favCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: fav needs at least one id")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	err = updatePositions(cfg, func(positions []cartera.RawPosition) ([]cartera.RawPosition, error) {
		for _, id := range f.Args() {
			i, err := cartera.FindPosition(positions, id)
			if err != nil {
				return nil, err
			}
			positions[i].Favorite = !positions[i].Favorite
			fmt.Fprintf(os.Stderr, "%s %s favorite: %v\n", renderer.ShortID(positions[i].ID), positions[i].Ticker, positions[i].Favorite)
		}
		return positions, nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error toggling favorite: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
