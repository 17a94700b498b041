package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/config"
)

// viewFlags are the evaluation flags shared by the report commands.
type viewFlags struct {
	currency string
	merge    bool
	sort     string
	typ      string
	search   string
}

func (v *viewFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&v.currency, "c", "", "Display currency (ARS or USD). Defaults to the configuration")
	f.BoolVar(&v.merge, "merge", true, "Merge the purchases of the same asset into one position. Defaults to the configuration")
	f.StringVar(&v.sort, "s", "", "Sort order: "+strings.Join(cartera.SortModes(), ", ")+". Defaults to the configuration")
	f.StringVar(&v.typ, "t", "", "Only show one asset type (cripto, accion, cedear)")
	f.StringVar(&v.search, "q", "", "Only show positions whose ticker or name contains this text")
}

// options returns the evaluation options: the flags set on f override the
// configuration.
func (v *viewFlags) options(f *flag.FlagSet, cfg *config.Config) (cartera.Options, error) {
	opts := cfg.Options()
	if v.currency != "" {
		cur, err := cartera.ParseCurrency(v.currency)
		if err != nil {
			return opts, err
		}
		opts.Display = cur
	}
	if isSet(f, "merge") {
		opts.Merge = v.merge
	}
	if v.sort != "" {
		mode, err := cartera.ParseSortMode(v.sort)
		if err != nil {
			return opts, err
		}
		opts.Sort = mode
	}
	if v.typ != "" {
		t, err := cartera.ParseAssetType(v.typ)
		if err != nil {
			return opts, err
		}
		opts.Filter.Type = t
	}
	opts.Filter.Search = v.search
	return opts, nil
}

// isSet reports whether the flag name was set on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
