package cartera

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the secondary ordering of rows. Favorites always come first.
type SortMode int

const (
	ValueDesc SortMode = iota // default
	ValueAsc
	TickerAsc
	TickerDesc
	GainPercentAsc
	GainPercentDesc
	GainAbsoluteAsc
	GainAbsoluteDesc
	DateAsc
	DateDesc
)

var sortModeNames = map[SortMode]string{
	ValueDesc:        "-value",
	ValueAsc:         "value",
	TickerAsc:        "ticker",
	TickerDesc:       "-ticker",
	GainPercentAsc:   "gain%",
	GainPercentDesc:  "-gain%",
	GainAbsoluteAsc:  "gain",
	GainAbsoluteDesc: "-gain",
	DateAsc:          "date",
	DateDesc:         "-date",
}

// SortModes lists all the sort modes names.
func SortModes() []string {
	names := make([]string, 0, len(sortModeNames))
	for m := ValueDesc; m <= DateDesc; m++ {
		names = append(names, sortModeNames[m])
	}
	return names
}

func (m SortMode) String() string {
	if s, ok := sortModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseSortMode parses a sort mode name. A leading "-" means descending.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range sortModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q, want one of %s", ErrUnknownSortMode, s, strings.Join(SortModes(), ", "))
}

// SortRows sorts rows in place: favorites first, then by mode. The sort is
// stable, rows that compare equal keep their relative order.
func SortRows(rows []Row, mode SortMode) {
	// a collator is not safe for concurrent use.
	col := collate.New(language.Spanish)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Favorite != b.Favorite {
			return a.Favorite
		}
		return compareRows(col, a, b, mode) < 0
	})
}

// compareRows compares a and b on the key selected by mode. Pending rows have
// zero gain and value.
func compareRows(col *collate.Collator, a, b *Row, mode SortMode) int {
	switch mode {
	case TickerAsc:
		return col.CompareString(a.Ticker(), b.Ticker())
	case TickerDesc:
		return col.CompareString(b.Ticker(), a.Ticker())
	case GainPercentAsc:
		return comparePercent(a.ChangePercent, b.ChangePercent)
	case GainPercentDesc:
		return comparePercent(b.ChangePercent, a.ChangePercent)
	case GainAbsoluteAsc:
		return a.Change.value.Cmp(b.Change.value)
	case GainAbsoluteDesc:
		return b.Change.value.Cmp(a.Change.value)
	case ValueAsc:
		return a.Value.value.Cmp(b.Value.value)
	case ValueDesc:
		return b.Value.value.Cmp(a.Value.value)
	case DateAsc:
		return a.Date.Compare(b.Date)
	case DateDesc:
		return b.Date.Compare(a.Date)
	}
	return 0
}

func comparePercent(a, b Percent) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
