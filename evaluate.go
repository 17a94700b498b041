package cartera

import "strings"

// Filter selects the records shown by an evaluation.
type Filter struct {
	Type   AssetType // zero means any type
	Search string    // matches ticker or name, ignoring case and diacritics
}

// Match reports whether p is selected by f.
func (f Filter) Match(p RawPosition) bool {
	if f.Type != 0 && p.Type != f.Type {
		return false
	}
	term := StripDiacritics(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(StripDiacritics(p.Ticker), term) || strings.Contains(StripDiacritics(p.Name), term)
}

// Apply returns the records selected by f, in order.
func (f Filter) Apply(positions []RawPosition) []RawPosition {
	if f == (Filter{}) {
		return positions
	}
	res := make([]RawPosition, 0, len(positions))
	for _, p := range positions {
		if f.Match(p) {
			res = append(res, p)
		}
	}
	return res
}

// Options are the user selectable modes of an evaluation.
type Options struct {
	Display Currency // ARS when empty
	Merge   bool
	Sort    SortMode
	Filter  Filter
}

// DefaultOptions displays merged positions in ARS, largest holdings first.
func DefaultOptions() Options {
	return Options{Display: ARS, Merge: true, Sort: ValueDesc}
}

// Evaluation is the result of Evaluate.
type Evaluation struct {
	Options Options
	Rate    Rate
	Rows    []Row
	Summary Summary
}

// Evaluate values positions against prices and rate.
//
// Records are filtered, merged when opts.Merge is set, valued in the display
// currency, sorted, and summarized. Weighted average costs are always
// computed on all the records, so that a filter does not change the cost of
// a merged position.
//
// Evaluate does not retain nor modify its inputs: calling it twice with the
// same inputs returns the same result.
func Evaluate(positions []RawPosition, prices PriceTable, rate Rate, opts Options) *Evaluation {
	if opts.Display == "" {
		opts.Display = ARS
	}
	selected := opts.Filter.Apply(positions)

	var ps []Position
	if opts.Merge {
		ps = merge(selected, aggregate(positions, rate))
	} else {
		ps = Unmerged(selected)
	}

	rows := make([]Row, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, Value(p, prices, opts.Display, rate))
	}
	SortRows(rows, opts.Sort)
	summary := Summarize(rows, opts.Display)

	return &Evaluation{
		Options: opts,
		Rate:    rate,
		Rows:    rows,
		Summary: summary,
	}
}
