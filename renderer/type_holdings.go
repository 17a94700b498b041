package renderer

import (
	"strings"
	"time"

	"github.com/etnz/cartera"
)

// Holdings is the data of a holdings report.
// Numbers keep their cartera types, so that they already carry their
// renderers (String, SignedString).
type Holdings struct {
	Currency cartera.Currency `json:"currency"`
	Rate     cartera.Rate     `json:"-"`
	Merged   bool             `json:"merged"`
	Sort     string           `json:"sort"`
	AsOf     string           `json:"asOf,omitempty"`
	Rows     []HoldingRow     `json:"rows"`
	Summary  cartera.Summary  `json:"-"`
}

// HoldingRow is one line of the holdings table.
type HoldingRow struct {
	Ticker        string           `json:"ticker"`
	Name          string           `json:"name,omitempty"`
	Type          string           `json:"type"`
	Favorite      bool             `json:"favorite,omitempty"`
	Lots          int              `json:"lots"`
	Pending       bool             `json:"pending,omitempty"`
	Unconverted   bool             `json:"unconverted,omitempty"`
	Quantity      cartera.Quantity `json:"quantity"`
	UnitCost      cartera.Money    `json:"-"`
	UnitPrice     cartera.Money    `json:"-"`
	Value         cartera.Money    `json:"-"`
	Change        cartera.Money    `json:"-"`
	ChangePercent cartera.Percent  `json:"changePercent"`
	Allocation    cartera.Percent  `json:"allocation"`
}

// NewHoldings creates the report data of an evaluation. asOf is the time of
// the prices, it is omitted when zero.
func NewHoldings(e *cartera.Evaluation, asOf time.Time) *Holdings {
	h := &Holdings{
		Currency: e.Summary.Currency,
		Rate:     e.Rate,
		Merged:   e.Options.Merge,
		Sort:     e.Options.Sort.String(),
		Rows:     make([]HoldingRow, 0, len(e.Rows)),
		Summary:  e.Summary,
	}
	if !asOf.IsZero() {
		h.AsOf = asOf.Format(time.DateTime)
	}
	for _, r := range e.Rows {
		h.Rows = append(h.Rows, HoldingRow{
			Ticker:        r.Ticker(),
			Name:          cell(r.Name),
			Type:          r.Type().String(),
			Favorite:      r.Favorite,
			Lots:          r.Lots(),
			Pending:       r.Pending,
			Unconverted:   r.Unconverted,
			Quantity:      r.Quantity,
			UnitCost:      r.UnitCost,
			UnitPrice:     r.UnitPrice,
			Value:         r.Value,
			Change:        r.Change,
			ChangePercent: r.ChangePercent,
			Allocation:    r.Allocation,
		})
	}
	return h
}

// cell escapes s for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
