package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/feeds"
)

// HoldingsMarkdown renders the holdings report of an evaluation.
func HoldingsMarkdown(e *cartera.Evaluation) string {
	return RenderHoldings(NewHoldings(e, time.Time{}))
}

// SnapshotHoldingsMarkdown renders the holdings report of an evaluation made
// on snapshot s.
func SnapshotHoldingsMarkdown(e *cartera.Evaluation, s *cartera.Snapshot) string {
	return RenderHoldings(NewHoldings(e, s.AsOf))
}

// idLength is the length of the id prefixes displayed, enough to select a
// record in the commands.
const idLength = 8

// ShortID returns the displayed prefix of id.
func ShortID(id string) string {
	if len(id) <= idLength {
		return id
	}
	return id[:idLength]
}

// PositionsMarkdown renders the purchase records, as stored.
func PositionsMarkdown(positions []cartera.RawPosition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Positions\n\n")
	if len(positions) == 0 {
		fmt.Fprintln(&b, "_No positions._")
		return b.String()
	}
	fmt.Fprintln(&b, "| ID | | Ticker | Name | Type | Quantity | Cost | Currency | Date |")
	fmt.Fprintln(&b, "|:---|:---:|:---|:---|:---|---:|---:|:---|:---|")
	for _, p := range positions {
		fav := ""
		if p.Favorite {
			fav = "★"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			ShortID(p.ID),
			fav,
			p.Ticker,
			cell(p.Name),
			p.Type,
			p.Quantity,
			p.Cost,
			p.Cost.Currency(),
			p.Date,
		)
	}
	return b.String()
}

// QuotesMarkdown renders market quotes.
func QuotesMarkdown(rate cartera.Rate, quotes []feeds.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quotes\n\nCCL: %s\n\n", rate)
	if len(quotes) == 0 {
		fmt.Fprintln(&b, "_No quotes._")
		return b.String()
	}
	fmt.Fprintln(&b, "| Ticker | Name | Type | Price |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|")
	for _, q := range quotes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", q.Key.Ticker, cell(q.Name), q.Key.Type, q.Price)
	}
	return b.String()
}
