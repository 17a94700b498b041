package cartera

import (
	"github.com/etnz/cartera/date"
)

// Position is what the valuation works on: either a single purchase record,
// or all the records of one asset pooled together.
type Position struct {
	Key      AssetKey
	Name     string
	Quantity Quantity
	Cost     Money // unit cost, in the currency it is expressed in
	Date     date.Date
	Favorite bool
	IDs      []string // contributing records
}

// Ticker returns the upper case ticker of the position.
func (p Position) Ticker() string { return p.Key.Ticker }

// Type returns the asset type of the position.
func (p Position) Type() AssetType { return p.Key.Type }

// Lots returns the number of records pooled into p.
func (p Position) Lots() int { return len(p.IDs) }

// Unmerged returns one position per record, each with its own cost.
func Unmerged(positions []RawPosition) []Position {
	res := make([]Position, 0, len(positions))
	for _, p := range positions {
		res = append(res, Position{
			Key:      p.Key(),
			Name:     p.Name,
			Quantity: p.Quantity,
			Cost:     p.Cost,
			Date:     p.Date,
			Favorite: p.Favorite,
			IDs:      []string{p.ID},
		})
	}
	return res
}

// Merge pools the records of each asset key into one position with the summed
// quantity and the weighted average cost.
//
// The merged position is a favorite if any record is, it is dated with the
// earliest purchase date and named after the earliest record with a name.
// Positions are returned in order of first appearance.
func Merge(positions []RawPosition, r Rate) []Position {
	return merge(positions, aggregate(positions, r))
}

// merge pools positions using the cost bases computed in costs. costs may
// have been computed on a larger set of records than positions.
//
// Records that do not contribute to the cost basis still count in the
// quantity, so that merging keeps the value of every record.
func merge(positions []RawPosition, costs map[AssetKey]costBasis) []Position {
	index := make(map[AssetKey]int)
	named := make(map[AssetKey]date.Date)
	var res []Position
	for _, p := range positions {
		k := p.Key()
		i, ok := index[k]
		if !ok {
			i = len(res)
			index[k] = i
			res = append(res, Position{
				Key:  k,
				Cost: costs[k].cost,
				Date: p.Date,
			})
		}
		m := &res[i]
		m.Quantity = m.Quantity.Add(p.Quantity)
		m.Favorite = m.Favorite || p.Favorite
		m.IDs = append(m.IDs, p.ID)
		if p.Date.Before(m.Date) {
			m.Date = p.Date
		}
		if on, ok := named[k]; p.Name != "" && (!ok || p.Date.Before(on)) {
			m.Name, named[k] = p.Name, p.Date
		}
	}
	for i := range res {
		if res[i].Cost.cur == "" && res[i].Key.Type.IsValid() {
			// the bucket is unknown to costs.
			res[i].Cost = Money{cur: res[i].Key.Type.NativeCurrency()}
		}
	}
	return res
}
