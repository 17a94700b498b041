package cartera

import "github.com/etnz/cartera/date"

// ars is a helper for test to create pesos from const
func ars(v float64) Money { return M(v, ARS) }

// usd is a helper for test to create dollars from const
func usd(v float64) Money { return M(v, USD) }

// buy is a helper for test to create a purchase record
func buy(id string, t AssetType, ticker string, qty float64, cost Money, on string) RawPosition {
	return RawPosition{
		ID:       id,
		Ticker:   ticker,
		Type:     t,
		Quantity: Q(qty),
		Cost:     cost,
		Date:     date.MustParse(on),
	}
}

// favorite returns a copy of p marked as favorite.
func favorite(p RawPosition) RawPosition {
	p.Favorite = true
	return p
}

// named returns a copy of p with a name.
func named(p RawPosition, name string) RawPosition {
	p.Name = name
	return p
}
