package cartera

// PriceTable maps assets to their current unit price, in the native currency
// of their type (USD for Crypto, ARS for stocks and CEDEARs).
type PriceTable map[AssetKey]Money

// Set records the price of ticker. The price is in the native currency of t.
func (pt PriceTable) Set(t AssetType, ticker string, price Money) {
	pt[KeyOf(t, ticker)] = price
}

// Lookup returns the price of k, if any.
func (pt PriceTable) Lookup(k AssetKey) (Money, bool) {
	m, ok := pt[k]
	return m, ok
}

// Row is a position valued in the display currency.
type Row struct {
	Position

	// Pending is true while no market price is known for the position. The
	// price-derived fields are then zero and the row is excluded from the
	// current value totals.
	Pending bool
	// Unconverted is true when the rate was missing and a value could not be
	// converted into the display currency.
	Unconverted bool

	UnitPrice     Money
	UnitCost      Money
	Change        Money // (UnitPrice - UnitCost) * Quantity
	ChangePercent Percent
	Value         Money // UnitPrice * Quantity
	Invested      Money // UnitCost * Quantity
	Allocation    Percent
}

// Value values p in the display currency.
//
// Both the market price and the unit cost are converted from their own
// currency into display. Market prices are in the native currency of the
// asset type, so in ARS a crypto price is multiplied by the rate while a stock
// price is kept as is, and in USD a stock price is divided by the rate.
func Value(p Position, prices PriceTable, display Currency, r Rate) Row {
	row := Row{Position: p}

	cost := p.Cost
	if cost.cur == "" && p.Key.Type.IsValid() {
		cost = cost.as(p.Key.Type.NativeCurrency())
	}
	row.UnitCost = Convert(cost, display, r)
	uc := row.UnitCost.value
	q := p.Quantity.value
	row.Invested = Money{value: uc.Mul(q), cur: display}
	row.Unconverted = row.UnitCost.cur != display

	raw, ok := prices.Lookup(p.Key)
	if !ok {
		row.Pending = true
		row.UnitPrice = Money{cur: display}
		row.Change = Money{cur: display}
		row.Value = Money{cur: display}
		return row
	}
	if raw.cur == "" && p.Key.Type.IsValid() {
		raw = raw.as(p.Key.Type.NativeCurrency())
	}
	row.UnitPrice = Convert(raw, display, r)
	row.Unconverted = row.Unconverted || row.UnitPrice.cur != display
	up := row.UnitPrice.value

	diff := up.Sub(uc)
	row.Change = Money{value: diff.Mul(q), cur: display}
	row.ChangePercent = percentOf(diff, uc)
	row.Value = Money{value: up.Mul(q), cur: display}
	return row
}
