package cartera

import "github.com/shopspring/decimal"

// lotSum accumulates the records of one bucket paid in one currency.
type lotSum struct {
	qty  decimal.Decimal
	cost decimal.Decimal // Σ qty * unit cost
}

// costBasis is the pooled quantity and weighted unit cost of a bucket.
type costBasis struct {
	qty  decimal.Decimal
	cost Money
}

// aggregate pools records per asset key. Records that do not contribute are
// skipped. Accumulation is a sum, so the order of positions does not matter.
//
// A bucket whose records were all paid in the same currency is averaged in
// that currency. A bucket mixing currencies is averaged in the native
// currency of its asset type, converting through r.
func aggregate(positions []RawPosition, r Rate) map[AssetKey]costBasis {
	buckets := make(map[AssetKey]map[Currency]*lotSum)
	for _, p := range positions {
		if !p.contributes() {
			continue
		}
		k := p.Key()
		sums, ok := buckets[k]
		if !ok {
			sums = make(map[Currency]*lotSum, 1)
			buckets[k] = sums
		}
		s, ok := sums[p.Cost.cur]
		if !ok {
			s = &lotSum{}
			sums[p.Cost.cur] = s
		}
		s.qty = s.qty.Add(p.Quantity.value)
		s.cost = s.cost.Add(p.Cost.value.Mul(p.Quantity.value))
	}

	res := make(map[AssetKey]costBasis, len(buckets))
	for k, sums := range buckets {
		cur := k.Type.NativeCurrency()
		if len(sums) == 1 {
			for c := range sums {
				cur = c
			}
		}
		var qty, total decimal.Decimal
		for c, s := range sums {
			qty = qty.Add(s.qty)
			total = total.Add(Convert(Money{value: s.cost, cur: c}, cur, r).value)
		}
		avg := decimal.Zero
		if qty.IsPositive() {
			avg = total.Div(qty)
		}
		res[k] = costBasis{qty: qty, cost: Money{value: avg, cur: cur}}
	}
	return res
}

// AverageCosts returns the quantity-weighted average unit cost of every
// asset key found in positions.
func AverageCosts(positions []RawPosition, r Rate) map[AssetKey]Money {
	res := make(map[AssetKey]Money)
	for k, b := range aggregate(positions, r) {
		res[k] = b.cost
	}
	return res
}
