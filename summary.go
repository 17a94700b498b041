package cartera

import "github.com/shopspring/decimal"

// Summary holds the portfolio totals of one evaluation, in one currency.
type Summary struct {
	Currency      Currency
	Invested      Money // pending rows included, their cost is known
	Value         Money // pending rows excluded
	Change        Money // Value - Invested
	ChangePercent Percent
	Pending       int // rows without market price
	Unconverted   int // rows that could not be converted for lack of a rate
}

// Summarize computes the totals of rows in currency display, and sets the
// Allocation of each row as its share of the total value.
//
// Rows are all valued in display, except for Unconverted rows whose numbers
// are summed as they are.
func Summarize(rows []Row, display Currency) Summary {
	var invested, value decimal.Decimal
	s := Summary{Currency: display}
	for _, r := range rows {
		invested = invested.Add(r.Invested.value)
		if r.Pending {
			s.Pending++
		} else {
			value = value.Add(r.Value.value)
		}
		if r.Unconverted {
			s.Unconverted++
		}
	}
	s.Invested = Money{value: invested, cur: display}
	s.Value = Money{value: value, cur: display}
	s.Change = Money{value: value.Sub(invested), cur: display}
	s.ChangePercent = percentOf(s.Change.value, invested)

	for i := range rows {
		if rows[i].Pending {
			rows[i].Allocation = 0
			continue
		}
		rows[i].Allocation = percentOf(rows[i].Value.value, value)
	}
	return s
}
