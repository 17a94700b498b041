package cartera

import "github.com/shopspring/decimal"

// Rate is the CCL exchange rate, in ARS per USD.
//
// The zero value is the unset rate (NoRate). A rate that is not positive is
// treated as unset.
type Rate struct {
	value decimal.Decimal
}

// NoRate is the unset rate, conversions are skipped.
var NoRate Rate

func NewRate[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// IsSet reports whether conversions can use r.
func (r Rate) IsSet() bool { return r.value.IsPositive() }

func (r Rate) Decimal() decimal.Decimal { return r.value }

func (r Rate) String() string {
	if !r.IsSet() {
		return "-"
	}
	return r.value.String()
}

// Convert converts m into currency to using rate r.
//
// m is returned unchanged when it already is in currency to, when it is zero
// (relabelled in to), when r is not set or when its currency is unknown. In
// those last cases the result keeps its own currency, callers detect it with
// Currency().
func Convert(m Money, to Currency, r Rate) Money {
	if m.cur == to {
		return m
	}
	if m.IsZero() {
		return m.as(to)
	}
	if !r.IsSet() {
		return m
	}
	switch {
	case m.cur == USD && to == ARS:
		return Money{value: m.value.Mul(r.value), cur: ARS}
	case m.cur == ARS && to == USD:
		return Money{value: m.value.Div(r.value), cur: USD}
	}
	return m
}
