package cartera

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a ratio expressed in percent, 12.5 means 12.5%.
//
// Percents are for display and ordering only, amounts stay decimal.
type Percent float64

// percentOf returns num/den*100, or 0 when den is not positive.
func percentOf(num, den decimal.Decimal) Percent {
	if !den.IsPositive() {
		return 0
	}
	return Percent(num.Div(den).Mul(hundred).InexactFloat64())
}

// Equal reports whether p and q are within a ten thousandth of a percent.
func (p Percent) Equal(q Percent) bool { return math.Abs(float64(p-q)) < 1e-4 }

// String formats p with two decimals, "12.50%".
func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString formats p with its sign, "+12.50%", or "-" when it rounds to
// zero.
func (p Percent) SignedString() string {
	s := fmt.Sprintf("%+.2f%%", float64(p))
	if s == "+0.00%" || s == "-0.00%" {
		return "-"
	}
	return s
}
