package cryptotax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one step of a progressive tax schedule: the gain up to Limit is
// taxed at Rate. A zero Limit means the bracket is unbounded.
type Bracket struct {
	Limit Money
	Rate  decimal.Decimal
}

// Schedule is a progressive marginal tax schedule, brackets ordered by
// increasing limit, the last one unbounded.
type Schedule []Bracket

// Spain is the savings income schedule applied to capital gains.
var Spain = Schedule{
	{Limit: EUR(6000), Rate: decimal.RequireFromString("0.19")},
	{Limit: EUR(50000), Rate: decimal.RequireFromString("0.21")},
	{Limit: EUR(200000), Rate: decimal.RequireFromString("0.23")},
	{Rate: decimal.RequireFromString("0.27")},
}

// Assess returns the tax owed on a net gain with the Spain schedule.
func Assess(gain Money) Money { return Spain.Assess(gain) }

// Assess returns the tax owed on a net gain: each bracket's slice of the gain
// is taxed at its own rate.
//
// gain must not be negative; callers clamp it with TaxableBase. A negative
// gain is a programming error and panics.
func (s Schedule) Assess(gain Money) Money {
	if gain.IsNegative() {
		panic(fmt.Sprintf("tax assessment of a negative gain %s", gain))
	}
	tax := EUR(0)
	floor := EUR(0)
	for _, b := range s {
		if !gain.GreaterThan(floor) {
			break
		}
		top := gain
		if !b.Limit.IsZero() && b.Limit.LessThan(gain) {
			top = b.Limit
		}
		tax = tax.Add(M(top.Sub(floor).Decimal().Mul(b.Rate), Fiat))
		if b.Limit.IsZero() {
			break
		}
		floor = b.Limit
	}
	return tax
}

// TaxableBase clamps a net gain to zero: losses are not taxed.
func TaxableBase(gain Money) Money {
	if gain.IsNegative() {
		return EUR(0)
	}
	return gain
}
