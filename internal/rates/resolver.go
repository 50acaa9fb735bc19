package rates

import (
	"strings"

	"currency-converter/internal/custom_err"

	"github.com/shopspring/decimal"
)

const ratePrecision = 6

var one = decimal.NewFromInt(1)

// Resolver derives cross rates from a base-relative Table.
type Resolver struct {
	table *Table
}

func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Rate returns rate(to)/rate(from) rounded half up to 6 places.
// Identical codes yield exactly 1 without consulting the table.
func (r *Resolver) Rate(from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return one, nil
	}

	snap := r.table.Snapshot()
	fromRate, ok := snap.Lookup(from)
	if !ok {
		return decimal.Decimal{}, &custom_err.RateUnavailableError{Currency: from}
	}
	toRate, ok := snap.Lookup(to)
	if !ok {
		return decimal.Decimal{}, &custom_err.RateUnavailableError{Currency: to}
	}

	return toRate.DivRound(fromRate, ratePrecision), nil
}

// Convert applies the fee and the rate: amount * (1 - fee) * rate. No rounding.
func (r *Resolver) Convert(amount, fee, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(one.Sub(fee)).Mul(rate)
}
