package finance

import (
	"time"

	"github.com/govalues/decimal"
	"github.com/govalues/money"
)

// Inception is the unbounded-lower-bound sentinel for date windows. No
// transaction predates it, so callers pass it to mean "since the beginning
// of time" and cumulative and windowed aggregation share one code path.
var Inception = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Zero is the additive identity; decimal.Decimal's zero value is 0 but a
// named constant reads better at call sites.
var Zero = decimal.Decimal{}

// The govalues arithmetic methods return an overflow error that cannot
// trigger at report magnitudes; these helpers keep summation call sites
// flat, mirroring how amounts are folded in the journal service they were
// adapted from.

// Add returns a+b.
func Add(a, b decimal.Decimal) decimal.Decimal { v, _ := a.Add(b); return v }

// Sub returns a-b.
func Sub(a, b decimal.Decimal) decimal.Decimal { v, _ := a.Sub(b); return v }

// Mul returns a*b.
func Mul(a, b decimal.Decimal) decimal.Decimal { v, _ := a.Mul(b); return v }

// MulInt returns a*n.
func MulInt(a decimal.Decimal, n int64) decimal.Decimal {
	d := decimal.MustNew(n, 0)
	return Mul(a, d)
}

// Abs returns |a|.
func Abs(a decimal.Decimal) decimal.Decimal { return a.Abs() }

// ClampNonNeg returns a, or zero when a is negative. Advance/overpayment
// balances are never treated as negative assets or liabilities.
func ClampNonNeg(a decimal.Decimal) decimal.Decimal {
	if a.IsNeg() {
		return Zero
	}
	return a
}

// Round2 rounds to 2 decimal places, the boundary precision for all
// monetary output.
func Round2(a decimal.Decimal) decimal.Decimal { return a.Round(2) }

// Float returns the 2-dp rounded float64 emitted at the HTTP boundary.
// Internal computation never goes through floats.
func Float(a decimal.Decimal) float64 {
	f, _ := Round2(a).Float64()
	return f
}

// Display formats an amount with its currency for report line rendering,
// e.g. "BDT 1520.00". Falls back to the bare decimal when the currency code
// is unknown to the money package.
func Display(curr string, a decimal.Decimal) string {
	r := Round2(a)
	whole, frac, ok := r.Int64(2)
	if !ok {
		return curr + " " + r.String()
	}
	amt, err := money.NewAmountFromMinorUnits(curr, whole*100+frac)
	if err != nil {
		return curr + " " + r.String()
	}
	return amt.String()
}
