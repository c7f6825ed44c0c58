package drip

import (
	"math/bits"

	"github.com/iov-one/accrue/errors"
)

// Unit is the fixed point precision factor. A rate of Unit means 100%
// interest per second. All rate values are fractions of Unit, for
// example a rate of 5e8 is 5e8/1e18 per second.
const Unit uint64 = 1000000000000000000

// accrualFactor returns the fixed point multiplier representing
// "1 + rate * elapsed". With zero elapsed time the factor is exactly
// Unit, so scaling by it is the identity.
func accrualFactor(rate uint64, elapsed uint64) (uint64, error) {
	hi, lo := bits.Mul64(rate, elapsed)
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "accrual factor")
	}
	factor, carry := bits.Add64(Unit, lo, 0)
	if carry != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "accrual factor")
	}
	return factor, nil
}

// scale multiplies the amount by a fixed point factor and removes the
// precision scaling again. The remainder of the final division is
// truncated. The 128 bit intermediate product keeps large principals
// from overflowing.
func scale(amount, factor uint64) (uint64, error) {
	hi, lo := bits.Mul64(amount, factor)
	if hi >= Unit {
		return 0, errors.Wrap(errors.ErrOverflow, "scaled amount")
	}
	quo, _ := bits.Div64(hi, lo, Unit)
	return quo, nil
}

// currentBalance computes the observable balance of a principal that
// accrues interest at the given per second rate for the given number
// of seconds. Interest is linear, not compounding.
func currentBalance(principal, rate, elapsed uint64) (uint64, error) {
	if principal == 0 || rate == 0 || elapsed == 0 {
		return principal, nil
	}
	factor, err := accrualFactor(rate, elapsed)
	if err != nil {
		return 0, err
	}
	return scale(principal, factor)
}

// add returns the sum of two amounts, failing instead of wrapping
// around.
func add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "amount sum")
	}
	return sum, nil
}
