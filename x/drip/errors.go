package drip

import (
	"github.com/iov-one/accrue/errors"
)

var (
	// ErrRateIncrease is returned when a rate update does not lower
	// the protocol rate. The rate can only decrease, submitting the
	// current value again is rejected as well.
	ErrRateIncrease = errors.Register(1000, "rate increase rejected")

	// ErrInsufficientFunds is returned when the settled principal
	// does not cover the requested amount.
	ErrInsufficientFunds = errors.Register(1001, "insufficient funds")

	// ErrInsufficientAllowance is returned when a delegated transfer
	// exceeds the amount approved for the spender.
	ErrInsufficientAllowance = errors.Register(1002, "insufficient allowance")
)
