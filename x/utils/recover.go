package utils

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
)

// Recovery is a decorator to recover from panics in transactions, so
// we can log them as errors.
type Recovery struct{}

var _ accrue.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx, next accrue.Checker) (_ *accrue.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx, next accrue.Deliverer) (_ *accrue.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
