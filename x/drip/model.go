package drip

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/orm"
)

// Account is the ledger entry of a single holder. The observable
// balance is the principal plus the interest accrued since SettledAt.
type Account struct {
	// Principal is the settled token amount, excluding any interest
	// accrued since the last settlement.
	Principal uint64
	// Rate is the per second interest rate locked in for this
	// holder, as a fraction of Unit.
	Rate uint64
	// SettledAt is the time of the most recent settlement.
	SettledAt accrue.UnixTime
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := a.SettledAt.Validate(); err != nil {
		return errors.Wrap(err, "settled at")
	}
	return nil
}

func (a *Account) Copy() orm.CloneableData {
	return &Account{
		Principal: a.Principal,
		Rate:      a.Rate,
		SettledAt: a.SettledAt,
	}
}

// Allowance is the amount a spender may move out of an owner account
// using delegated transfers.
type Allowance struct {
	Amount uint64
}

var _ orm.Model = (*Allowance)(nil)

func (a *Allowance) Validate() error {
	return nil
}

func (a *Allowance) Copy() orm.CloneableData {
	return &Allowance{Amount: a.Amount}
}

// NewAccountBucket returns a bucket for keeping track of holder
// accounts, keyed by the holder address.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket("drip", orm.NewSimpleObj(nil, &Account{})))
}

// NewAllowanceBucket returns a bucket for keeping track of delegated
// transfer allowances, keyed by owner and spender address.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket(orm.NewBucket("dripallow", orm.NewSimpleObj(nil, &Allowance{})))
}

// allowanceKey combines owner and spender into a single allowance
// bucket key.
func allowanceKey(owner, spender accrue.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}
