package drip

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/orm"
)

// Controller is the functional core of this extension. It maintains
// the holder accounts and the allowance table and enforces the
// settle-before-mutate rule. Authentication is out of scope, the
// handlers gate access before calling in.
type Controller struct {
	accounts   orm.ModelBucket
	allowances orm.ModelBucket
}

// NewController returns a controller operating on the default
// buckets.
func NewController() Controller {
	return Controller{
		accounts:   NewAccountBucket(),
		allowances: NewAllowanceBucket(),
	}
}

// Balance returns the observable balance of the holder at the given
// time, principal plus pending interest. This is a read only
// computation, no state is modified.
func (c Controller) Balance(db accrue.ReadOnlyKVStore, now accrue.UnixTime, holder accrue.Address) (uint64, error) {
	acc, err := c.account(db, holder)
	if err != nil {
		return 0, err
	}
	return accountBalance(acc, now)
}

// Principal returns the settled principal of the holder, excluding
// any pending interest.
func (c Controller) Principal(db accrue.ReadOnlyKVStore, holder accrue.Address) (uint64, error) {
	acc, err := c.account(db, holder)
	if err != nil {
		return 0, err
	}
	return acc.Principal, nil
}

// HolderRate returns the interest rate locked in for the holder.
func (c Controller) HolderRate(db accrue.ReadOnlyKVStore, holder accrue.Address) (uint64, error) {
	acc, err := c.account(db, holder)
	if err != nil {
		return 0, err
	}
	return acc.Rate, nil
}

// ProtocolRate returns the current protocol wide rate that the next
// deposit will lock in.
func (c Controller) ProtocolRate(db accrue.ReadOnlyKVStore) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.Rate, nil
}

// Deposit mints the given amount for the destination. The destination
// rate is re-locked to the current protocol rate on every deposit,
// not only when the destination balance is zero. This intentionally
// differs from the transfer behaviour.
func (c Controller) Deposit(db accrue.KVStore, now accrue.UnixTime, dest accrue.Address, amount uint64) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	acc, err := c.settle(db, now, dest)
	if err != nil {
		return err
	}
	acc.Rate = conf.Rate
	if acc.Principal, err = add(acc.Principal, amount); err != nil {
		return err
	}
	return c.accounts.Put(db, dest, acc)
}

// Withdraw burns the given amount of the source balance. With all set
// the amount is ignored and the whole balance, interest included, is
// burned. Returns the amount burned.
func (c Controller) Withdraw(db accrue.KVStore, now accrue.UnixTime, src accrue.Address, amount uint64, all bool) (uint64, error) {
	acc, err := c.settle(db, now, src)
	if err != nil {
		return 0, err
	}
	if all {
		amount = acc.Principal
	}
	if amount > acc.Principal {
		return 0, errors.Wrapf(ErrInsufficientFunds, "withdraw %d, settled balance %d", amount, acc.Principal)
	}
	acc.Principal -= amount
	if err := c.accounts.Put(db, src, acc); err != nil {
		return 0, err
	}
	return amount, nil
}

// Move transfers the given amount from source to destination. Both
// parties are settled first. With all set the amount is ignored and
// the whole settled source balance is moved. A destination with zero
// balance adopts the locked rate of the source. Returns the amount
// moved.
func (c Controller) Move(db accrue.KVStore, now accrue.UnixTime, src, dest accrue.Address, amount uint64, all bool) (uint64, error) {
	if src.Equals(dest) {
		return 0, errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, err := c.settle(db, now, src)
	if err != nil {
		return 0, err
	}
	if all {
		amount = sender.Principal
	}
	if amount > sender.Principal {
		return 0, errors.Wrapf(ErrInsufficientFunds, "send %d, settled balance %d", amount, sender.Principal)
	}

	recipient, err := c.settle(db, now, dest)
	if err != nil {
		return 0, err
	}
	// A holder with nothing at stake has no rate worth keeping.
	if recipient.Principal == 0 {
		recipient.Rate = sender.Rate
	}
	if recipient.Principal, err = add(recipient.Principal, amount); err != nil {
		return 0, err
	}
	sender.Principal -= amount

	if err := c.accounts.Put(db, src, sender); err != nil {
		return 0, err
	}
	if err := c.accounts.Put(db, dest, recipient); err != nil {
		return 0, err
	}
	return amount, nil
}

// MoveFrom is the delegated variant of Move. The moved amount is
// charged against the allowance the source granted to the spender.
func (c Controller) MoveFrom(db accrue.KVStore, now accrue.UnixTime, spender, src, dest accrue.Address, amount uint64, all bool) (uint64, error) {
	moved, err := c.Move(db, now, src, dest, amount, all)
	if err != nil {
		return 0, err
	}

	granted, err := c.Allowance(db, src, spender)
	if err != nil {
		return 0, err
	}
	if moved > granted {
		return 0, errors.Wrapf(ErrInsufficientAllowance, "move %d, allowance %d", moved, granted)
	}
	err = c.allowances.Put(db, allowanceKey(src, spender), &Allowance{Amount: granted - moved})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// Approve sets the allowance of the spender on the source account.
// Zero revokes any existing grant.
func (c Controller) Approve(db accrue.KVStore, src, spender accrue.Address, amount uint64) error {
	return c.allowances.Put(db, allowanceKey(src, spender), &Allowance{Amount: amount})
}

// Allowance returns the amount the spender may still move out of the
// source account. Zero if no grant exists.
func (c Controller) Allowance(db accrue.ReadOnlyKVStore, src, spender accrue.Address) (uint64, error) {
	var a Allowance
	switch err := c.allowances.One(db, allowanceKey(src, spender), &a); {
	case err == nil:
		return a.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// UpdateRate replaces the protocol rate. Only strictly decreasing
// updates are accepted, submitting the current value again fails as
// well.
func (c Controller) UpdateRate(db accrue.KVStore, rate uint64) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if rate >= conf.Rate {
		return errors.Wrapf(ErrRateIncrease, "current %d, got %d", conf.Rate, rate)
	}
	conf.Rate = rate
	return saveConf(db, conf)
}

// settle folds the pending interest of the holder into the principal
// and restarts the accrual clock at now. All principal and rate
// mutations must pass through here first, otherwise interest would be
// lost or counted twice. The returned account is not yet persisted.
//
// Settling twice at the same instant is a no-op the second time, as
// zero elapsed time yields zero interest.
func (c Controller) settle(db accrue.KVStore, now accrue.UnixTime, holder accrue.Address) (*Account, error) {
	acc, err := c.account(db, holder)
	if err != nil {
		return nil, err
	}
	balance, err := accountBalance(acc, now)
	if err != nil {
		return nil, err
	}
	acc.Principal = balance
	acc.SettledAt = now
	return acc, nil
}

// account loads the ledger entry of the holder. Holders without an
// entry are returned as a dormant zero-value account.
func (c Controller) account(db accrue.ReadOnlyKVStore, holder accrue.Address) (*Account, error) {
	var acc Account
	switch err := c.accounts.One(db, holder, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &Account{}, nil
	default:
		return nil, err
	}
}

// accountBalance computes the observable balance of the account at
// the given time without modifying it.
func accountBalance(acc *Account, now accrue.UnixTime) (uint64, error) {
	if now < acc.SettledAt {
		return 0, errors.Wrapf(errors.ErrState, "settled in the future: %s", acc.SettledAt)
	}
	return currentBalance(acc.Principal, acc.Rate, uint64(now-acc.SettledAt))
}
