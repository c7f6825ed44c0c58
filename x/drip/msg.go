package drip

import (
	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
)

// Message paths as consumed by the router.
const (
	pathDeposit    = "drip/deposit"
	pathWithdraw   = "drip/withdraw"
	pathSend       = "drip/send"
	pathMove       = "drip/move"
	pathApprove    = "drip/approve"
	pathUpdateRate = "drip/update_rate"
)

var (
	_ accrue.Msg = (*DepositMsg)(nil)
	_ accrue.Msg = (*WithdrawMsg)(nil)
	_ accrue.Msg = (*SendMsg)(nil)
	_ accrue.Msg = (*MoveMsg)(nil)
	_ accrue.Msg = (*ApproveMsg)(nil)
	_ accrue.Msg = (*UpdateRateMsg)(nil)
)

// DepositMsg mints new tokens for the destination. The destination
// rate is always locked to the current protocol rate, even if the
// destination already holds a balance.
type DepositMsg struct {
	Destination accrue.Address
	Amount      uint64
}

func (DepositMsg) Path() string {
	return pathDeposit
}

func (m *DepositMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

// WithdrawMsg burns tokens of the source. With All set the whole
// balance is burned and Amount must be zero.
type WithdrawMsg struct {
	Source accrue.Address
	Amount uint64
	// All burns the entire balance, regardless of its exact value at
	// execution time.
	All bool
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m *WithdrawMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	return validateAmount(m.Amount, m.All)
}

// SendMsg transfers tokens from the source to the destination. With
// All set the whole balance is moved and Amount must be zero.
type SendMsg struct {
	Source      accrue.Address
	Destination accrue.Address
	Amount      uint64
	All         bool
}

func (SendMsg) Path() string {
	return pathSend
}

func (m *SendMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Source.Equals(m.Destination) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	return validateAmount(m.Amount, m.All)
}

// MoveMsg is the delegated variant of SendMsg. The transaction signer
// spends the allowance granted by the source.
type MoveMsg struct {
	Source      accrue.Address
	Destination accrue.Address
	Amount      uint64
	All         bool
}

func (MoveMsg) Path() string {
	return pathMove
}

func (m *MoveMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Source.Equals(m.Destination) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}
	return validateAmount(m.Amount, m.All)
}

// ApproveMsg grants the spender the right to move up to Amount tokens
// out of the source account. A zero amount revokes the grant.
type ApproveMsg struct {
	Source  accrue.Address
	Spender accrue.Address
	Amount  uint64
}

func (ApproveMsg) Path() string {
	return pathApprove
}

func (m *ApproveMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if m.Source.Equals(m.Spender) {
		return errors.Wrap(errors.ErrInput, "source and spender are the same")
	}
	return nil
}

// UpdateRateMsg lowers the protocol wide interest rate. Values that
// do not strictly decrease the rate are rejected.
type UpdateRateMsg struct {
	Rate uint64
}

func (UpdateRateMsg) Path() string {
	return pathUpdateRate
}

func (m *UpdateRateMsg) Validate() error {
	return nil
}

func validateAmount(amount uint64, all bool) error {
	if all {
		if amount != 0 {
			return errors.Wrap(errors.ErrAmount, "amount must be zero when moving all")
		}
		return nil
	}
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}
