package drip

import (
	"strconv"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/x"
)

// Gas costs charged for processing the messages.
const (
	depositCost    int64 = 100
	withdrawCost   int64 = 100
	sendCost       int64 = 100
	approveCost    int64 = 50
	updateRateCost int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r accrue.Registry, auth x.Authenticator) {
	control := NewController()

	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, control: control})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, control: control})
	r.Handle(&SendMsg{}, SendHandler{auth: auth, control: control})
	r.Handle(&MoveMsg{}, MoveHandler{auth: auth, control: control})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, control: control})
	r.Handle(&UpdateRateMsg{}, UpdateRateHandler{auth: auth, control: control})
}

// blockNow returns the time of the current block. It is read once per
// handler call, so every settlement within the call observes the same
// now.
func blockNow(ctx accrue.Context) (accrue.UnixTime, error) {
	t, err := accrue.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return accrue.AsUnixTime(t), nil
}

// DepositHandler mints new tokens. Only configured minters may use
// it.
type DepositHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrue.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &accrue.CheckResult{GasAllocated: depositCost}, nil
}

func (h DepositHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Deposit(db, now, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &accrue.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*DepositMsg, error) {
	var msg DepositMsg
	if err := accrue.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireMinter(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

// WithdrawHandler burns tokens. Only configured minters may use it,
// as burning is driven by the vault releasing collateral.
type WithdrawHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrue.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &accrue.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	burned, err := h.control.Withdraw(db, now, msg.Source, msg.Amount, msg.All)
	if err != nil {
		return nil, err
	}
	return &accrue.DeliverResult{
		Data: strconv.AppendUint(nil, burned, 10),
	}, nil
}

func (h WithdrawHandler) validate(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := accrue.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireMinter(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendHandler transfers tokens on behalf of the source, which must
// have signed the transaction.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrue.Handler = SendHandler{}

func (h SendHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &accrue.CheckResult{GasAllocated: sendCost}, nil
}

func (h SendHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	moved, err := h.control.Move(db, now, msg.Source, msg.Destination, msg.Amount, msg.All)
	if err != nil {
		return nil, err
	}
	return &accrue.DeliverResult{
		Data: strconv.AppendUint(nil, moved, 10),
	}, nil
}

func (h SendHandler) validate(ctx accrue.Context, tx accrue.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := accrue.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}

// MoveHandler transfers tokens out of the source account using the
// allowance granted to the transaction signer.
type MoveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrue.Handler = MoveHandler{}

func (h MoveHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &accrue.CheckResult{GasAllocated: sendCost}, nil
}

func (h MoveHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, spender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	now, err := blockNow(ctx)
	if err != nil {
		return nil, err
	}
	moved, err := h.control.MoveFrom(db, now, spender, msg.Source, msg.Destination, msg.Amount, msg.All)
	if err != nil {
		return nil, err
	}
	return &accrue.DeliverResult{
		Data: strconv.AppendUint(nil, moved, 10),
	}, nil
}

func (h MoveHandler) validate(ctx accrue.Context, tx accrue.Tx) (*MoveMsg, accrue.Address, error) {
	var msg MoveMsg
	if err := accrue.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "spender signature missing")
	}
	return &msg, signer.Address(), nil
}

// ApproveHandler sets an allowance on behalf of the source, which
// must have signed the transaction.
type ApproveHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrue.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &accrue.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Approve(db, msg.Source, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &accrue.DeliverResult{}, nil
}

func (h ApproveHandler) validate(ctx accrue.Context, tx accrue.Tx) (*ApproveMsg, error) {
	var msg ApproveMsg
	if err := accrue.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}

// UpdateRateHandler lowers the protocol rate. Only the configured
// admin may use it.
type UpdateRateHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ accrue.Handler = UpdateRateHandler{}

func (h UpdateRateHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &accrue.CheckResult{GasAllocated: updateRateCost}, nil
}

func (h UpdateRateHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.UpdateRate(db, msg.Rate); err != nil {
		return nil, err
	}
	// Off-core consumers index rate changes through these tags.
	return &accrue.DeliverResult{
		Tags: []common.KVPair{
			accrue.Pair("action", "update-rate"),
			accrue.Pair("rate", strconv.FormatUint(msg.Rate, 10)),
		},
	}, nil
}

func (h UpdateRateHandler) validate(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*UpdateRateMsg, error) {
	var msg UpdateRateMsg
	if err := accrue.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature missing")
	}
	return &msg, nil
}

// requireMinter fails unless one of the configured minters signed the
// transaction.
func requireMinter(ctx accrue.Context, db accrue.ReadOnlyKVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	for _, m := range conf.Minters {
		if auth.HasAddress(ctx, m) {
			return nil
		}
	}
	return errors.Wrap(errors.ErrUnauthorized, "minter signature missing")
}
