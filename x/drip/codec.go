package drip

import (
	"github.com/tendermint/go-amino"
)

// cdc serializes all models and messages of this extension.
var cdc = amino.NewCodec()

func init() {
	cdc.RegisterConcrete(&Account{}, "drip/account", nil)
	cdc.RegisterConcrete(&Allowance{}, "drip/allowance", nil)
	cdc.RegisterConcrete(&Configuration{}, "drip/configuration", nil)
	cdc.RegisterConcrete(&DepositMsg{}, "drip/msg/deposit", nil)
	cdc.RegisterConcrete(&WithdrawMsg{}, "drip/msg/withdraw", nil)
	cdc.RegisterConcrete(&SendMsg{}, "drip/msg/send", nil)
	cdc.RegisterConcrete(&MoveMsg{}, "drip/msg/move", nil)
	cdc.RegisterConcrete(&ApproveMsg{}, "drip/msg/approve", nil)
	cdc.RegisterConcrete(&UpdateRateMsg{}, "drip/msg/update_rate", nil)
}

func (a *Account) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func (a *Allowance) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Allowance) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *MoveMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *MoveMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *ApproveMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ApproveMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *UpdateRateMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateRateMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
