package accruetest

import "github.com/iov-one/accrue"

// Tx represents a transaction double. Transaction carries a single
// message that is to be processed.
type Tx struct {
	// Msg is the message that is to be processed by this
	// transaction.
	Msg accrue.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ accrue.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (accrue.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg represents a message double. Message is a request processed
// within a single transaction.
type Msg struct {
	// RoutePath returned by the Path method, consumed by the
	// router.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ accrue.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
