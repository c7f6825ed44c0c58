package accrue

import (
	"reflect"

	"github.com/iov-one/accrue/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as this almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate makes sure the basic rules are enforced upon the
	// input data, without access to any state.
	Validate() error

	// Path returns the routing path for this message. This is used
	// by the Router to locate the proper Handler. Msg should be
	// created alongside the Handler that corresponds to it.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Tx represents the data sent from the user to the ledger. It
// includes the actual message, along with information needed to
// authenticate the sender (cryptographic signatures), and anything
// else needed to pass through middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from given transaction, validates it
// and stores it under the given destination. Destination must be a
// non-nil pointer to a message of the same type as carried by the
// transaction.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	val := reflect.ValueOf(msg)
	if dst.Kind() != reflect.Ptr || val.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrType, "pointers required, got %T and %T", destination, msg)
	}
	if dst.Type() != val.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dst.Elem().Set(val.Elem())
	return nil
}
