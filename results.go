package accrue

import (
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult captures any non-error execution result to make sure
// people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a
	// created entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// Tags, if present, are used by off-core consumers to index and
	// search the transaction history.
	Tags []common.KVPair
	// GasUsed is the units of work performed by this transaction.
	GasUsed int64
}

// CheckResult captures any non-error validation result to make sure
// people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like the id of a
	// created entity.
	Data []byte
	// Log is a human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to
	// perform.
	GasAllocated int64
}

// NewCheck sets the gas used and the response log but no more info.
// These are the most common info needed to be set by the Handler.
func NewCheck(gasAllocated int64, log string) CheckResult {
	return CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// Pair is a helper to build tags.
func Pair(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}
