package utils

import (
	"time"

	"github.com/iov-one/accrue"
)

// Logging is a decorator to log messages as they pass through.
type Logging struct{}

var _ accrue.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug.
func (r Logging) Check(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx, next accrue.Checker) (*accrue.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info.
func (r Logging) Deliver(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx, next accrue.Deliverer) (*accrue.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the
// logger.
func logDuration(ctx accrue.Context, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := accrue.GetLogger(ctx).With("duration", delta/time.Microsecond)

	if err != nil {
		logger = logger.With("err", err)
		logger.Error(msg)
		return
	}

	// Although message can be empty, we still want to emit a log
	// entry because it contains other relevant information beside
	// the message.
	if lowPrio {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}
