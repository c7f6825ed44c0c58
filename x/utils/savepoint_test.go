package utils

import (
	"context"
	"testing"

	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/store"
)

// writeHandler writes the key, value pair and returns the stored
// error (may be nil).
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ accrue.Handler = writeHandler{}

func (h writeHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	db.Set(h.key, h.value)
	return &accrue.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	db.Set(h.key, h.value)
	return &accrue.DeliverResult{}, h.err
}

type panicHandler struct{}

var _ accrue.Handler = panicHandler{}

func (panicHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	panic("check")
}

func (panicHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	panic("deliver")
}

func TestSavepoint(t *testing.T) {
	key := []byte("record")
	value := []byte("ok")
	fail := writeHandler{key: key, value: value, err: errSentinel}
	good := writeHandler{key: key, value: value}

	cases := map[string]struct {
		save    Savepoint
		handler accrue.Handler
		deliver bool
		written bool
	}{
		"check passes through on success": {
			save:    NewSavepoint().OnCheck(),
			handler: good,
			written: true,
		},
		"check rolls back on error": {
			save:    NewSavepoint().OnCheck(),
			handler: fail,
			written: false,
		},
		"deliver passes through on success": {
			save:    NewSavepoint().OnDeliver(),
			handler: good,
			deliver: true,
			written: true,
		},
		"deliver rolls back on error": {
			save:    NewSavepoint().OnDeliver(),
			handler: fail,
			deliver: true,
			written: false,
		},
		"inactive savepoint writes even on error": {
			save:    NewSavepoint().OnCheck(),
			handler: fail,
			deliver: true,
			written: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()

			if tc.deliver {
				_, _ = tc.save.Deliver(ctx, db, nil, asDeliverer(tc.handler))
			} else {
				_, _ = tc.save.Check(ctx, db, nil, asChecker(tc.handler))
			}

			if has := db.Has(key); has != tc.written {
				t.Fatalf("unexpected write state: %v", has)
			}
		})
	}
}

func TestRecoveryTurnsPanicIntoError(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()

	rec := NewRecovery()
	if _, err := rec.Check(ctx, db, nil, asChecker(panicHandler{})); err == nil {
		t.Fatal("panic not recovered in check")
	}
	if _, err := rec.Deliver(ctx, db, nil, asDeliverer(panicHandler{})); err == nil {
		t.Fatal("panic not recovered in deliver")
	}
}

var errSentinel = errTest("test error")

type errTest string

func (e errTest) Error() string { return string(e) }

type checkerAdapter struct{ h accrue.Handler }

func (a checkerAdapter) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	return a.h.Check(ctx, db, tx)
}

func asChecker(h accrue.Handler) accrue.Checker {
	return checkerAdapter{h}
}

type delivererAdapter struct{ h accrue.Handler }

func (a delivererAdapter) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	return a.h.Deliver(ctx, db, tx)
}

func asDeliverer(h accrue.Handler) accrue.Deliverer {
	return delivererAdapter{h}
}
