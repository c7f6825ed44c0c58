package app

import (
	"context"
	"testing"

	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/accruetest"
	"github.com/iov-one/accrue/accruetest/assert"
	"github.com/iov-one/accrue/errors"
	"github.com/iov-one/accrue/store"
)

type countingHandler struct {
	called int
}

var _ accrue.Handler = (*countingHandler)(nil)

func (h *countingHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	h.called++
	return &accrue.CheckResult{}, nil
}

func (h *countingHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	h.called++
	return &accrue.DeliverResult{}, nil
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	var h countingHandler
	r.Handle(&accruetest.Msg{RoutePath: "test/good"}, &h)

	ctx := context.Background()
	db := store.MemStore()

	tx := &accruetest.Tx{Msg: &accruetest.Msg{RoutePath: "test/good"}}
	if _, err := r.Check(ctx, db, tx); err != nil {
		t.Fatalf("unexpected check error: %+v", err)
	}
	if _, err := r.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("unexpected deliver error: %+v", err)
	}
	assert.Equal(t, 2, h.called)

	missing := &accruetest.Tx{Msg: &accruetest.Msg{RoutePath: "test/missing"}}
	if _, err := r.Check(ctx, db, missing); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestRouterRejectsDuplicates(t *testing.T) {
	r := NewRouter()
	r.Handle(&accruetest.Msg{RoutePath: "test/good"}, &countingHandler{})
	assert.Panics(t, func() {
		r.Handle(&accruetest.Msg{RoutePath: "test/good"}, &countingHandler{})
	})
}

func TestRouterRejectsBadPath(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		r.Handle(&accruetest.Msg{RoutePath: "Bad Path!"}, &countingHandler{})
	})
}

func TestChainDecoratorsOrder(t *testing.T) {
	var trace []string
	mark := func(name string) accrue.Decorator {
		return traceDecorator{name: name, trace: &trace}
	}

	h := ChainDecorators(
		mark("outer"),
		nil,
		mark("inner"),
	).WithHandler(traceHandler{trace: &trace})

	ctx := context.Background()
	db := store.MemStore()
	if _, err := h.Deliver(ctx, db, &accruetest.Tx{}); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Equal(t, []string{"outer", "inner", "handler"}, trace)
}

type traceDecorator struct {
	name  string
	trace *[]string
}

func (d traceDecorator) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx, next accrue.Checker) (*accrue.CheckResult, error) {
	*d.trace = append(*d.trace, d.name)
	return next.Check(ctx, db, tx)
}

func (d traceDecorator) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx, next accrue.Deliverer) (*accrue.DeliverResult, error) {
	*d.trace = append(*d.trace, d.name)
	return next.Deliver(ctx, db, tx)
}

type traceHandler struct {
	trace *[]string
}

func (h traceHandler) Check(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	*h.trace = append(*h.trace, "handler")
	return &accrue.CheckResult{}, nil
}

func (h traceHandler) Deliver(ctx accrue.Context, db accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	*h.trace = append(*h.trace, "handler")
	return &accrue.DeliverResult{}, nil
}
