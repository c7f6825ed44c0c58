package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/accrue"
	"github.com/iov-one/accrue/errors"
)

// isPath defines which message paths are allowed to be registered.
var isPath = regexp.MustCompile(`^[a-z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	handlers map[string]accrue.Handler
}

var _ accrue.Registry = (*Router)(nil)
var _ accrue.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]accrue.Handler),
	}
}

// Handle implements Registry interface. It assigns the handler to
// process messages of the same type as given message. This method
// panics if a handler was already registered for that message type,
// or if the path is malformed.
func (r *Router) Handle(m accrue.Msg, h accrue.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message, or a
// notFoundHandler if none was registered for that path.
func (r *Router) handler(m accrue.Msg) accrue.Handler {
	path := m.Path()
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound with the path that was
// requested.
type notFoundHandler string

var _ accrue.Handler = notFoundHandler("")

func (path notFoundHandler) Check(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx) (*accrue.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(ctx accrue.Context, store accrue.KVStore, tx accrue.Tx) (*accrue.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
