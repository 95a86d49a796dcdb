package app

import (
	"regexp"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_/]{4,32}$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the corresponding handler. Minimal interface
// modeled directly on net/http mux.
type Router struct {
	routes map[string]remittance.Handler
}

var _ remittance.Registry = (*Router)(nil)
var _ remittance.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]remittance.Handler),
	}
}

// Handle implements Registry interface. It is panicking when registering the
// same path twice or when an invalid path format is used, because this is a
// programmer error.
func (r *Router) Handle(path string, h remittance.Handler) {
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering route: " + path)
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPathHandler.
func (r *Router) handler(m remittance.Msg) remittance.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on path.
func (r *Router) Check(ctx remittance.Context, store remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path.
func (r *Router) Deliver(ctx remittance.Context, store remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

type noSuchPathHandler struct {
	path string
}

var _ remittance.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(remittance.Context, remittance.KVStore, remittance.Tx) (*remittance.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(remittance.Context, remittance.KVStore, remittance.Tx) (*remittance.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
