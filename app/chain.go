package app

import (
	"reflect"

	remittance "github.com/CallMeGwei/b9labs-remittance"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []remittance.Decorator
}

// ChainDecorators takes a chain of decorators, and upon adding a final
// Handler (often a Router), returns a Handler that will execute this
// whole stack.
//
//	app.ChainDecorators(
//	  utils.NewRecovery(),
//	  escrow.NewPauseDecorator(),
//	  utils.NewSavepoint().OnDeliver(),
//	).WithHandler(
//	  app.NewRouter(),
//	)
func ChainDecorators(chain ...remittance.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends more decorators to the chain. Nil entries are dropped, which
// allows optional decorators to be passed in conditionally.
func (d Decorators) Chain(chain ...remittance.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := append(d.chain, chain...)
	return Decorators{chain: newChain}
}

// cutoffNil will in-place remove all nil values from given slice.
func cutoffNil(ds []remittance.Decorator) []remittance.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through the chain of decorators before calling the final Handler.
func (d Decorators) WithHandler(h remittance.Handler) remittance.Handler {
	// Start wrapping the handler from last decorator to first one, as the
	// top of the chain is understood to be executed first.
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific Handler.
// Simplified version of a closure.
type step struct {
	d    remittance.Decorator
	next remittance.Handler
}

var _ remittance.Handler = step{}

// Check passes the next handler into the decorator, implements Handler.
func (s step) Check(ctx remittance.Context, store remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the next handler into the decorator, implements Handler.
func (s step) Deliver(ctx remittance.Context, store remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
