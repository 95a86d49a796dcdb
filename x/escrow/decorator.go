package escrow

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/gconf"
)

// PauseDecorator is the circuit breaker. While the configuration is paused
// every escrow mutating message is rejected before any handler logic runs.
// The configuration update itself stays reachable, otherwise unpausing
// would be impossible.
type PauseDecorator struct{}

var _ remittance.Decorator = PauseDecorator{}

// NewPauseDecorator creates a PauseDecorator.
func NewPauseDecorator() PauseDecorator {
	return PauseDecorator{}
}

func (d PauseDecorator) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx, next remittance.Checker) (*remittance.CheckResult, error) {
	if err := d.refuseWhenPaused(db, tx); err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d PauseDecorator) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx, next remittance.Deliverer) (*remittance.DeliverResult, error) {
	if err := d.refuseWhenPaused(db, tx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d PauseDecorator) refuseWhenPaused(db remittance.KVStore, tx remittance.Tx) error {
	var conf Configuration
	switch err := gconf.Load(db, "escrow", &conf); {
	case err == nil:
		// All good.
	case errors.ErrNotFound.Is(err):
		// Not configured yet, nothing to pause. This can only happen
		// before genesis initialization completed.
		return nil
	default:
		return errors.Wrap(err, "load configuration")
	}
	if !conf.Paused {
		return nil
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot load msg")
	}
	if msg.Path() == pathUpdateConfig {
		return nil
	}
	return errors.Wrap(errors.ErrState, "escrow operations are paused")
}
