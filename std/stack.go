/*
Package std wires the remittance components into a complete
message-processing stack.

It is a good place to see how the pieces fit together: the decorator
chain, the escrow routes, and the genesis initializers. Embedders that
need a different composition can copy this wiring and replace parts.
*/
package std

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/app"
	"github.com/CallMeGwei/b9labs-remittance/x"
	"github.com/CallMeGwei/b9labs-remittance/x/cash"
	"github.com/CallMeGwei/b9labs-remittance/x/escrow"
	"github.com/CallMeGwei/b9labs-remittance/x/utils"
)

// Chain returns the standard decorator chain: panic recovery, the
// escrow pause gate, and savepoints so a failed message leaves no
// partial writes behind.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewRecovery(),
		escrow.NewPauseDecorator(),
		// on Check, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router with all escrow routes registered.
func Router(auth x.Authenticator, ctrl cash.Controller) *app.Router {
	r := app.NewRouter()
	escrow.RegisterRoutes(r, auth, ctrl)
	return r
}

// Stack wires the standard router with the standard decorator chain
// into a single handler.
func Stack(auth x.Authenticator, ctrl cash.Controller) remittance.Handler {
	return Chain().WithHandler(Router(auth, ctrl))
}

// Initializers returns the genesis initializers for all extensions in
// the stack, to be run in order against the genesis options.
func Initializers() []remittance.Initializer {
	return []remittance.Initializer{
		&escrow.Initializer{},
	}
}

// InitGenesis runs all standard initializers against the given options.
func InitGenesis(db remittance.KVStore, opts remittance.Options) error {
	for _, ini := range Initializers() {
		if err := ini.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
