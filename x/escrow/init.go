package escrow

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/gconf"
)

// Initializer fulfils the Initializer interface to load the extension
// configuration from the genesis file.
type Initializer struct{}

var _ remittance.Initializer = (*Initializer)(nil)

// FromGenesis will parse the initial configuration from genesis and save it
// in the database.
func (*Initializer) FromGenesis(opts remittance.Options, db remittance.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, "escrow", &conf)
}
