package escrow

import (
	"encoding/json"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/gconf"
)

// Commitment schemes supported by the verifier. A deployment picks exactly
// one at genesis, schemes are never mixed within one instance.
const (
	// SchemeSingle uses one digest, redeemable by anyone proving the
	// secret.
	SchemeSingle = "single"
	// SchemeDual uses two independent digests and a designated redeemer.
	SchemeDual = "dual"
	// SchemeCommitReveal splits redemption into a declaration and a
	// reveal to defeat front-running on an observable channel.
	SchemeCommitReveal = "commit_reveal"
)

// Configuration is the runtime configuration of the escrow extension,
// stored as a gconf singleton.
type Configuration struct {
	// Owner is the only address allowed to update this configuration and
	// to withdraw unlocked funds.
	Owner remittance.Address `json:"owner"`
	// Fee is skimmed from the principal of every future escrow.
	Fee uint64 `json:"fee"`
	// MaxFutureOffset bounds how far in the future the redeemable time
	// of a new escrow may lie.
	MaxFutureOffset remittance.UnixDuration `json:"max_future_offset"`
	// MaxExpiryOffset bounds how far in the future the expiry time of a
	// new escrow may lie.
	MaxExpiryOffset remittance.UnixDuration `json:"max_expiry_offset"`
	// Paused rejects every escrow mutating message while set, except the
	// configuration update itself.
	Paused bool `json:"paused"`
	// Scheme is the commitment scheme of this deployment. Immutable
	// after genesis.
	Scheme string `json:"scheme"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.MaxFutureOffset <= 0 {
		return errors.Wrap(errors.ErrInput, "max future offset must be positive")
	}
	if c.MaxExpiryOffset <= 0 {
		return errors.Wrap(errors.ErrInput, "max expiry offset must be positive")
	}
	switch c.Scheme {
	case SchemeSingle, SchemeDual, SchemeCommitReveal:
		// All good.
	default:
		return errors.Wrapf(errors.ErrInput, "unknown scheme %q", c.Scheme)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, "escrow", &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
