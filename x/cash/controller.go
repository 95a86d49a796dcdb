package cash

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
)

// Controller is the functionality needed by other handlers to move funds
// between accounts. This is implemented by BaseController and exposed as an
// interface so extensions do not bind to a concrete ledger.
type Controller interface {
	// Balance returns the units held by this address. A missing wallet
	// reports a zero balance.
	Balance(db remittance.ReadOnlyKVStore, addr remittance.Address) (uint64, error)

	// MoveCoins moves the given amount from src to dest.
	MoveCoins(db remittance.KVStore, src, dest remittance.Address, amount uint64) error

	// IssueCoins adds the given amount to the destination address,
	// creating the wallet when missing.
	IssueCoins(db remittance.KVStore, dest remittance.Address, amount uint64) error
}

// BaseController is a simple implementation of controller. It uses one
// bucket for all the wallets.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// Balance returns the amount of funds stored under given address. A missing
// wallet is reported as a zero balance, not an error.
func (c BaseController) Balance(db remittance.ReadOnlyKVStore, addr remittance.Address) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "cannot get wallet")
	}
	if w == nil {
		return 0, nil
	}
	return w.Balance(), nil
}

// MoveCoins moves the given amount from src to dest. If src doesn't exist,
// or doesn't have sufficient funds, it fails.
func (c BaseController) MoveCoins(db remittance.KVStore, src, dest remittance.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "same source and destination")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(ErrEmptyAccount, "%s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins attempts to add the given amount of funds to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db remittance.KVStore, dest remittance.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}
