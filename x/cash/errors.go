package cash

import "github.com/CallMeGwei/b9labs-remittance/errors"

var (
	// ErrInsufficientFunds is returned when the source wallet does not
	// hold enough units to cover a transfer.
	ErrInsufficientFunds = errors.Register(1000, "insufficient funds")

	// ErrEmptyAccount is returned when transferring out of an address
	// that holds no wallet at all.
	ErrEmptyAccount = errors.Register(1001, "empty account")
)
