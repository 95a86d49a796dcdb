package escrow

import "github.com/CallMeGwei/b9labs-remittance/errors"

var (
	// ErrInsufficientValue is returned when the attached principal does
	// not strictly exceed the currently configured fee.
	ErrInsufficientValue = errors.Register(1010, "insufficient value")

	// ErrInvalidWindow is returned when the redeemable or expiry time of
	// a new escrow violates the creation time bounds.
	ErrInvalidWindow = errors.Register(1011, "invalid time window")

	// ErrNotRedeemable is returned when redemption is attempted outside
	// of the redeemable window.
	ErrNotRedeemable = errors.Register(1012, "not redeemable")

	// ErrNotExpired is returned when a refund is attempted before the
	// escrow expired.
	ErrNotExpired = errors.Register(1013, "not expired")

	// ErrProofMismatch is returned when the supplied proof material does
	// not match the stored commitment.
	ErrProofMismatch = errors.Register(1014, "proof mismatch")

	// ErrInsufficientUnlocked is returned when a withdrawal asks for
	// more than the custody balance not obligated to outstanding
	// escrows.
	ErrInsufficientUnlocked = errors.Register(1015, "insufficient unlocked funds")
)
