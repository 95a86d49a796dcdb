package escrow

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
)

// Time only gates which caller initiated transition is currently permitted,
// nothing transitions automatically. Before RedeemableFrom neither
// redemption nor refund is possible. From RedeemableFrom up to (excluding)
// ExpiresAt only redemption is allowed. At and after ExpiresAt only refund.

// isRedeemable returns true if the escrow may be redeemed at the block time
// of the context.
func isRedeemable(ctx remittance.Context, e *Escrow) bool {
	return remittance.IsExpired(ctx, e.RedeemableFrom) && !remittance.IsExpired(ctx, e.ExpiresAt)
}

// isExpired returns true if the escrow may be refunded at the block time of
// the context.
func isExpired(ctx remittance.Context, e *Escrow) bool {
	return remittance.IsExpired(ctx, e.ExpiresAt)
}

// validateWindow enforces the creation time bounds: expiry strictly after
// the redeemable time, expiry strictly in the future, and both times within
// their configured maximum offsets from now. Unbounded windows would lock
// funds no operator or auditor can reason about.
func validateWindow(ctx remittance.Context, conf Configuration, redeemableFrom, expiresAt remittance.UnixTime) error {
	if expiresAt <= redeemableFrom {
		return errors.Wrap(ErrInvalidWindow, "expiry not after redeemable time")
	}
	now, ok := remittance.BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	if remittance.IsExpired(ctx, expiresAt) {
		return errors.Wrap(ErrInvalidWindow, "expiry not in the future")
	}
	if redeemableFrom > remittance.AsUnixTime(now).Add(conf.MaxFutureOffset.Duration()) {
		return errors.Wrapf(ErrInvalidWindow, "redeemable time further than %s ahead", conf.MaxFutureOffset)
	}
	if expiresAt > remittance.AsUnixTime(now).Add(conf.MaxExpiryOffset.Duration()) {
		return errors.Wrapf(ErrInvalidWindow, "expiry further than %s ahead", conf.MaxExpiryOffset)
	}
	return nil
}
