/*
Package escrow implements a time-bounded, secret-committed value escrow.

A sender locks a quantity of value against a cryptographic commitment, a
digest of one or two secrets known only off platform. The value becomes
releasable to whoever proves knowledge of the secret(s) within the
redeemable-to-expiry window, and reverts to the sender once expired. A flat
per-escrow fee is skimmed on redemption into an operator controlled float.

Three commitment schemes are supported, picked per deployment:

  - single: one digest, redemption open to any holder of the secret
  - dual: two digests plus a designated redeemer identity
  - commit_reveal: redemption split into a declaration binding the caller
    identity to a private verification digest, followed by the reveal of
    the secret; an observer who copies the revealed secret cannot redeem
    because they never declared a matching digest for their own identity

The custody account holds every outstanding principal and the accrued fees.
A persistent counter tracks the aggregate locked principal. Whatever part
of custody is not locked can be withdrawn by the configuration owner,
which can never touch an outstanding escrow's funds.

All operations execute serialized by the hosting platform: one message is
fully processed, including its final value transfer, before the next
begins. No locking is needed inside the extension.
*/
package escrow
