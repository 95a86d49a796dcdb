package escrow

import (
	"encoding/hex"
	"fmt"
	"strconv"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/gconf"
	"github.com/CallMeGwei/b9labs-remittance/orm"
	"github.com/CallMeGwei/b9labs-remittance/x"
	"github.com/CallMeGwei/b9labs-remittance/x/cash"
)

const (
	// pay escrow cost up-front
	createEscrowCost  int64 = 300
	redeemEscrowCost  int64 = 0
	refundEscrowCost  int64 = 0
	declareCost       int64 = 100
	updateEscrowCost  int64 = 50
	updateConfigCost  int64 = 50
	withdrawFloatCost int64 = 0
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r remittance.Registry, auth x.Authenticator, ctrl cash.Controller) {
	bucket := NewBucket()
	decls := NewDeclarationBucket()

	r.Handle(pathCreate, CreateEscrowHandler{auth, bucket, ctrl})
	r.Handle(pathRedeem, RedeemEscrowHandler{auth, bucket, decls, ctrl})
	r.Handle(pathRefund, RefundEscrowHandler{auth, bucket, decls, ctrl})
	r.Handle(pathDeclare, DeclareCommitmentHandler{auth, bucket, decls})
	r.Handle(pathUpdateRedeemer, UpdateRedeemerHandler{auth, bucket})
	r.Handle(pathUpdateConfig, UpdateConfigurationHandler{auth})
	r.Handle(pathWithdraw, WithdrawHandler{auth, ctrl})
}

//---- create

// CreateEscrowHandler locks the principal against the commitment.
type CreateEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	cash   cash.Controller
}

var _ remittance.Handler = CreateEscrowHandler{}

// Check does the validation and sets the cost of the transaction.
func (h CreateEscrowHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver stores the record and moves the principal from the sender to the
// custody account if all conditions are met.
func (h CreateEscrowHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, conf, id, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	esc := &Escrow{
		Sender:           msg.Src,
		Redeemer:         msg.Redeemer,
		Commitment:       msg.Commitment,
		SecondCommitment: msg.SecondCommitment,
		RedeemableFrom:   msg.RedeemableFrom,
		ExpiresAt:        msg.ExpiresAt,
		Principal:        msg.Principal,
		Fee:              conf.Fee,
	}
	if err := h.bucket.Save(db, orm.NewSimpleObj(id, esc)); err != nil {
		return nil, err
	}
	if err := lockPrincipal(db, esc.Principal); err != nil {
		return nil, err
	}

	// The value transfer is the last step, all bookkeeping must reach
	// its final form before funds move.
	if err := h.cash.MoveCoins(db, esc.Sender, CustodyAddress(), esc.Principal); err != nil {
		return nil, err
	}

	tags := []remittance.KVPair{
		remittance.Pair("action", "create_escrow"),
		remittance.Pair("escrow_id", hex.EncodeToString(id)),
		remittance.Pair("sender", esc.Sender.String()),
		remittance.Pair("amount", strconv.FormatUint(esc.Principal, 10)),
		remittance.Pair("fee", strconv.FormatUint(esc.Fee, 10)),
		remittance.Pair("locked_delta", fmt.Sprintf("+%d", esc.Principal)),
		remittance.Pair("unlocked_delta", "+0"),
	}
	if esc.Redeemer != nil {
		tags = append(tags, remittance.Pair("redeemer", esc.Redeemer.String()))
	}
	return &remittance.DeliverResult{Data: id, Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*CreateEscrowMsg, Configuration, []byte, error) {
	var msg CreateEscrowMsg
	var conf Configuration
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, conf, nil, errors.Wrap(err, "load msg")
	}

	// Sender must authorize this.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, conf, nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, conf, nil, err
	}

	// An escrow must have positive net value after the fee.
	if msg.Principal <= conf.Fee {
		return nil, conf, nil, errors.Wrapf(ErrInsufficientValue, "principal %d does not exceed fee %d", msg.Principal, conf.Fee)
	}

	switch conf.Scheme {
	case SchemeDual:
		if msg.SecondCommitment == nil {
			return nil, conf, nil, errors.Wrap(errors.ErrMsg, "second commitment required by scheme")
		}
		if msg.Redeemer == nil {
			return nil, conf, nil, errors.Wrap(errors.ErrMsg, "redeemer required by scheme")
		}
	default:
		if msg.SecondCommitment != nil {
			return nil, conf, nil, errors.Wrap(errors.ErrMsg, "second commitment not supported by scheme")
		}
	}

	if err := validateWindow(ctx, conf, msg.RedeemableFrom, msg.ExpiresAt); err != nil {
		return nil, conf, nil, err
	}

	id := NewEscrowID(msg.Commitment, msg.SecondCommitment)
	switch has, err := h.bucket.Has(db, id); {
	case err != nil:
		return nil, conf, nil, err
	case has:
		return nil, conf, nil, errors.Wrapf(errors.ErrDuplicate, "outstanding escrow %X", id)
	}

	return &msg, conf, id, nil
}

//---- redeem

// RedeemEscrowHandler releases the principal minus fee to the redeemer.
type RedeemEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	decls  DeclarationBucket
	cash   cash.Controller
}

var _ remittance.Handler = RedeemEscrowHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h RedeemEscrowHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: redeemEscrowCost}, nil
}

// Deliver terminates the escrow and moves the principal minus fee from the
// custody account to the recipient. The fee stays in custody, becoming
// withdrawable once the principal is unlocked.
func (h RedeemEscrowHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, esc, recipient, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Terminal bookkeeping first: delete the record, purge its
	// declarations and unlock the principal. Only then the transfer. A
	// reentrant call triggered by the transfer can never observe a still
	// outstanding record.
	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, err
	}
	if err := h.decls.Purge(db, msg.EscrowID); err != nil {
		return nil, err
	}
	if err := unlockPrincipal(db, esc.Principal); err != nil {
		return nil, err
	}

	delivered := esc.Principal - esc.Fee
	if err := h.cash.MoveCoins(db, CustodyAddress(), recipient, delivered); err != nil {
		return nil, err
	}

	tags := []remittance.KVPair{
		remittance.Pair("action", "redeem_escrow"),
		remittance.Pair("escrow_id", hex.EncodeToString(msg.EscrowID)),
		remittance.Pair("redeemer", recipient.String()),
		remittance.Pair("delivered", strconv.FormatUint(delivered, 10)),
		remittance.Pair("fee", strconv.FormatUint(esc.Fee, 10)),
		remittance.Pair("locked_delta", fmt.Sprintf("-%d", esc.Principal)),
		remittance.Pair("unlocked_delta", fmt.Sprintf("+%d", esc.Fee)),
	}
	return &remittance.DeliverResult{Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RedeemEscrowHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*RedeemEscrowMsg, *Escrow, remittance.Address, error) {
	var msg RedeemEscrowMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, err
	}

	esc, err := loadEscrow(h.bucket, db, msg.EscrowID)
	if err != nil {
		return nil, nil, nil, err
	}

	// Once expired, only refund is permitted.
	if isExpired(ctx, esc) {
		return nil, nil, nil, errors.Wrapf(ErrNotRedeemable, "expired at %s", esc.ExpiresAt)
	}
	if !isRedeemable(ctx, esc) {
		return nil, nil, nil, errors.Wrapf(ErrNotRedeemable, "redeemable from %s", esc.RedeemableFrom)
	}

	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}

	// A designated redeemer is the only identity allowed to execute the
	// redemption, even if the secrets leak.
	if esc.Redeemer != nil && !h.auth.HasAddress(ctx, esc.Redeemer) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the designated redeemer")
	}

	if err := verifyProof(db, h.decls, conf.Scheme, msg.EscrowID, esc, &msg, caller.Address()); err != nil {
		return nil, nil, nil, err
	}

	recipient := esc.Redeemer
	if recipient == nil {
		recipient = caller.Address()
	}
	return &msg, esc, recipient, nil
}

//---- refund

// RefundEscrowHandler returns the full principal of an expired escrow to
// its sender. Anyone may execute it, the funds always go to the recorded
// sender.
type RefundEscrowHandler struct {
	auth   x.Authenticator
	bucket Bucket
	decls  DeclarationBucket
	cash   cash.Controller
}

var _ remittance.Handler = RefundEscrowHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h RefundEscrowHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver terminates the escrow and moves the full principal from the
// custody account back to the sender. No fee is retained on refund.
func (h RefundEscrowHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.bucket.Delete(db, msg.EscrowID); err != nil {
		return nil, err
	}
	if err := h.decls.Purge(db, msg.EscrowID); err != nil {
		return nil, err
	}
	if err := unlockPrincipal(db, esc.Principal); err != nil {
		return nil, err
	}

	if err := h.cash.MoveCoins(db, CustodyAddress(), esc.Sender, esc.Principal); err != nil {
		return nil, err
	}

	executor := "(unknown)"
	if signer := x.MainSigner(ctx, h.auth); signer != nil {
		executor = signer.Address().String()
	}
	tags := []remittance.KVPair{
		remittance.Pair("action", "refund_escrow"),
		remittance.Pair("escrow_id", hex.EncodeToString(msg.EscrowID)),
		remittance.Pair("executor", executor),
		remittance.Pair("recipient", esc.Sender.String()),
		remittance.Pair("amount", strconv.FormatUint(esc.Principal, 10)),
		remittance.Pair("locked_delta", fmt.Sprintf("-%d", esc.Principal)),
		remittance.Pair("unlocked_delta", "+0"),
	}
	return &remittance.DeliverResult{Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h RefundEscrowHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*RefundEscrowMsg, *Escrow, error) {
	var msg RefundEscrowMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	esc, err := loadEscrow(h.bucket, db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if !isExpired(ctx, esc) {
		return nil, nil, errors.Wrapf(ErrNotExpired, "expires at %s", esc.ExpiresAt)
	}
	return &msg, esc, nil
}

//---- declare

// DeclareCommitmentHandler binds the caller identity to a verification
// digest, first phase of the commit reveal scheme.
type DeclareCommitmentHandler struct {
	auth   x.Authenticator
	bucket Bucket
	decls  DeclarationBucket
}

var _ remittance.Handler = DeclareCommitmentHandler{}

func (h DeclareCommitmentHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: declareCost}, nil
}

func (h DeclareCommitmentHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, declarer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.decls.Declare(db, msg.EscrowID, declarer, msg.VerificationDigest); err != nil {
		return nil, err
	}

	tags := []remittance.KVPair{
		remittance.Pair("action", "declare_commitment"),
		remittance.Pair("escrow_id", hex.EncodeToString(msg.EscrowID)),
		remittance.Pair("declarer", declarer.String()),
	}
	return &remittance.DeliverResult{Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DeclareCommitmentHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*DeclareCommitmentMsg, remittance.Address, error) {
	var msg DeclareCommitmentMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if conf.Scheme != SchemeCommitReveal {
		return nil, nil, errors.Wrapf(errors.ErrState, "declarations not supported by scheme %q", conf.Scheme)
	}

	// The escrow must be outstanding, declarations never outlive it.
	if _, err := loadEscrow(h.bucket, db, msg.EscrowID); err != nil {
		return nil, nil, err
	}

	caller := x.MainSigner(ctx, h.auth)
	if caller == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, caller.Address(), nil
}

//---- update redeemer

// UpdateRedeemerHandler reassigns redemption rights, sender only.
type UpdateRedeemerHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ remittance.Handler = UpdateRedeemerHandler{}

func (h UpdateRedeemerHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: updateEscrowCost}, nil
}

func (h UpdateRedeemerHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, esc, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	esc.Redeemer = msg.NewRedeemer
	if err := h.bucket.Save(db, orm.NewSimpleObj(msg.EscrowID, esc)); err != nil {
		return nil, err
	}

	tags := []remittance.KVPair{
		remittance.Pair("action", "update_redeemer"),
		remittance.Pair("escrow_id", hex.EncodeToString(msg.EscrowID)),
		remittance.Pair("redeemer", msg.NewRedeemer.String()),
	}
	return &remittance.DeliverResult{Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h UpdateRedeemerHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*UpdateRedeemerMsg, *Escrow, error) {
	var msg UpdateRedeemerMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	esc, err := loadEscrow(h.bucket, db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	// Only the sender may redirect redemption rights.
	if !h.auth.HasAddress(ctx, esc.Sender) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
	}
	return &msg, esc, nil
}

//---- update configuration

// UpdateConfigurationHandler replaces the extension configuration, owner
// only. The fee change applies to future creations, outstanding records
// keep their snapshot.
type UpdateConfigurationHandler struct {
	auth x.Authenticator
}

var _ remittance.Handler = UpdateConfigurationHandler{}

func (h UpdateConfigurationHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: updateConfigCost}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := gconf.Save(db, "escrow", msg.Patch); err != nil {
		return nil, err
	}

	tags := []remittance.KVPair{
		remittance.Pair("action", "update_configuration"),
		remittance.Pair("fee", strconv.FormatUint(msg.Patch.Fee, 10)),
		remittance.Pair("paused", strconv.FormatBool(msg.Patch.Paused)),
		remittance.Pair("owner", msg.Patch.Owner.String()),
	}
	return &remittance.DeliverResult{Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h UpdateConfigurationHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*UpdateConfigurationMsg, error) {
	var msg UpdateConfigurationMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	// Changing the scheme would break the proofs of every outstanding
	// record.
	if msg.Patch.Scheme != conf.Scheme {
		return nil, errors.Wrap(errors.ErrImmutable, "scheme cannot change")
	}
	return &msg, nil
}

//---- withdraw

// WithdrawHandler moves unlocked custody funds out of the system, owner
// only. It can never touch the principal of an outstanding escrow.
type WithdrawHandler struct {
	auth x.Authenticator
	cash cash.Controller
}

var _ remittance.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &remittance.CheckResult{GasAllocated: withdrawFloatCost}, nil
}

func (h WithdrawHandler) Deliver(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*remittance.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.cash.MoveCoins(db, CustodyAddress(), msg.Destination, msg.Amount); err != nil {
		return nil, err
	}

	tags := []remittance.KVPair{
		remittance.Pair("action", "withdraw"),
		remittance.Pair("destination", msg.Destination.String()),
		remittance.Pair("amount", strconv.FormatUint(msg.Amount, 10)),
		remittance.Pair("unlocked_delta", fmt.Sprintf("-%d", msg.Amount)),
	}
	return &remittance.DeliverResult{Tags: tags}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h WithdrawHandler) validate(ctx remittance.Context, db remittance.KVStore, tx remittance.Tx) (*WithdrawMsg, error) {
	var msg WithdrawMsg
	if err := remittance.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}

	available, err := AvailableForWithdrawal(db, h.cash)
	if err != nil {
		return nil, err
	}
	if msg.Amount > available {
		return nil, errors.Wrapf(ErrInsufficientUnlocked, "%d available, want %d", available, msg.Amount)
	}
	return &msg, nil
}

// loadEscrow loads an escrow and casts it, fails with not found when there
// is no outstanding record under this id.
func loadEscrow(bucket Bucket, db remittance.ReadOnlyKVStore, escrowID []byte) (*Escrow, error) {
	obj, err := bucket.Get(db, escrowID)
	if err != nil {
		return nil, err
	}
	esc := AsEscrow(obj)
	if esc == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %X", escrowID)
	}
	return esc, nil
}
