package escrow

import (
	"crypto/sha256"
	"encoding/json"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/orm"
)

// BucketName is where we store the escrows.
const BucketName = "escrow"

// commitmentSize is the size of every commitment digest (sha256).
const commitmentSize = 32

// Escrow is a quantity of value locked against a cryptographic commitment
// until either a proof of the committed secret(s) releases it or the expiry
// time allows a refund.
type Escrow struct {
	// Sender created the escrow and receives the refund.
	Sender remittance.Address `json:"sender"`
	// Redeemer, when set, is the only identity allowed to execute the
	// redemption. Required by the dual digest scheme, optional otherwise.
	Redeemer remittance.Address `json:"redeemer,omitempty"`
	// Commitment is the digest of the secret.
	Commitment []byte `json:"commitment"`
	// SecondCommitment is the digest of the second secret. Only used by
	// the dual digest scheme.
	SecondCommitment []byte `json:"second_commitment,omitempty"`
	// RedeemableFrom is the earliest time redemption is permitted.
	RedeemableFrom remittance.UnixTime `json:"redeemable_from"`
	// ExpiresAt is the time at which only refund is permitted.
	ExpiresAt remittance.UnixTime `json:"expires_at"`
	// Principal is the amount locked at creation, immutable.
	Principal uint64 `json:"principal"`
	// Fee is the fee amount captured at creation time, immutable.
	Fee uint64 `json:"fee"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, e)
}

func (e *Escrow) Validate() error {
	if err := e.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if e.Redeemer != nil {
		if err := e.Redeemer.Validate(); err != nil {
			return errors.Wrap(err, "redeemer")
		}
	}
	if err := validateCommitment(e.Commitment); err != nil {
		return errors.Wrap(err, "commitment")
	}
	if e.SecondCommitment != nil {
		if err := validateCommitment(e.SecondCommitment); err != nil {
			return errors.Wrap(err, "second commitment")
		}
	}
	if e.ExpiresAt <= e.RedeemableFrom {
		return errors.Wrap(ErrInvalidWindow, "expiry not after redeemable time")
	}
	if e.Principal == 0 {
		return errors.Wrap(errors.ErrAmount, "principal is required")
	}
	if e.Fee >= e.Principal {
		return errors.Wrap(ErrInsufficientValue, "fee consumes principal")
	}
	return nil
}

func (e *Escrow) Copy() orm.Model {
	cpy := &Escrow{
		RedeemableFrom: e.RedeemableFrom,
		ExpiresAt:      e.ExpiresAt,
		Principal:      e.Principal,
		Fee:            e.Fee,
	}
	if e.Sender != nil {
		cpy.Sender = append(remittance.Address(nil), e.Sender...)
	}
	if e.Redeemer != nil {
		cpy.Redeemer = append(remittance.Address(nil), e.Redeemer...)
	}
	if e.Commitment != nil {
		cpy.Commitment = append([]byte(nil), e.Commitment...)
	}
	if e.SecondCommitment != nil {
		cpy.SecondCommitment = append([]byte(nil), e.SecondCommitment...)
	}
	return cpy
}

func validateCommitment(c []byte) error {
	if len(c) != commitmentSize {
		return errors.Wrapf(errors.ErrInput, "commitment is sha256 and therefore must be exactly %d bytes", commitmentSize)
	}
	return nil
}

// NewEscrowID derives the escrow identifier from the commitment digest(s).
// With a single commitment the digest itself is the id, so any holder of the
// secret can address the escrow directly. With two commitments the id is the
// digest of their concatenation.
func NewEscrowID(commitment, secondCommitment []byte) []byte {
	if len(secondCommitment) == 0 {
		return commitment
	}
	h := sha256.New()
	h.Write(commitment)
	h.Write(secondCommitment)
	return h.Sum(nil)
}

// Custody is the condition of the account holding all escrowed value and
// accrued fees.
var Custody = remittance.NewCondition("escrow", "custody", []byte("main"))

// CustodyAddress returns the address of the custody account.
func CustodyAddress() remittance.Address {
	return Custody.Address()
}

// AsEscrow extracts an *Escrow value or nil from the object.
func AsEscrow(obj orm.Object) *Escrow {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Escrow)
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes an escrow bucket.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Escrow{})),
	}
}

// Save enforces the proper model type.
func (b Bucket) Save(db remittance.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Escrow); !ok {
		return errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}
