package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/orm"
)

// DeclarationBucketName is where we store the commit reveal declarations.
const DeclarationBucketName = "declare"

// Hash computes the commitment digest of a secret.
func Hash(preimage []byte) []byte {
	h := sha256.Sum256(preimage)
	return h[:]
}

// VerificationDigest computes the digest a redeemer declares before
// revealing the secret: the digest of the secret and a self chosen salt.
func VerificationDigest(preimage, salt []byte) []byte {
	h := sha256.New()
	h.Write(preimage)
	h.Write(salt)
	return h.Sum(nil)
}

// Declaration binds a declarer identity to a verification digest for one
// escrow. Stored keyed by escrow id and declarer address, so distinct
// identities can never share a declaration.
type Declaration struct {
	// Declarer is the identity that may benefit from revealing the
	// secret.
	Declarer remittance.Address `json:"declarer"`
	// Digest is the declared verification digest.
	Digest []byte `json:"digest"`
}

var _ orm.Model = (*Declaration)(nil)

func (d *Declaration) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Declaration) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, d)
}

func (d *Declaration) Validate() error {
	if err := d.Declarer.Validate(); err != nil {
		return errors.Wrap(err, "declarer")
	}
	if err := validateCommitment(d.Digest); err != nil {
		return errors.Wrap(err, "digest")
	}
	return nil
}

func (d *Declaration) Copy() orm.Model {
	cpy := &Declaration{}
	if d.Declarer != nil {
		cpy.Declarer = append(remittance.Address(nil), d.Declarer...)
	}
	if d.Digest != nil {
		cpy.Digest = append([]byte(nil), d.Digest...)
	}
	return cpy
}

// DeclarationBucket is a type-safe wrapper around orm.Bucket.
type DeclarationBucket struct {
	orm.Bucket
}

// NewDeclarationBucket initializes a declarations bucket.
func NewDeclarationBucket() DeclarationBucket {
	return DeclarationBucket{
		Bucket: orm.NewBucket(DeclarationBucketName, orm.NewSimpleObj(nil, &Declaration{})),
	}
}

// declarationKey builds the composite key. Both parts are of fixed size so
// the concatenation is unambiguous.
func declarationKey(escrowID []byte, declarer remittance.Address) []byte {
	key := make([]byte, 0, len(escrowID)+len(declarer))
	key = append(key, escrowID...)
	return append(key, declarer...)
}

// Declare stores the digest for given escrow and declarer, replacing any
// previous declaration of the same identity.
func (b DeclarationBucket) Declare(db remittance.KVStore, escrowID []byte, declarer remittance.Address, digest []byte) error {
	decl := &Declaration{Declarer: declarer, Digest: digest}
	obj := orm.NewSimpleObj(declarationKey(escrowID, declarer), decl)
	return b.Bucket.Save(db, obj)
}

// Get returns the declaration of given identity for given escrow, or nil if
// none was made.
func (b DeclarationBucket) Get(db remittance.ReadOnlyKVStore, escrowID []byte, declarer remittance.Address) (*Declaration, error) {
	obj, err := b.Bucket.Get(db, declarationKey(escrowID, declarer))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.Value().(*Declaration), nil
}

// Purge removes every declaration bound to given escrow id. Called on
// terminal transitions, so a later escrow reusing the same id cannot be
// redeemed through a stale declaration.
func (b DeclarationBucket) Purge(db remittance.KVStore, escrowID []byte) error {
	objs, err := b.GetPrefix(db, escrowID)
	if err != nil {
		return errors.Wrap(err, "scan declarations")
	}
	for _, obj := range objs {
		if err := b.Delete(db, obj.Key()); err != nil {
			return errors.Wrap(err, "delete declaration")
		}
	}
	return nil
}

// verifyProof checks the proof material of a redemption attempt against the
// stored commitments under the configured scheme. It either fully accepts
// or rejects, no partial application.
func verifyProof(db remittance.ReadOnlyKVStore, decls DeclarationBucket, scheme string, escrowID []byte, esc *Escrow, msg *RedeemEscrowMsg, caller remittance.Address) error {
	switch scheme {
	case SchemeSingle:
		if !bytes.Equal(Hash(msg.Preimage), esc.Commitment) {
			return errors.Wrap(ErrProofMismatch, "wrong preimage")
		}
		return nil

	case SchemeDual:
		if len(msg.SecondPreimage) == 0 {
			return errors.Wrap(ErrProofMismatch, "second preimage is required")
		}
		if !bytes.Equal(Hash(msg.Preimage), esc.Commitment) {
			return errors.Wrap(ErrProofMismatch, "wrong preimage")
		}
		if !bytes.Equal(Hash(msg.SecondPreimage), esc.SecondCommitment) {
			return errors.Wrap(ErrProofMismatch, "wrong second preimage")
		}
		return nil

	case SchemeCommitReveal:
		decl, err := decls.Get(db, escrowID, caller)
		if err != nil {
			return errors.Wrap(err, "get declaration")
		}
		if decl == nil {
			return errors.Wrap(ErrProofMismatch, "no prior declaration for this identity")
		}
		if !bytes.Equal(VerificationDigest(msg.Preimage, msg.Salt), decl.Digest) {
			return errors.Wrap(ErrProofMismatch, "declaration does not match")
		}
		if !bytes.Equal(Hash(msg.Preimage), esc.Commitment) {
			return errors.Wrap(ErrProofMismatch, "wrong preimage")
		}
		return nil

	default:
		return errors.Wrapf(errors.ErrState, "unknown scheme %q", scheme)
	}
}
