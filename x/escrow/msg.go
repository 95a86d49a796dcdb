package escrow

import (
	"encoding/json"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
)

const (
	pathCreate         = "escrow/create"
	pathRedeem         = "escrow/redeem"
	pathRefund         = "escrow/refund"
	pathDeclare        = "escrow/declare"
	pathUpdateRedeemer = "escrow/update_redeemer"
	pathUpdateConfig   = "escrow/update_config"
	pathWithdraw       = "escrow/withdraw"

	// maxPreimageSize bounds the size of a secret revealed at
	// redemption time.
	maxPreimageSize = 128
	// maxSaltSize bounds the salt of a commit-reveal declaration.
	maxSaltSize = 64
)

var (
	_ remittance.Msg = (*CreateEscrowMsg)(nil)
	_ remittance.Msg = (*RedeemEscrowMsg)(nil)
	_ remittance.Msg = (*RefundEscrowMsg)(nil)
	_ remittance.Msg = (*DeclareCommitmentMsg)(nil)
	_ remittance.Msg = (*UpdateRedeemerMsg)(nil)
	_ remittance.Msg = (*UpdateConfigurationMsg)(nil)
	_ remittance.Msg = (*WithdrawMsg)(nil)
)

// CreateEscrowMsg locks the principal of the sender against a commitment.
type CreateEscrowMsg struct {
	// Src is the sender, the account the principal is taken from.
	Src remittance.Address `json:"src"`
	// Redeemer optionally restricts who may execute the redemption.
	// Required by the dual digest scheme.
	Redeemer remittance.Address `json:"redeemer,omitempty"`
	// Commitment is the digest of the secret.
	Commitment []byte `json:"commitment"`
	// SecondCommitment is only used by the dual digest scheme.
	SecondCommitment []byte `json:"second_commitment,omitempty"`
	// RedeemableFrom is the earliest time redemption is permitted.
	RedeemableFrom remittance.UnixTime `json:"redeemable_from"`
	// ExpiresAt is the time at which only refund is permitted.
	ExpiresAt remittance.UnixTime `json:"expires_at"`
	// Principal is the value to lock, fee included.
	Principal uint64 `json:"principal"`
}

func (CreateEscrowMsg) Path() string {
	return pathCreate
}

func (m *CreateEscrowMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *CreateEscrowMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *CreateEscrowMsg) Validate() error {
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if m.Redeemer != nil {
		if err := m.Redeemer.Validate(); err != nil {
			return errors.Wrap(err, "redeemer")
		}
	}
	if err := validateCommitment(m.Commitment); err != nil {
		return errors.Wrap(err, "commitment")
	}
	if m.SecondCommitment != nil {
		if err := validateCommitment(m.SecondCommitment); err != nil {
			return errors.Wrap(err, "second commitment")
		}
	}
	if m.ExpiresAt == 0 {
		// Zero expiry dates to 1970-01-01, a value in the past that
		// makes no sense. Most likely it was not provided at all.
		return errors.Wrap(ErrInvalidWindow, "expiry is required")
	}
	if m.ExpiresAt <= m.RedeemableFrom {
		return errors.Wrap(ErrInvalidWindow, "expiry not after redeemable time")
	}
	if m.Principal == 0 {
		return errors.Wrap(ErrInsufficientValue, "principal is required")
	}
	return nil
}

// RedeemEscrowMsg releases the principal minus fee to the redeemer, given a
// valid proof of the committed secret(s).
type RedeemEscrowMsg struct {
	// EscrowID identifies the escrow to redeem.
	EscrowID []byte `json:"escrow_id"`
	// Preimage is the secret the commitment was derived from.
	Preimage []byte `json:"preimage"`
	// SecondPreimage is only used by the dual digest scheme.
	SecondPreimage []byte `json:"second_preimage,omitempty"`
	// Salt is only used by the commit reveal scheme and must match the
	// salt of the prior declaration.
	Salt []byte `json:"salt,omitempty"`
}

func (RedeemEscrowMsg) Path() string {
	return pathRedeem
}

func (m *RedeemEscrowMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *RedeemEscrowMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *RedeemEscrowMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if err := validatePreimage(m.Preimage); err != nil {
		return errors.Wrap(err, "preimage")
	}
	if m.SecondPreimage != nil {
		if err := validatePreimage(m.SecondPreimage); err != nil {
			return errors.Wrap(err, "second preimage")
		}
	}
	if len(m.Salt) > maxSaltSize {
		return errors.Wrapf(errors.ErrInput, "salt longer than %d bytes", maxSaltSize)
	}
	return nil
}

// RefundEscrowMsg returns the full principal of an expired escrow to its
// sender. Anyone may trigger it.
type RefundEscrowMsg struct {
	// EscrowID identifies the escrow to refund.
	EscrowID []byte `json:"escrow_id"`
}

func (RefundEscrowMsg) Path() string {
	return pathRefund
}

func (m *RefundEscrowMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *RefundEscrowMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *RefundEscrowMsg) Validate() error {
	return validateEscrowID(m.EscrowID)
}

// DeclareCommitmentMsg binds the caller identity to a verification digest
// before the secret is revealed on an observable channel. First phase of the
// commit reveal scheme.
type DeclareCommitmentMsg struct {
	// EscrowID identifies the escrow the declaration is bound to.
	EscrowID []byte `json:"escrow_id"`
	// VerificationDigest is computed off platform as the digest of the
	// secret and a caller chosen salt.
	VerificationDigest []byte `json:"verification_digest"`
}

func (DeclareCommitmentMsg) Path() string {
	return pathDeclare
}

func (m *DeclareCommitmentMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *DeclareCommitmentMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *DeclareCommitmentMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if err := validateCommitment(m.VerificationDigest); err != nil {
		return errors.Wrap(err, "verification digest")
	}
	return nil
}

// UpdateRedeemerMsg reassigns the redemption rights of an outstanding
// escrow. Only the sender may do this.
type UpdateRedeemerMsg struct {
	// EscrowID identifies the escrow to update.
	EscrowID []byte `json:"escrow_id"`
	// NewRedeemer replaces the current redeemer.
	NewRedeemer remittance.Address `json:"new_redeemer"`
}

func (UpdateRedeemerMsg) Path() string {
	return pathUpdateRedeemer
}

func (m *UpdateRedeemerMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *UpdateRedeemerMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *UpdateRedeemerMsg) Validate() error {
	if err := validateEscrowID(m.EscrowID); err != nil {
		return err
	}
	if err := m.NewRedeemer.Validate(); err != nil {
		return errors.Wrap(err, "new redeemer")
	}
	return nil
}

// UpdateConfigurationMsg replaces the extension configuration. Only the
// current owner may do this. The fee change applies to future creations
// only, outstanding records keep their snapshot.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfig
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch is required")
	}
	return m.Patch.Validate()
}

// WithdrawMsg moves unlocked custody funds (accrued fees) to a destination.
// Only the owner may do this.
type WithdrawMsg struct {
	// Amount of units to withdraw.
	Amount uint64 `json:"amount"`
	// Destination receives the funds.
	Destination remittance.Address `json:"destination"`
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m *WithdrawMsg) Marshal() ([]byte, error) { return json.Marshal(m) }

func (m *WithdrawMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func (m *WithdrawMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount is required")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

func validateEscrowID(id []byte) error {
	if len(id) != commitmentSize {
		return errors.Wrapf(errors.ErrInput, "escrow id must be exactly %d bytes", commitmentSize)
	}
	return nil
}

func validatePreimage(preimage []byte) error {
	if len(preimage) == 0 {
		return errors.Wrap(errors.ErrEmpty, "preimage is required")
	}
	if len(preimage) > maxPreimageSize {
		return errors.Wrapf(errors.ErrInput, "preimage longer than %d bytes", maxPreimageSize)
	}
	return nil
}
