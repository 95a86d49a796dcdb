package escrow

import (
	"testing"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest/assert"
)

func TestCreateEscrowMsgValidate(t *testing.T) {
	cases := map[string]struct {
		mutator func(*CreateEscrowMsg)
		wantErr *errors.Error
	}{
		"valid": {},
		"missing src": {
			mutator: func(m *CreateEscrowMsg) { m.Src = nil },
			wantErr: errors.ErrInput,
		},
		"malformed redeemer": {
			mutator: func(m *CreateEscrowMsg) { m.Redeemer = []byte("too-short") },
			wantErr: errors.ErrInput,
		},
		"missing commitment": {
			mutator: func(m *CreateEscrowMsg) { m.Commitment = nil },
			wantErr: errors.ErrInput,
		},
		"missing expiry": {
			mutator: func(m *CreateEscrowMsg) {
				m.RedeemableFrom = 0
				m.ExpiresAt = 0
			},
			wantErr: ErrInvalidWindow,
		},
		"expiry equals redeemable time": {
			mutator: func(m *CreateEscrowMsg) { m.ExpiresAt = m.RedeemableFrom },
			wantErr: ErrInvalidWindow,
		},
		"zero principal": {
			mutator: func(m *CreateEscrowMsg) { m.Principal = 0 },
			wantErr: ErrInsufficientValue,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := &CreateEscrowMsg{
				Src:            remittancetest.NewCondition().Address(),
				Commitment:     Hash([]byte("secret")),
				RedeemableFrom: 100,
				ExpiresAt:      200,
				Principal:      1000,
			}
			if tc.mutator != nil {
				tc.mutator(msg)
			}
			err := msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestRedeemEscrowMsgValidate(t *testing.T) {
	cases := map[string]struct {
		mutator func(*RedeemEscrowMsg)
		wantErr *errors.Error
	}{
		"valid": {},
		"valid with salt": {
			mutator: func(m *RedeemEscrowMsg) { m.Salt = []byte("pepper") },
		},
		"short id": {
			mutator: func(m *RedeemEscrowMsg) { m.EscrowID = []byte{1, 2, 3} },
			wantErr: errors.ErrInput,
		},
		"missing preimage": {
			mutator: func(m *RedeemEscrowMsg) { m.Preimage = nil },
			wantErr: errors.ErrEmpty,
		},
		"oversized preimage": {
			mutator: func(m *RedeemEscrowMsg) { m.Preimage = make([]byte, maxPreimageSize+1) },
			wantErr: errors.ErrInput,
		},
		"oversized salt": {
			mutator: func(m *RedeemEscrowMsg) { m.Salt = make([]byte, maxSaltSize+1) },
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := &RedeemEscrowMsg{
				EscrowID: Hash([]byte("id")),
				Preimage: []byte("secret"),
			}
			if tc.mutator != nil {
				tc.mutator(msg)
			}
			err := msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestDeclareCommitmentMsgValidate(t *testing.T) {
	msg := &DeclareCommitmentMsg{
		EscrowID:           Hash([]byte("id")),
		VerificationDigest: VerificationDigest([]byte("secret"), []byte("salt")),
	}
	assert.Nil(t, msg.Validate())

	msg.VerificationDigest = []byte("short")
	assert.IsErr(t, errors.ErrInput, msg.Validate())
}

func TestUpdateRedeemerMsgValidate(t *testing.T) {
	msg := &UpdateRedeemerMsg{
		EscrowID:    Hash([]byte("id")),
		NewRedeemer: remittancetest.NewCondition().Address(),
	}
	assert.Nil(t, msg.Validate())

	msg.NewRedeemer = nil
	assert.IsErr(t, errors.ErrInput, msg.Validate())
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	msg := &UpdateConfigurationMsg{}
	assert.IsErr(t, errors.ErrEmpty, msg.Validate())

	msg.Patch = &Configuration{
		Owner:           remittancetest.NewCondition().Address(),
		Fee:             10,
		MaxFutureOffset: remittance.AsUnixDuration(oneHour),
		MaxExpiryOffset: remittance.AsUnixDuration(100 * oneHour),
		Scheme:          SchemeSingle,
	}
	assert.Nil(t, msg.Validate())

	msg.Patch.Scheme = "unknown"
	assert.IsErr(t, errors.ErrInput, msg.Validate())
}

func TestWithdrawMsgValidate(t *testing.T) {
	msg := &WithdrawMsg{
		Amount:      10,
		Destination: remittancetest.NewCondition().Address(),
	}
	assert.Nil(t, msg.Validate())

	msg.Amount = 0
	assert.IsErr(t, errors.ErrAmount, msg.Validate())

	msg.Amount = 10
	msg.Destination = nil
	assert.IsErr(t, errors.ErrInput, msg.Validate())
}

func TestMsgPaths(t *testing.T) {
	paths := map[remittance.Msg]string{
		&CreateEscrowMsg{}:        "escrow/create",
		&RedeemEscrowMsg{}:        "escrow/redeem",
		&RefundEscrowMsg{}:        "escrow/refund",
		&DeclareCommitmentMsg{}:   "escrow/declare",
		&UpdateRedeemerMsg{}:      "escrow/update_redeemer",
		&UpdateConfigurationMsg{}: "escrow/update_config",
		&WithdrawMsg{}:            "escrow/withdraw",
	}
	for msg, want := range paths {
		assert.Equal(t, want, msg.Path())
	}
}
