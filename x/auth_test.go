package x

import (
	"context"
	"testing"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a := remittancetest.NewCondition()
	b := remittancetest.NewCondition()
	c := remittancetest.NewCondition()

	ctx := context.Background()

	cases := map[string]struct {
		auth       Authenticator
		mainSigner remittance.Condition
		has        []remittance.Address
		notHave    []remittance.Address
		all        []remittance.Address
	}{
		"empty auth": {
			auth:    &remittancetest.Auth{},
			notHave: []remittance.Address{a.Address(), b.Address()},
			all:     []remittance.Address{},
		},
		"single signer": {
			auth:       &remittancetest.Auth{Signer: a},
			mainSigner: a,
			has:        []remittance.Address{a.Address()},
			notHave:    []remittance.Address{b.Address()},
			all:        []remittance.Address{a.Address()},
		},
		"multiple signers": {
			auth:       &remittancetest.Auth{Signers: []remittance.Condition{a, b}},
			mainSigner: a,
			has:        []remittance.Address{a.Address(), b.Address()},
			notHave:    []remittance.Address{c.Address()},
			all:        []remittance.Address{a.Address(), b.Address()},
		},
		"chained authenticators": {
			auth: ChainAuth(
				&remittancetest.Auth{Signer: a},
				&remittancetest.Auth{Signer: c},
			),
			mainSigner: a,
			has:        []remittance.Address{a.Address(), c.Address()},
			notHave:    []remittance.Address{b.Address()},
			all:        []remittance.Address{a.Address(), c.Address()},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if tc.mainSigner != nil {
				assert.Equal(t, tc.mainSigner, MainSigner(ctx, tc.auth))
			} else {
				assert.Nil(t, MainSigner(ctx, tc.auth))
			}
			for _, addr := range tc.has {
				assert.True(t, tc.auth.HasAddress(ctx, addr))
			}
			for _, addr := range tc.notHave {
				assert.False(t, tc.auth.HasAddress(ctx, addr))
			}
			assert.True(t, HasAllAddresses(ctx, tc.auth, tc.all))
			if len(tc.notHave) != 0 {
				assert.False(t, HasAllAddresses(ctx, tc.auth, tc.notHave))
			}
		})
	}
}
