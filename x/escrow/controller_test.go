package escrow

import (
	"encoding/json"
	"testing"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest"
	"github.com/CallMeGwei/b9labs-remittance/remittancetest/assert"
	"github.com/CallMeGwei/b9labs-remittance/store"
	"github.com/CallMeGwei/b9labs-remittance/x/cash"
)

func TestLockedCounter(t *testing.T) {
	db := store.MemStore()

	locked, err := Locked(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), locked)

	assert.Nil(t, lockPrincipal(db, 1000))
	assert.Nil(t, lockPrincipal(db, 500))
	locked, err = Locked(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1500), locked)

	assert.Nil(t, unlockPrincipal(db, 1000))
	locked, err = Locked(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(500), locked)

	// Unlocking more than locked means an accounting bug, never a
	// silent wrap around.
	err = unlockPrincipal(db, 501)
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestAvailableForWithdrawal(t *testing.T) {
	db := store.MemStore()
	ctrl := cash.NewController()

	// Empty custody, nothing locked.
	available, err := AvailableForWithdrawal(db, ctrl)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), available)

	// Custody 1000, locked 900: the 100 difference is the float.
	assert.Nil(t, ctrl.IssueCoins(db, CustodyAddress(), 1000))
	assert.Nil(t, lockPrincipal(db, 900))
	available, err = AvailableForWithdrawal(db, ctrl)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), available)

	// Locked above custody is a corrupted state and must be reported.
	assert.Nil(t, lockPrincipal(db, 200))
	_, err = AvailableForWithdrawal(db, ctrl)
	assert.IsErr(t, errors.ErrState, err)
}

func TestInitializer(t *testing.T) {
	db := store.MemStore()
	owner := remittancetest.NewCondition()

	opts := remittance.Options{
		"conf": marshalRaw(t, map[string]interface{}{
			"escrow": map[string]interface{}{
				"owner":             owner.Address(),
				"fee":               10,
				"max_future_offset": "24h",
				"max_expiry_offset": "72h",
				"scheme":            "single",
			},
		}),
	}

	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	conf, err := loadConf(db)
	assert.Nil(t, err)
	assert.Equal(t, owner.Address(), conf.Owner)
	assert.Equal(t, uint64(10), conf.Fee)
	assert.Equal(t, SchemeSingle, conf.Scheme)
}

func marshalRaw(t testing.TB, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	assert.Nil(t, err)
	return raw
}
