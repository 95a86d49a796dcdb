package escrow

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/orm"
	"github.com/CallMeGwei/b9labs-remittance/x/cash"
)

// lockedCounter tracks the aggregate principal obligated to outstanding
// escrows. It changes exactly once per creation (plus principal) and once
// per terminal transition (minus principal), keeping the invariant
//
//	locked == sum of principal over outstanding records
//
// which is what makes unlocked balance withdrawal safe.
var lockedCounter = orm.NewCounter(BucketName, "locked")

// Locked returns the aggregate principal of all outstanding escrows.
func Locked(db remittance.ReadOnlyKVStore) (uint64, error) {
	return lockedCounter.Current(db)
}

// lockPrincipal registers the principal of a newly created escrow.
func lockPrincipal(db remittance.KVStore, amount uint64) error {
	if _, err := lockedCounter.Increment(db, amount); err != nil {
		return errors.Wrap(err, "lock principal")
	}
	return nil
}

// unlockPrincipal releases the principal of a terminated escrow.
func unlockPrincipal(db remittance.KVStore, amount uint64) error {
	if _, err := lockedCounter.Decrement(db, amount); err != nil {
		return errors.Wrap(err, "unlock principal")
	}
	return nil
}

// AvailableForWithdrawal returns the custody funds not obligated to any
// outstanding escrow. Custody can never drop below locked, all custody
// mutations go through the escrow handlers.
func AvailableForWithdrawal(db remittance.ReadOnlyKVStore, ctrl cash.Controller) (uint64, error) {
	custody, err := ctrl.Balance(db, CustodyAddress())
	if err != nil {
		return 0, errors.Wrap(err, "custody balance")
	}
	locked, err := Locked(db)
	if err != nil {
		return 0, errors.Wrap(err, "locked balance")
	}
	if custody < locked {
		return 0, errors.Wrapf(errors.ErrState, "custody %d below locked %d", custody, locked)
	}
	return custody - locked, nil
}
