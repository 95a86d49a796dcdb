package orm

import (
	"encoding/binary"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
)

// Counter maintains a persistent unsigned counter that can be moved up and
// down by arbitrary amounts. It is using the following pattern to construct
// its db key:
//
//	_n.<bucket>:<name>
type Counter struct {
	id []byte
}

// NewCounter returns a persistent counter. The zero state of a counter is 0.
func NewCounter(bucket, name string) Counter {
	id := "_n." + bucket + ":" + name
	return Counter{
		id: []byte(id),
	}
}

// Current returns the counter state without modifying it.
func (c Counter) Current(db remittance.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(c.id)
	if err != nil {
		return 0, err
	}
	return decodeCounter(raw), nil
}

// Increment moves the counter up by amount and returns the new state.
func (c Counter) Increment(db remittance.KVStore, amount uint64) (uint64, error) {
	val, err := c.Current(db)
	if err != nil {
		return 0, err
	}
	if val+amount < val {
		return 0, errors.Wrap(errors.ErrOverflow, "counter")
	}
	val += amount
	if err := db.Set(c.id, encodeCounter(val)); err != nil {
		return 0, err
	}
	return val, nil
}

// Decrement moves the counter down by amount and returns the new state.
// Moving below zero means the callers bookkeeping is broken and is answered
// with an error rather than a wrap-around.
func (c Counter) Decrement(db remittance.KVStore, amount uint64) (uint64, error) {
	val, err := c.Current(db)
	if err != nil {
		return 0, err
	}
	if amount > val {
		return 0, errors.Wrapf(errors.ErrHuman, "counter below zero: %d - %d", val, amount)
	}
	val -= amount
	if err := db.Set(c.id, encodeCounter(val)); err != nil {
		return 0, err
	}
	return val, nil
}

func decodeCounter(bz []byte) uint64 {
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func encodeCounter(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
