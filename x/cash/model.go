package cash

import (
	"encoding/json"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Set holds the balance of a single account, denominated in the smallest
// indivisible unit of value.
type Set struct {
	Balance uint64 `json:"balance"`
}

var _ orm.Model = (*Set)(nil)

func (s *Set) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, s)
}

// Validate is a noop, any balance representable in the field is valid.
func (s *Set) Validate() error {
	return nil
}

// Copy makes a new set with the same balance.
func (s *Set) Copy() orm.Model {
	return &Set{Balance: s.Balance}
}

// Wallet is the actual object that we want to pass around in our code. It
// contains a balance, as well as the address it belongs to. It is connected
// to the Bucket to easily manipulate state.
type Wallet struct {
	key   []byte
	value *Set
}

var _ orm.Object = (*Wallet)(nil)

// NewWallet creates a wallet with this address and balance.
func NewWallet(key remittance.Address, balance uint64) *Wallet {
	return &Wallet{
		key:   key,
		value: &Set{Balance: balance},
	}
}

// Value gets the value stored in the object.
func (w Wallet) Value() remittance.Persistent {
	return w.value
}

// Key returns the key to store the object under.
func (w Wallet) Key() []byte {
	return w.key
}

// Validate makes sure the fields aren't empty. And delegates to the value
// validator.
func (w Wallet) Validate() error {
	if len(w.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	return w.value.Validate()
}

// SetKey may be used to update the wallet key.
func (w *Wallet) SetKey(key []byte) {
	w.key = key
}

// Clone will make a copy of this object.
func (w *Wallet) Clone() orm.Object {
	res := &Wallet{
		value: w.value.Copy().(*Set),
	}
	// only copy key if non-nil
	if len(w.key) > 0 {
		res.key = append([]byte(nil), w.key...)
	}
	return res
}

// Balance returns the units stored in the wallet.
func (w Wallet) Balance() uint64 {
	return w.value.Balance
}

// Add modifies the wallet to add the given amount of units. Fails on
// overflow.
func (w *Wallet) Add(amount uint64) error {
	sum := w.value.Balance + amount
	if sum < w.value.Balance {
		return errors.Wrap(errors.ErrOverflow, "wallet balance")
	}
	w.value.Balance = sum
	return nil
}

// Subtract modifies the wallet to remove the given amount of units. Fails
// if the balance is insufficient.
func (w *Wallet) Subtract(amount uint64) error {
	if w.value.Balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, want %d", w.value.Balance, amount)
	}
	w.value.Balance -= amount
	return nil
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil, 0)),
	}
}

// Get returns the wallet stored under this address, or nil if none exists.
func (b Bucket) Get(db remittance.ReadOnlyKVStore, key remittance.Address) (*Wallet, error) {
	obj, err := b.Bucket.Get(db, key)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return obj.(*Wallet), nil
}

// GetOrCreate returns the wallet stored under this address, creating an
// empty one when missing.
func (b Bucket) GetOrCreate(db remittance.ReadOnlyKVStore, key remittance.Address) (*Wallet, error) {
	w, err := b.Get(db, key)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = NewWallet(key, 0)
	}
	return w, nil
}
