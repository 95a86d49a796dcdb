package orm

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
)

// Object is what is stored in the bucket. Key is joined with the bucket
// prefix to set the full db key. Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid state to
	// save to the db (eg. field missing, out of range, ...).
	Validate() error

	Value() remittance.Persistent
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// Model is an intelligent value that can be embedded in a simple object to
// handle much of the details.
type Model interface {
	remittance.Persistent
	Validate() error
	Copy() Model
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db remittance.ReadOnlyKVStore, key []byte) (Object, error)
}
