/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of object. It has a primary key and easy helpers for
get/save/delete, plus prefix scans for composite keys.
*/
package orm

import (
	"fmt"
	"regexp"

	remittance "github.com/CallMeGwei/b9labs-remittance"
	"github.com/CallMeGwei/b9labs-remittance/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well as references to
// the serialization template.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is the same type.
// Bucket is a prefixed subspace of the DB, proto defines the default Model,
// all elements of this type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as we don't want consecutive calls to
// overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element.
func (b Bucket) Get(db remittance.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data and reconstructs the data this Bucket
// would return. Used internally as part of Get.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write the object, if it validates.
func (b Bucket) Save(db remittance.KVStore, model Object) error {
	err := model.Validate()
	if err != nil {
		return errors.Wrap(err, "invalid model")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete removes the object from the bucket. Deleting a non-existent key is
// a noop, the same as with the underlying store.
func (b Bucket) Delete(db remittance.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	return db.Delete(dbkey)
}

// Has returns true if an entry with given key is present in the bucket.
func (b Bucket) Has(db remittance.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// GetPrefix returns all objects in this bucket whose key begins with given
// prefix, in ascending key order. The result is fully loaded, so it must
// only be used for scans known to be small.
func (b Bucket) GetPrefix(db remittance.ReadOnlyKVStore, prefix []byte) ([]Object, error) {
	start := b.DBKey(prefix)
	end := prefixEnd(start)

	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var objs []Object
	for {
		key, value, err := it.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				return objs, nil
			}
			return nil, err
		}
		obj, err := b.Parse(key[len(b.prefix):], value)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
}

// prefixEnd returns the first key that is no longer covered by given
// prefix, or nil when the prefix is all 0xff bytes.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
