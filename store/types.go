package store

import (
	remittance "github.com/CallMeGwei/b9labs-remittance"
)

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = remittance.ReadOnlyKVStore
type KVStore = remittance.KVStore
type Iterator = remittance.Iterator
type CacheableKVStore = remittance.CacheableKVStore
type KVCacheWrap = remittance.KVCacheWrap
type Batch = remittance.Batch

// SetDeleter is a subset of KVStore that a Batch flushes into.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Model groups a key-value pair, used by the slice iterator.
type Model struct {
	Key   []byte
	Value []byte
}
