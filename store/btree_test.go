package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeGwei/b9labs-remittance/errors"
)

func TestMemStoreGetSetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("french"), []byte("fry")

	got, err := db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	has, err := db.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.Set(k, v))

	got, err = db.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	has, err = db.Has(k)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete(k))

	got, err = db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	db := MemStore()
	k1, v1 := []byte("a"), []byte("1")
	k2, v2 := []byte("b"), []byte("2")
	require.NoError(t, db.Set(k1, v1))

	// writes in a cache are not visible in the backing store until Write
	cache := db.CacheWrap()
	require.NoError(t, cache.Set(k2, v2))

	got, err := db.Get(k2)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = cache.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, got)

	require.NoError(t, cache.Write())
	got, err = db.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, got)

	// discarded writes disappear
	cache = db.CacheWrap()
	require.NoError(t, cache.Delete(k1))
	got, err = cache.Get(k1)
	require.NoError(t, err)
	assert.Nil(t, got)

	cache.Discard()
	got, err = db.Get(k1)
	require.NoError(t, err)
	assert.Equal(t, v1, got)
}

func TestCacheWrapDeleteShadowsBackingStore(t *testing.T) {
	db := MemStore()
	k := []byte("gone")
	require.NoError(t, db.Set(k, []byte("soon")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Delete(k))
	require.NoError(t, cache.Write())

	got, err := db.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIteratorMergesCacheAndBackingStore(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Set([]byte("c"), []byte("3")))
	require.NoError(t, db.Set([]byte("d"), []byte("4")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))     // new key
	require.NoError(t, cache.Set([]byte("c"), []byte("three"))) // overwrite
	require.NoError(t, cache.Delete([]byte("d")))               // delete

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()

	var keys, values []string
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
		values = append(values, string(v))
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, []string{"1", "2", "three"}, values)
}

func TestReverseIterator(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("1")))
	require.NoError(t, db.Set([]byte("b"), []byte("2")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("c"), []byte("3")))

	it, err := cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	defer it.Release()

	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}

func TestIteratorRange(t *testing.T) {
	db := MemStore()
	for _, k := range []string{"k1", "k2", "k3", "k4"} {
		require.NoError(t, db.Set([]byte(k), []byte("v")))
	}

	it, err := db.Iterator([]byte("k2"), []byte("k4"))
	require.NoError(t, err)
	defer it.Release()

	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"k2", "k3"}, keys)
}
