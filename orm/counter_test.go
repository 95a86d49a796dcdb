package orm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CallMeGwei/b9labs-remittance/errors"
	"github.com/CallMeGwei/b9labs-remittance/store"
)

func TestCounterBasics(t *testing.T) {
	db := store.MemStore()
	c := NewCounter("escrow", "locked")

	val, err := c.Current(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), val)

	val, err = c.Increment(db, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), val)

	val, err = c.Increment(db, 17)
	require.NoError(t, err)
	assert.Equal(t, uint64(1017), val)

	val, err = c.Decrement(db, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), val)

	val, err = c.Current(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), val)
}

func TestCounterUnderflow(t *testing.T) {
	db := store.MemStore()
	c := NewCounter("escrow", "locked")

	_, err := c.Increment(db, 5)
	require.NoError(t, err)

	_, err = c.Decrement(db, 6)
	if !errors.ErrHuman.Is(err) {
		t.Fatalf("want ErrHuman, got %+v", err)
	}

	// failed decrement cannot modify the state
	val, err := c.Current(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), val)
}

func TestCounterOverflow(t *testing.T) {
	db := store.MemStore()
	c := NewCounter("escrow", "locked")

	_, err := c.Increment(db, math.MaxUint64)
	require.NoError(t, err)

	_, err = c.Increment(db, 1)
	if !errors.ErrOverflow.Is(err) {
		t.Fatalf("want ErrOverflow, got %+v", err)
	}
}

func TestCountersAreIsolated(t *testing.T) {
	db := store.MemStore()
	a := NewCounter("escrow", "locked")
	b := NewCounter("escrow", "other")

	_, err := a.Increment(db, 42)
	require.NoError(t, err)

	val, err := b.Current(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), val)
}
