package chaintable_test

import (
	"testing"

	"github.com/on-the-ground/chaintable_go/chaintable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed uint32 = 0x5eed

func TestTable_BasicUsage(t *testing.T) {
	tbl, err := chaintable.New(8, 4, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	// store a value
	tbl, res, err := tbl.Set([]byte("alpha"), "first", false, nil)
	require.NoError(t, err)
	assert.Equal(t, chaintable.Inserted, res)
	assert.Equal(t, 1, tbl.Len())

	// load it back
	val, err := tbl.Get([]byte("alpha"))
	require.NoError(t, err)
	assert.Equal(t, "first", val)
	assert.True(t, tbl.Exists([]byte("alpha")))

	// absent key
	_, err = tbl.Get([]byte("beta"))
	assert.ErrorIs(t, err, chaintable.ErrKeyNotFound)
	assert.False(t, tbl.Exists([]byte("beta")))

	// overwrite existing
	tbl, res, err = tbl.Set([]byte("alpha"), "updated", true, nil)
	require.NoError(t, err)
	assert.Equal(t, chaintable.Overwritten, res)
	assert.Equal(t, 1, tbl.Len())

	val, err = tbl.Get([]byte("alpha"))
	require.NoError(t, err)
	assert.Equal(t, "updated", val)
}

func TestTable_SetWithoutReplaceKeepsStoredValue(t *testing.T) {
	tbl, err := chaintable.New(4, 4, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	tbl, _, err = tbl.Set([]byte("k"), "original", false, nil)
	require.NoError(t, err)

	tbl, _, err = tbl.Set([]byte("k"), "clobber", false, nil)
	assert.ErrorIs(t, err, chaintable.ErrKeyExists)
	assert.Equal(t, 1, tbl.Len())

	val, err := tbl.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "original", val)
}

func TestTable_OverwriteReleasesOldValueExactlyOnce(t *testing.T) {
	tbl, err := chaintable.New(4, 4, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	tbl, _, err = tbl.Set([]byte("k"), "old", false, nil)
	require.NoError(t, err)

	var released []any
	tbl, res, err := tbl.Set([]byte("k"), "new", true, func(v any) error {
		released = append(released, v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, chaintable.Overwritten, res)
	assert.Equal(t, []any{"old"}, released)

	val, err := tbl.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "new", val)
}

func TestTable_NegativeLookupInOccupiedBucket(t *testing.T) {
	// capacity 1 forces every key into the same bucket, so a probe for an
	// absent key always lands in an occupied chain
	tbl, err := chaintable.New(1, 16, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	tbl, _, err = tbl.Set([]byte("present"), 1, false, nil)
	require.NoError(t, err)

	// single entry, never collided: the key must still be verified
	_, err = tbl.Get([]byte("absent"))
	assert.ErrorIs(t, err, chaintable.ErrKeyNotFound)
	assert.False(t, tbl.Exists([]byte("absent")))

	tbl, _, err = tbl.Set([]byte("other"), 2, false, nil)
	require.NoError(t, err)

	_, err = tbl.Get([]byte("absent"))
	assert.ErrorIs(t, err, chaintable.ErrKeyNotFound)
}

func TestTable_KeyBufferIsCopiedOnInsert(t *testing.T) {
	tbl, err := chaintable.New(4, 4, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	buf := []byte("mutable")
	tbl, _, err = tbl.Set(buf, "v", false, nil)
	require.NoError(t, err)

	// caller reuses its buffer right away
	copy(buf, "XXXXXXX")

	val, err := tbl.Get([]byte("mutable"))
	require.NoError(t, err)
	assert.Equal(t, "v", val)
	assert.False(t, tbl.Exists(buf))
}

func TestTable_InvalidArguments(t *testing.T) {
	_, err := chaintable.New(0, 1)
	assert.ErrorIs(t, err, chaintable.ErrInvalidArgument)

	_, err = chaintable.New(4, 0)
	assert.ErrorIs(t, err, chaintable.ErrInvalidArgument)

	tbl, err := chaintable.New(4, 1, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	_, _, err = tbl.Set(nil, "v", false, nil)
	assert.ErrorIs(t, err, chaintable.ErrInvalidArgument)

	_, err = tbl.Get(nil)
	assert.ErrorIs(t, err, chaintable.ErrInvalidArgument)

	err = tbl.Remove(nil, nil)
	assert.ErrorIs(t, err, chaintable.ErrInvalidArgument)

	var nilTbl *chaintable.Table
	_, err = nilTbl.Get([]byte("k"))
	assert.ErrorIs(t, err, chaintable.ErrInvalidArgument)
	assert.Zero(t, nilTbl.Len())
	assert.Zero(t, nilTbl.Capacity())
}

func TestTable_EmptyKeyIsAValidKey(t *testing.T) {
	tbl, err := chaintable.New(4, 4, chaintable.WithSeed(testSeed))
	require.NoError(t, err)

	tbl, res, err := tbl.Set([]byte{}, "empty", false, nil)
	require.NoError(t, err)
	assert.Equal(t, chaintable.Inserted, res)

	val, err := tbl.Get([]byte{})
	require.NoError(t, err)
	assert.Equal(t, "empty", val)
}
