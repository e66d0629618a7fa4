package store

import (
	"testing"

	"github.com/hupe1980/hypergraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(w int, vs ...core.Position) Key[int] {
	return Key[int]{Vertices: vs, Weight: w}
}

func TestKeySet_OrderAndWeightMatter(t *testing.T) {
	ks := NewKeySet[int](4)

	_, err := ks.Append(key(1, 0, 1, 2))
	require.NoError(t, err)
	_, err = ks.Append(key(1, 2, 1, 0))
	require.NoError(t, err)
	_, err = ks.Append(key(2, 0, 1, 2))
	require.NoError(t, err)

	_, err = ks.Append(key(1, 0, 1, 2))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 3, ks.Len())

	p, ok := ks.Find(key(1, 2, 1, 0))
	assert.True(t, ok)
	assert.Equal(t, core.Position(1), p)

	_, ok = ks.Find(key(3, 0, 1, 2))
	assert.False(t, ok)
	require.NoError(t, ks.Check())
}

func TestKeySet_Set(t *testing.T) {
	ks := NewKeySet[int](2)
	_, err := ks.Append(key(1, 0, 1))
	require.NoError(t, err)
	_, err = ks.Append(key(1, 1, 2))
	require.NoError(t, err)

	t.Run("same content is a no-op", func(t *testing.T) {
		require.NoError(t, ks.Set(0, key(1, 0, 1)))
		require.NoError(t, ks.Check())
	})

	t.Run("duplicate of another entry is rejected", func(t *testing.T) {
		err := ks.Set(0, key(1, 1, 2))
		assert.ErrorIs(t, err, ErrDuplicate)
		k, _ := ks.At(0)
		assert.Equal(t, key(1, 0, 1), k)
	})

	t.Run("new content replaces in place", func(t *testing.T) {
		require.NoError(t, ks.Set(0, key(1, 1, 0)))
		_, ok := ks.Find(key(1, 0, 1))
		assert.False(t, ok)
		p, ok := ks.Find(key(1, 1, 0))
		assert.True(t, ok)
		assert.Equal(t, core.Position(0), p)
		require.NoError(t, ks.Check())
	})

	t.Run("out of range", func(t *testing.T) {
		assert.ErrorIs(t, ks.Set(9, key(1, 3)), ErrPositionNotFound)
	})
}

func TestKeySet_SwapRemove(t *testing.T) {
	ks := NewKeySet[int](3)
	for _, k := range []Key[int]{key(1, 0), key(1, 1), key(1, 2)} {
		_, err := ks.Append(k)
		require.NoError(t, err)
	}

	ks.SwapRemove(0)
	assert.Equal(t, 2, ks.Len())

	p, ok := ks.Find(key(1, 2))
	assert.True(t, ok)
	assert.Equal(t, core.Position(0), p)
	_, ok = ks.Find(key(1, 0))
	assert.False(t, ok)
	require.NoError(t, ks.Check())

	ks.SwapRemove(1)
	assert.Equal(t, 1, ks.Len())
	require.NoError(t, ks.Check())
}

func TestKeySet_ReplaceAll(t *testing.T) {
	newSet := func(t *testing.T) *KeySet[int] {
		ks := NewKeySet[int](3)
		for _, k := range []Key[int]{key(1, 0, 5), key(1, 3, 5), key(1, 7)} {
			_, err := ks.Append(k)
			require.NoError(t, err)
		}
		return ks
	}

	t.Run("content may move between replaced entries", func(t *testing.T) {
		ks := newSet(t)
		err := ks.ReplaceAll([]Update[int]{
			{Position: 0, Key: key(1, 9)},
			{Position: 1, Key: key(1, 0, 5)},
		})
		require.NoError(t, err)

		p, ok := ks.Find(key(1, 0, 5))
		assert.True(t, ok)
		assert.Equal(t, core.Position(1), p)
		require.NoError(t, ks.Check())
	})

	t.Run("collision with untouched entry", func(t *testing.T) {
		ks := newSet(t)
		err := ks.ReplaceAll([]Update[int]{
			{Position: 0, Key: key(1, 9)},
			{Position: 1, Key: key(1, 7)},
		})
		assert.ErrorIs(t, err, ErrDuplicate)

		k, _ := ks.At(0)
		assert.Equal(t, key(1, 0, 5), k, "failed batch must not mutate")
		require.NoError(t, ks.Check())
	})

	t.Run("collision with retired entry is ignored", func(t *testing.T) {
		ks := newSet(t)
		err := ks.ReplaceAll([]Update[int]{
			{Position: 1, Key: key(1, 7)},
		}, 2)
		require.NoError(t, err)

		ks.SwapRemove(2)
		p, ok := ks.Find(key(1, 7))
		assert.True(t, ok)
		assert.Equal(t, core.Position(1), p)
		require.NoError(t, ks.Check())
	})

	t.Run("collision inside batch", func(t *testing.T) {
		ks := newSet(t)
		err := ks.ReplaceAll([]Update[int]{
			{Position: 0, Key: key(1, 9)},
			{Position: 1, Key: key(1, 9)},
		})
		assert.ErrorIs(t, err, ErrDuplicate)
		require.NoError(t, ks.Check())
	})
}

func TestKeySet_FingerprintCollisionBucket(t *testing.T) {
	ks := NewKeySet[int](2)
	_, err := ks.Append(key(1, 4, 4))
	require.NoError(t, err)

	// Force a second entry into the same bucket to exercise the sequence comparison.
	other := key(1, 8)
	bk := bucketKey[int]{sum: Fingerprint(ks.entries[0].Vertices), weight: 1}
	ks.entries = append(ks.entries, other)
	ks.sums = append(ks.sums, bk.sum)
	ks.link(bk, 1)

	p, ok := ks.find(other, bk.sum)
	assert.True(t, ok)
	assert.Equal(t, core.Position(1), p)

	p, ok = ks.find(key(1, 4, 4), bk.sum)
	assert.True(t, ok)
	assert.Equal(t, core.Position(0), p)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint([]core.Position{1, 2}), Fingerprint([]core.Position{1, 2}))
	assert.NotEqual(t, Fingerprint([]core.Position{1, 2}), Fingerprint([]core.Position{2, 1}))
}
