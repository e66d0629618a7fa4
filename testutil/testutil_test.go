package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711)
	b := NewRNG(4711)

	for range 32 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, int64(4711), a.Seed())
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(4711)
	first := []int{rng.Intn(100), rng.Intn(100), rng.Intn(100)}

	rng.Reset()
	again := []int{rng.Intn(100), rng.Intn(100), rng.Intn(100)}

	assert.Equal(t, first, again)
}

func TestSequence(t *testing.T) {
	rng := NewRNG(4711)
	pool := []string{"a", "b", "c"}

	for range 64 {
		seq := Sequence(rng, pool, 1, 4)
		assert.GreaterOrEqual(t, len(seq), 1)
		assert.LessOrEqual(t, len(seq), 4)
		for _, s := range seq {
			assert.Contains(t, pool, s)
		}
	}

	assert.Len(t, Sequence(rng, pool, 3, 3), 3)
}
