package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Pick returns a random element of pool. pool must not be empty.
func Pick[T any](r *RNG, pool []T) T {
	return pool[r.Intn(len(pool))]
}

// Sequence returns between minLen and maxLen (inclusive) random picks from
// pool, in random order and with repetition. pool must not be empty.
func Sequence[T any](r *RNG, pool []T, minLen, maxLen int) []T {
	n := minLen
	if maxLen > minLen {
		n += r.Intn(maxLen - minLen + 1)
	}
	out := make([]T, n)
	for i := range out {
		out[i] = Pick(r, pool)
	}
	return out
}
