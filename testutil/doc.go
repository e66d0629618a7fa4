// Package testutil provides testing utilities for hypergraph.
//
// This package is intended for use in tests, benchmarks and the churn tool
// only. It provides a seeded, thread-safe RNG and helpers for generating
// random vertex sequences.
//
// # Random Sequences
//
//	rng := testutil.NewRNG(seed)
//	seq := testutil.Sequence(rng, pool, 1, 4) // 1..4 picks, repetition allowed
//	v := testutil.Pick(rng, pool)
package testutil
