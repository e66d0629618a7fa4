// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between Go's int (slice lengths, loop counters) and the
// fixed-width types used for dense positions and roaring bitmap members.
//
// For conversions that are provably safe by domain constraints (e.g. a value
// read back from a store that only ever holds valid positions), use direct type
// casts instead to avoid overhead.
package conv
