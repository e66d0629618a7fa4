// Package store provides dense, swap-compacting entity stores addressed by
// stable external identifiers.
//
// # Architecture
//
// A Store pairs a Backing (the dense array of entries) with a Mapping (the
// bidirectional external ID ↔ internal Position map):
//
//   - Insert appends to the backing and binds a fresh, never reused ID
//   - Update rewrites the entry in place; its Position does not change
//   - Remove moves the last entry into the freed slot and truncates (O(1))
//
// Remove reports the displaced entry in a Removal so that the owner can rewrite
// every outside reference to Removal.Last into Removal.Position within the same
// operation.
//
// # Backings
//
//   - Dense: a plain slice, used for vertex payloads
//   - KeySet: a content-addressed set of hyperedge keys; an xxh3 fingerprint
//     index over a dense slice, rejecting duplicate keys
//
// Stores are not safe for concurrent mutation. Concurrent reads are safe when
// no writer is active.
package store
