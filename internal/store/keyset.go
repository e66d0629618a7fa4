package store

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/conv"
	"github.com/zeebo/xxh3"
)

// Key is the content of a hyperedge: an ordered sequence of vertex positions
// plus a weight. Two keys are equal when both the sequence (order included)
// and the weight are equal.
//
// Keys handed to a KeySet are owned by it; callers must not mutate Vertices
// afterwards.
type Key[W comparable] struct {
	Vertices []core.Position
	Weight   W
}

// Equal reports whether k and o have identical content.
func (k Key[W]) Equal(o Key[W]) bool {
	return k.Weight == o.Weight && slices.Equal(k.Vertices, o.Vertices)
}

// Fingerprint hashes the vertex sequence. The weight is not hashed; it is part
// of the bucket key instead, so W only needs to be comparable.
func Fingerprint(vertices []core.Position) uint64 {
	buf := make([]byte, 4*len(vertices))
	for i, v := range vertices {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
	}
	return xxh3.Hash(buf)
}

type bucketKey[W comparable] struct {
	sum    uint64
	weight W
}

// KeySet is a content-addressed ordered set of keys: a dense slice with a hash
// index from content to position. It implements Backing[Key[W]].
//
// Buckets hold every position whose key shares a fingerprint and weight;
// collisions are resolved by comparing the full sequence.
type KeySet[W comparable] struct {
	entries []Key[W]
	sums    []uint64
	index   map[bucketKey[W]][]core.Position
}

// NewKeySet creates an empty KeySet.
func NewKeySet[W comparable](capacity int) *KeySet[W] {
	return &KeySet[W]{
		entries: make([]Key[W], 0, capacity),
		sums:    make([]uint64, 0, capacity),
		index:   make(map[bucketKey[W]][]core.Position, capacity),
	}
}

func (ks *KeySet[W]) Len() int { return len(ks.entries) }

func (ks *KeySet[W]) At(p core.Position) (Key[W], bool) {
	if int(p) >= len(ks.entries) {
		return Key[W]{}, false
	}
	return ks.entries[p], true
}

// Find returns the position of the entry equal to k.
func (ks *KeySet[W]) Find(k Key[W]) (core.Position, bool) {
	return ks.find(k, Fingerprint(k.Vertices))
}

func (ks *KeySet[W]) find(k Key[W], sum uint64) (core.Position, bool) {
	for _, p := range ks.index[bucketKey[W]{sum: sum, weight: k.Weight}] {
		if slices.Equal(ks.entries[p].Vertices, k.Vertices) {
			return p, true
		}
	}
	return 0, false
}

// Append inserts k at the end. It fails with ErrDuplicate when an equal key
// is already present.
func (ks *KeySet[W]) Append(k Key[W]) (core.Position, error) {
	sum := Fingerprint(k.Vertices)
	if p, ok := ks.find(k, sum); ok {
		return 0, fmt.Errorf("%w: at position %d", ErrDuplicate, p)
	}

	p, err := conv.IntToPosition(len(ks.entries))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCapacity, err)
	}
	ks.entries = append(ks.entries, k)
	ks.sums = append(ks.sums, sum)
	ks.link(bucketKey[W]{sum: sum, weight: k.Weight}, p)

	return p, nil
}

// Set replaces the key at p.
//
// This is equivalent to appending k and swap-removing p: the new key ends up at
// p. Setting a key equal to the current one is a no-op; a key equal to another
// live entry fails with ErrDuplicate and leaves the set untouched.
func (ks *KeySet[W]) Set(p core.Position, k Key[W]) error {
	if int(p) >= len(ks.entries) {
		return fmt.Errorf("%w: %d", ErrPositionNotFound, p)
	}

	sum := Fingerprint(k.Vertices)
	if q, ok := ks.find(k, sum); ok {
		if q == p {
			return nil
		}
		return fmt.Errorf("%w: at position %d", ErrDuplicate, q)
	}

	ks.unlink(bucketKey[W]{sum: ks.sums[p], weight: ks.entries[p].Weight}, p)
	ks.entries[p] = k
	ks.sums[p] = sum
	ks.link(bucketKey[W]{sum: sum, weight: k.Weight}, p)

	return nil
}

// Update is a pending replacement for ReplaceAll.
type Update[W comparable] struct {
	Position core.Position
	Key      Key[W]
}

// ReplaceAll applies a batch of replacements as one step.
//
// All replaced keys are unindexed before any new key is indexed, so a batch may
// move content between its own positions (e.g. a remap where one entry takes
// over the former content of another). Collisions with the retired positions
// are ignored: the caller removes those entries right after. The batch is
// validated first; on error nothing is changed.
func (ks *KeySet[W]) ReplaceAll(updates []Update[W], retired ...core.Position) error {
	touched := make(map[core.Position]struct{}, len(updates)+len(retired))
	for _, p := range retired {
		touched[p] = struct{}{}
	}
	for _, u := range updates {
		if int(u.Position) >= len(ks.entries) {
			return fmt.Errorf("%w: %d", ErrPositionNotFound, u.Position)
		}
		if _, dup := touched[u.Position]; dup {
			return fmt.Errorf("%w: position %d updated twice", ErrDuplicate, u.Position)
		}
		touched[u.Position] = struct{}{}
	}

	sums := make([]uint64, len(updates))
	pending := NewKeySet[W](len(updates))
	for i, u := range updates {
		sums[i] = Fingerprint(u.Key.Vertices)
		if q, ok := ks.find(u.Key, sums[i]); ok {
			if _, replaced := touched[q]; !replaced {
				return fmt.Errorf("%w: at position %d", ErrDuplicate, q)
			}
		}
		if _, err := pending.Append(u.Key); err != nil {
			return err
		}
	}

	for _, u := range updates {
		ks.unlink(bucketKey[W]{sum: ks.sums[u.Position], weight: ks.entries[u.Position].Weight}, u.Position)
	}
	for i, u := range updates {
		ks.entries[u.Position] = u.Key
		ks.sums[u.Position] = sums[i]
		ks.link(bucketKey[W]{sum: sums[i], weight: u.Key.Weight}, u.Position)
	}

	return nil
}

func (ks *KeySet[W]) SwapRemove(p core.Position) {
	last := core.Position(len(ks.entries) - 1)

	ks.unlink(bucketKey[W]{sum: ks.sums[p], weight: ks.entries[p].Weight}, p)
	if p != last {
		moved := bucketKey[W]{sum: ks.sums[last], weight: ks.entries[last].Weight}
		ks.unlink(moved, last)
		ks.link(moved, p)
		ks.entries[p] = ks.entries[last]
		ks.sums[p] = ks.sums[last]
	}

	ks.entries[last] = Key[W]{}
	ks.entries = ks.entries[:last]
	ks.sums = ks.sums[:last]
}

func (ks *KeySet[W]) Reset() {
	clear(ks.entries)
	ks.entries = ks.entries[:0]
	ks.sums = ks.sums[:0]
	clear(ks.index)
}

// Check verifies that the hash index covers every entry exactly once and that
// no two entries are equal.
func (ks *KeySet[W]) Check() error {
	indexed := 0
	for bk, bucket := range ks.index {
		for _, p := range bucket {
			if int(p) >= len(ks.entries) {
				return fmt.Errorf("%w: index references %d", ErrPositionNotFound, p)
			}
			if ks.sums[p] != bk.sum || ks.entries[p].Weight != bk.weight {
				return fmt.Errorf("%w: position %d indexed under a stale key", ErrPositionNotFound, p)
			}
		}
		for i := range bucket {
			for j := i + 1; j < len(bucket); j++ {
				if ks.entries[bucket[i]].Equal(ks.entries[bucket[j]]) {
					return fmt.Errorf("%w: positions %d and %d", ErrDuplicate, bucket[i], bucket[j])
				}
			}
		}
		indexed += len(bucket)
	}
	if indexed != len(ks.entries) {
		return fmt.Errorf("%w: %d entries but %d indexed", ErrPositionNotFound, len(ks.entries), indexed)
	}
	for i, k := range ks.entries {
		if ks.sums[i] != Fingerprint(k.Vertices) {
			return fmt.Errorf("%w: stale fingerprint at %d", ErrPositionNotFound, i)
		}
		if p, ok := ks.find(k, ks.sums[i]); !ok || int(p) != i {
			return fmt.Errorf("%w: position %d not reachable through the index", ErrPositionNotFound, i)
		}
	}
	return nil
}

func (ks *KeySet[W]) link(bk bucketKey[W], p core.Position) {
	ks.index[bk] = append(ks.index[bk], p)
}

func (ks *KeySet[W]) unlink(bk bucketKey[W], p core.Position) {
	bucket := ks.index[bk]
	i := slices.Index(bucket, p)
	if i < 0 {
		return
	}
	if len(bucket) == 1 {
		delete(ks.index, bk)
		return
	}
	bucket[i] = bucket[len(bucket)-1]
	ks.index[bk] = bucket[:len(bucket)-1]
}
