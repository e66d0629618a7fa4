// Package hypergraph provides an in-memory, mutable store for directed,
// weighted hypergraphs.
//
// Vertices carry an arbitrary payload V. Hyperedges relate an ordered sequence
// of vertices (repetition allowed) and carry a weight W. Both are addressed by
// stable external indices while being kept in dense, swap-compacted arrays.
//
// # Quick Start
//
//	g := hypergraph.New[string, int]()
//
//	a, _ := g.AddVertex("A")
//	b, _ := g.AddVertex("B")
//	c, _ := g.AddVertex("C")
//
//	e, _ := g.AddHyperedge([]core.VertexIndex{a, b, c}, 1)
//
//	_ = g.RemoveVertex(b)
//	vs, _ := g.GetHyperedgeVertices(e) // [a c], same index, same weight
//
// # Content Addressing
//
// A hyperedge's identity for uniqueness is its content: the ordered vertex
// sequence plus the weight. (a, b) and (b, a) are different hyperedges, but no
// two live hyperedges may have identical content. AddHyperedge rejects
// duplicates with ErrDuplicateHyperedge.
//
// # Cascading Removal
//
// RemoveVertex rewrites every hyperedge that references the vertex:
//
//   - a hyperedge whose only distinct vertex is the removed one is deleted
//   - any other hyperedge loses every occurrence of the vertex, keeping its
//     order, weight and index
//
// When a rewrite produces content that already exists, Options.CollisionPolicy
// decides: CollisionReject (default) fails the whole call without mutating
// anything, CollisionMerge drops the rewritten hyperedge in favour of the live
// one.
//
// # Errors
//
// Every operation returns an *Error carrying the operation, the entity family
// and the offending index. Match the kind with errors.Is:
//
//	if errors.Is(err, hypergraph.ErrNotFound) { ... }
//
// ErrInternalIndexNotFound signals a broken invariant and aborts only the
// operation that detected it. Validate checks all invariants explicitly.
//
// # Concurrency
//
// A Hypergraph has a single owner and no internal locking; callers serialize
// mutating calls. Planning a large removal cascade may fan out over worker
// goroutines (see Options.ParallelThreshold), with results identical to a
// sequential pass.
package hypergraph
