package hypergraph

import (
	"fmt"
	"runtime"
)

// CollisionPolicy decides what happens when a content rewrite produces a
// hyperedge identical to another live hyperedge.
type CollisionPolicy uint8

const (
	// CollisionReject fails the whole operation with ErrDuplicateHyperedge and
	// mutates nothing. This includes a RemoveVertex whose cascade would make
	// two hyperedges identical.
	CollisionReject CollisionPolicy = iota

	// CollisionMerge drops the rewritten hyperedge and keeps the one that is
	// already live. Within a single RemoveVertex cascade the rewrite with the
	// lowest internal position is kept. Every merge is logged at warn level and
	// reported to MetricsCollector.RecordMerge.
	CollisionMerge
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionReject:
		return "reject"
	case CollisionMerge:
		return "merge"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", uint8(p))
	}
}

// ParseCollisionPolicy parses "reject" or "merge".
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "reject":
		return CollisionReject, nil
	case "merge":
		return CollisionMerge, nil
	default:
		return 0, fmt.Errorf("unknown collision policy %q", s)
	}
}

// DefaultParallelThreshold is the number of hyperedges a vertex removal must
// touch before its planning fans out over worker goroutines.
const DefaultParallelThreshold = 256

// Options configures a Hypergraph.
type Options struct {
	// Logger receives structured logs. Defaults to NoopLogger().
	Logger *Logger

	// MetricsCollector receives operation metrics. Defaults to NoopMetricsCollector.
	MetricsCollector MetricsCollector

	// CollisionPolicy applies to content rewrites (UpdateHyperedgeVertices,
	// UpdateHyperedgeWeight, ReverseHyperedge and the RemoveVertex cascade).
	// AddHyperedge always rejects duplicates.
	CollisionPolicy CollisionPolicy

	// ParallelThreshold is the minimum number of touched hyperedges for which
	// cascade planning runs in parallel. Values <= 0 disable parallel planning.
	ParallelThreshold int

	// MaxWorkers bounds the planning goroutines. Defaults to GOMAXPROCS.
	MaxWorkers int

	// InitialCapacity pre-sizes the vertex and hyperedge stores.
	InitialCapacity int
}

// DefaultOptions contains the default options for a Hypergraph.
var DefaultOptions = Options{
	CollisionPolicy:   CollisionReject,
	ParallelThreshold: DefaultParallelThreshold,
}

func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = NoopLogger()
	}
	if o.MetricsCollector == nil {
		o.MetricsCollector = NoopMetricsCollector{}
	}
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	if o.InitialCapacity < 0 {
		o.InitialCapacity = 0
	}
}
