package conv

import (
	"fmt"
	"math"

	"github.com/hupe1980/hypergraph/core"
)

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// IntToPosition converts a slice offset to a core.Position.
// MaxPosition itself is reserved so that Len() of a full store still fits.
func IntToPosition(v int) (core.Position, error) {
	u, err := IntToUint32(v)
	if err != nil {
		return 0, err
	}
	if core.Position(u) == core.MaxPosition {
		return 0, fmt.Errorf("integer overflow: %d exceeds max position %d", v, core.MaxPosition-1)
	}
	return core.Position(u), nil
}
