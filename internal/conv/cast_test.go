//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/hupe1980/hypergraph/core"
	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid positive", func(t *testing.T) {
		got, err := IntToUint32(123)
		assert.NoError(t, err)
		assert.Equal(t, uint32(123), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.Error(t, err)
	})
}

func TestIntToPosition(t *testing.T) {
	got, err := IntToPosition(42)
	assert.NoError(t, err)
	assert.Equal(t, core.Position(42), got)

	got, err = IntToPosition(int(core.MaxPosition) - 1)
	assert.NoError(t, err)
	assert.Equal(t, core.MaxPosition-1, got)

	_, err = IntToPosition(int(core.MaxPosition))
	assert.Error(t, err)

	_, err = IntToPosition(-3)
	assert.Error(t, err)
}
