package hypergraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/hypergraph/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := vertexError(OpGetVertex, 5, ErrNotFound)
	assert.Equal(t, "get_vertex: not found: vertex 5", err.Error())

	err = hyperedgeError(OpAddHyperedge, 2, ErrDuplicateHyperedge)
	assert.Equal(t, "add_hyperedge: duplicate hyperedge: hyperedge 2", err.Error())

	err = internalError(OpValidate, EntityVertex, 3, store.ErrPositionNotFound)
	assert.Equal(t, "validate: internal index not found: vertex position 3: "+store.ErrPositionNotFound.Error(), err.Error())
}

func TestError_Unwrap(t *testing.T) {
	err := internalError(OpRemoveVertex, EntityHyperedge, 1, store.ErrPositionNotFound)

	assert.ErrorIs(t, err, ErrInternalIndexNotFound)
	assert.ErrorIs(t, err, store.ErrPositionNotFound)
	assert.True(t, IsInternal(err))
	assert.False(t, IsInternal(vertexError(OpGetVertex, 1, ErrNotFound)))

	wrapped := fmt.Errorf("outer: %w", err)
	var he *Error
	require.ErrorAs(t, wrapped, &he)
	assert.Equal(t, OpRemoveVertex, he.Op)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", store.ErrNotFound, ErrNotFound},
		{"duplicate", store.ErrDuplicate, ErrDuplicateHyperedge},
		{"position", store.ErrPositionNotFound, ErrInternalIndexNotFound},
		{"capacity", fmt.Errorf("append: %w", store.ErrCapacity), ErrCapacityExceeded},
		{"unknown", errors.New("boom"), ErrInternalIndexNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateError(OpAddVertex, EntityVertex, 4, tt.in)
			assert.ErrorIs(t, err, tt.want)

			var he *Error
			require.ErrorAs(t, err, &he)
			assert.Equal(t, uint64(4), he.Index)
		})
	}

	assert.NoError(t, translateError(OpAddVertex, EntityVertex, 0, nil))

	orig := hyperedgeError(OpRemoveHyperedge, 8, ErrNotFound)
	assert.Same(t, orig, translateError(OpAddVertex, EntityVertex, 0, orig))
}

func TestEntity_String(t *testing.T) {
	assert.Equal(t, "vertex", EntityVertex.String())
	assert.Equal(t, "hyperedge", EntityHyperedge.String())
}
