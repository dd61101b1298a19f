package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/identity"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		name string
		ids  []document.BlockID
	}{
		{"Nil", nil},
		{"Empty", []document.BlockID{}},
		{"One", []document.BlockID{"a"}},
		{"Many", []document.BlockID{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := identity.Sequential("new")
			newID, newIDs, err := Append(gen, tt.ids)
			require.NoError(t, err)

			assert.Equal(t, document.BlockID("new-1"), newID)
			assert.Len(t, newIDs, len(tt.ids)+1)
			assert.Equal(t, newID, newIDs[len(newIDs)-1])
			assert.NotContains(t, tt.ids, newID)
			for i, id := range tt.ids {
				assert.Equal(t, id, newIDs[i])
			}
		})
	}
}

func TestAppend_DoesNotAliasInput(t *testing.T) {
	ids := make([]document.BlockID, 2, 10)
	ids[0], ids[1] = "a", "b"

	_, first, err := Append(identity.Sequential("x"), ids)
	require.NoError(t, err)
	_, second, err := Append(identity.Sequential("y"), ids)
	require.NoError(t, err)

	assert.Equal(t, []document.BlockID{"a", "b", "x-1"}, first)
	assert.Equal(t, []document.BlockID{"a", "b", "y-1"}, second)
	assert.Equal(t, []document.BlockID{"a", "b"}, ids)
}

func TestInsertAt(t *testing.T) {
	ids := []document.BlockID{"a", "b", "c"}

	tests := []struct {
		index    int
		expected []document.BlockID
	}{
		{0, []document.BlockID{"n-1", "a", "b", "c"}},
		{1, []document.BlockID{"a", "n-1", "b", "c"}},
		{2, []document.BlockID{"a", "b", "n-1", "c"}},
		{3, []document.BlockID{"a", "b", "c", "n-1"}},
		{-5, []document.BlockID{"n-1", "a", "b", "c"}},
		{42, []document.BlockID{"a", "b", "c", "n-1"}},
	}

	for _, tt := range tests {
		newID, newIDs, err := InsertAt(identity.Sequential("n"), ids, tt.index)
		require.NoError(t, err)
		assert.Equal(t, document.BlockID("n-1"), newID)
		assert.Equal(t, tt.expected, newIDs, "index %d", tt.index)
	}

	assert.Equal(t, []document.BlockID{"a", "b", "c"}, ids)
}

func TestInsertAt_SkipsIDsInUse(t *testing.T) {
	newID, newIDs, err := InsertAt(identity.Fixed("a", "b", "z"), []document.BlockID{"a", "b"}, 1)
	require.NoError(t, err)
	assert.Equal(t, document.BlockID("z"), newID)
	assert.Equal(t, []document.BlockID{"a", "z", "b"}, newIDs)
}

func TestInsertAt_Collision(t *testing.T) {
	_, _, err := InsertAt(identity.Fixed("a"), []document.BlockID{"a"}, 0)
	assert.ErrorIs(t, err, ErrIDCollision)

	_, _, err = Append(identity.Fixed(document.RootBlockID), nil)
	assert.ErrorIs(t, err, ErrIDCollision)
}
