package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/internal/ulid"
	"github.com/stateful/emailbuilder/pkg/document"
)

func TestGenerators(t *testing.T) {
	t.Run("ULID", func(t *testing.T) {
		gen := ULID()
		id1, id2 := gen.NewID(), gen.NewID()
		assert.True(t, ulid.Valid(string(id1)))
		assert.NotEqual(t, id1, id2)
	})

	t.Run("Sequential", func(t *testing.T) {
		gen := Sequential("block")
		assert.Equal(t, document.BlockID("block-1"), gen.NewID())
		assert.Equal(t, document.BlockID("block-2"), gen.NewID())
	})

	t.Run("Fixed", func(t *testing.T) {
		gen := Fixed("a", "b")
		assert.Equal(t, document.BlockID("a"), gen.NewID())
		assert.Equal(t, document.BlockID("b"), gen.NewID())
		assert.Equal(t, document.BlockID("b"), gen.NewID())
	})

	t.Run("ByName", func(t *testing.T) {
		tests := []struct {
			name    string
			wantErr bool
		}{
			{"", false},
			{"ulid", false},
			{"sequential", false},
			{"uuid", true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				gen, err := ByName(tt.name)
				if tt.wantErr {
					require.Error(t, err)
					return
				}
				require.NoError(t, err)
				assert.NotEmpty(t, gen.NewID())
			})
		}
	})
}
