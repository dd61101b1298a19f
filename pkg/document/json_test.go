package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJSON(t *testing.T) {
	doc := Document{
		"html": {
			Type: HTMLBlockType,
			Data: BlockData{Props: &HTMLProps{Contents: Ptr("<strong>Hello & bye</strong>")}},
		},
	}

	data, err := EncodeJSON(doc, "")
	require.NoError(t, err)
	assert.Equal(t, `{"html":{"type":"Html","data":{"props":{"contents":"<strong>Hello & bye</strong>"}}}}`, string(data))
	assert.NotContains(t, string(data), `\u003c`)

	data, err = EncodeJSON(map[string]int{"b": 2, "a": 1}, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", string(data))
}
