package interactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/pkg/document"
)

func TestRenderer_Container(t *testing.T) {
	r := New(WithSelection("b"))

	a, err := r.Leaf("a", document.Block{
		Type: document.TextBlockType,
		Data: document.BlockData{Props: &document.TextProps{Text: document.Ptr("A")}},
	})
	require.NoError(t, err)
	b, err := r.Leaf("b", document.Block{Type: document.DividerBlockType})
	require.NoError(t, err)

	cols, err := r.Container("cols", document.Block{Type: document.ColumnsContainerBlockType}, [][]*Element{{a}, {}, {b}})
	require.NoError(t, err)

	assert.Empty(t, cols.Markup)
	assert.False(t, cols.Selected)
	assert.True(t, b.Selected)
	assert.Contains(t, a.Markup, ">A</div>")

	require.Len(t, cols.Lists, 3)
	assert.Equal(t, []Slot{
		{ParentID: "cols", Column: 0, Index: 0},
		{ParentID: "cols", Column: 0, Index: 1},
	}, cols.Lists[0].Slots)
	assert.Equal(t, []Slot{{ParentID: "cols", Column: 1, Index: 0}}, cols.Lists[1].Slots)
	assert.Len(t, cols.Lists[2].Slots, 2)
}

func TestElement_FindWalk(t *testing.T) {
	leaf := &Element{ID: "leaf"}
	root := &Element{
		ID: "root",
		Lists: []*List{{Children: []*Element{
			{ID: "c", Lists: []*List{{Children: []*Element{leaf}}}},
			{ID: "d"},
		}}},
	}

	assert.Same(t, leaf, root.Find("leaf"))
	assert.Nil(t, root.Find("missing"))

	var nilElement *Element
	assert.Nil(t, nilElement.Find("leaf"))

	var order []document.BlockID
	root.Walk(func(e *Element) { order = append(order, e.ID) })
	assert.Equal(t, []document.BlockID{"root", "c", "leaf", "d"}, order)
}
