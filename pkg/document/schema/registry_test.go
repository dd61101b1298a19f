package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/pkg/document"
)

func TestDefaultsAreValid(t *testing.T) {
	registry := New()

	for _, blockType := range document.BlockTypes {
		t.Run(blockType.String(), func(t *testing.T) {
			block := Defaults(blockType)
			assert.Equal(t, blockType, block.Type)
			require.NoError(t, registry.Validate(block))
		})
	}
}

func TestDefaultsAreFresh(t *testing.T) {
	a := Defaults(document.ContainerBlockType)
	b := Defaults(document.ContainerBlockType)

	a.Data.Props.(*document.ContainerProps).ChildrenIDs = append(a.Data.Props.(*document.ContainerProps).ChildrenIDs, "x")
	assert.Empty(t, b.Data.Props.(*document.ContainerProps).ChildrenIDs)
}

func TestRegistry_Validate(t *testing.T) {
	registry := New()

	tests := []struct {
		name  string
		block document.Block
		paths []string
		code  string
	}{
		{
			name: "NamedColor",
			block: document.Block{
				Type: document.TextBlockType,
				Data: document.BlockData{Style: &document.Style{Color: document.Ptr("red")}},
			},
			paths: []string{"data.style.color"},
			code:  "hexcolor6",
		},
		{
			name: "ShortHexColor",
			block: document.Block{
				Type: document.DividerBlockType,
				Data: document.BlockData{Props: &document.DividerProps{LineColor: document.Ptr("#FFF")}},
			},
			paths: []string{"data.props.lineColor"},
			code:  "hexcolor6",
		},
		{
			name: "TextAlign",
			block: document.Block{
				Type: document.HeadingBlockType,
				Data: document.BlockData{Style: &document.Style{TextAlign: document.Ptr("justify")}},
			},
			paths: []string{"data.style.textAlign"},
			code:  "oneof",
		},
		{
			name: "FontFamily",
			block: document.Block{
				Type: document.TextBlockType,
				Data: document.BlockData{Style: &document.Style{FontFamily: document.Ptr(document.FontFamily("COMIC"))}},
			},
			paths: []string{"data.style.fontFamily"},
			code:  "fontfamily",
		},
		{
			name: "IncompletePadding",
			block: document.Block{
				Type: document.TextBlockType,
				Data: document.BlockData{Style: &document.Style{Padding: &document.Padding{Top: document.Ptr(1)}}},
			},
			paths: []string{"data.style.padding.bottom", "data.style.padding.left", "data.style.padding.right"},
			code:  "required",
		},
		{
			name: "NegativePadding",
			block: document.Block{
				Type: document.TextBlockType,
				Data: document.BlockData{Style: &document.Style{Padding: document.NewPadding(-1, 0, 0, 0)}},
			},
			paths: []string{"data.style.padding.top"},
			code:  "min",
		},
		{
			name: "StyleOutsideShape",
			block: document.Block{
				Type: document.SpacerBlockType,
				Data: document.BlockData{Style: &document.Style{FontSize: document.Ptr(12)}},
			},
			paths: []string{"data.style.fontSize"},
			code:  CodeNotAllowed,
		},
		{
			name: "ColumnsCount",
			block: document.Block{
				Type: document.ColumnsContainerBlockType,
				Data: document.BlockData{Props: &document.ColumnsContainerProps{
					ColumnsCount: document.Ptr(4),
					Columns:      make([]document.Column, 3),
				}},
			},
			paths: []string{"data.props.columnsCount"},
			code:  "oneof",
		},
		{
			name: "TwoColumns",
			block: document.Block{
				Type: document.ColumnsContainerBlockType,
				Data: document.BlockData{Props: &document.ColumnsContainerProps{
					Columns: make([]document.Column, 2),
				}},
			},
			paths: []string{"data.props.columns"},
			code:  "len",
		},
		{
			name: "EmptyChildID",
			block: document.Block{
				Type: document.ContainerBlockType,
				Data: document.BlockData{Props: &document.ContainerProps{ChildrenIDs: []document.BlockID{"a", ""}}},
			},
			paths: []string{"data.props.childrenIds[1]"},
			code:  "required",
		},
		{
			name: "PropsMismatch",
			block: document.Block{
				Type: document.ImageBlockType,
				Data: document.BlockData{Props: &document.TextProps{}},
			},
			paths: []string{"data.props"},
			code:  CodeMismatch,
		},
		{
			name:  "UnknownType",
			block: document.Block{},
			paths: []string{"type"},
			code:  CodeInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Validate(tt.block)
			require.Error(t, err)

			verr, ok := AsValidationError(err)
			require.True(t, ok)
			require.Len(t, verr.Issues, len(tt.paths))
			for i, path := range tt.paths {
				assert.Equal(t, path, verr.Issues[i].Path)
				assert.Equal(t, tt.code, verr.Issues[i].Code)
			}
		})
	}
}

func TestRegistry_Update(t *testing.T) {
	registry := New()
	block := Defaults(document.TextBlockType)

	t.Run("MergesShallow", func(t *testing.T) {
		updated, err := registry.Update(
			block,
			map[string]any{"text": "Hi"},
			map[string]any{"color": "#112233", "padding": map[string]int{"top": 1, "bottom": 2, "left": 3, "right": 4}},
		)
		require.NoError(t, err)

		props := updated.Data.Props.(*document.TextProps)
		assert.Equal(t, "Hi", *props.Text)
		assert.Equal(t, "#112233", *updated.Data.Style.Color)
		assert.Equal(t, "normal", *updated.Data.Style.FontWeight)
		assert.Equal(t, 4, *updated.Data.Style.Padding.Right)

		// The source block is untouched.
		assert.Equal(t, "My new text block", *block.Data.Props.(*document.TextProps).Text)
		assert.Nil(t, block.Data.Style.Color)
	})

	t.Run("NilRemovesKey", func(t *testing.T) {
		updated, err := registry.Update(block, nil, map[string]any{"fontWeight": nil})
		require.NoError(t, err)
		assert.Nil(t, updated.Data.Style.FontWeight)
		assert.NotNil(t, updated.Data.Style.Padding)
	})

	t.Run("PaddingIsReplacedWholesale", func(t *testing.T) {
		_, err := registry.Update(block, nil, map[string]any{"padding": map[string]int{"top": 1}})
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.True(t, verr.Has("data.style.padding.bottom"))
	})

	t.Run("RejectsRed", func(t *testing.T) {
		_, err := registry.Update(block, nil, map[string]any{"color": "red"})
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.True(t, verr.Has("data.style.color"))
	})

	t.Run("WrongJSONType", func(t *testing.T) {
		_, err := registry.Update(block, nil, map[string]any{"fontSize": "big"})
		verr, ok := AsValidationError(err)
		require.True(t, ok)
		assert.True(t, verr.Has("data.style"))
	})
}

func TestStyleShape(t *testing.T) {
	assert.Nil(t, StyleShape(document.EmailLayoutBlockType))
	assert.Contains(t, StyleShape(document.ContainerBlockType), "borderRadius")
	assert.NotContains(t, StyleShape(document.ImageBlockType), "color")
}
