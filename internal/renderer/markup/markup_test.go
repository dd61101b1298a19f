package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/pkg/document"
)

func TestRenderer_Leaf(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		block    document.Block
		expected string
	}{
		{
			name:     "EmptyText",
			block:    document.Block{Type: document.TextBlockType},
			expected: `<div></div>`,
		},
		{
			name: "Text",
			block: document.Block{
				Type: document.TextBlockType,
				Data: document.BlockData{
					Props: &document.TextProps{Text: document.Ptr(`a "quote" & <tag>`)},
					Style: &document.Style{Color: document.Ptr("#112233"), Padding: document.NewPadding(1, 2, 3, 4)},
				},
			},
			expected: `<div style="color:#112233;padding:1px 4px 2px 3px">a &quot;quote&quot; &amp; &lt;tag&gt;</div>`,
		},
		{
			name: "HeadingLevel",
			block: document.Block{
				Type: document.HeadingBlockType,
				Data: document.BlockData{Props: &document.HeadingProps{Text: document.Ptr("Hi"), Level: document.Ptr("h1")}},
			},
			expected: `<h1 style="font-weight:bold;margin:0;font-size:32px">Hi</h1>`,
		},
		{
			name:     "Spacer",
			block:    document.Block{Type: document.SpacerBlockType, Data: document.BlockData{Props: &document.SpacerProps{Height: document.Ptr(0)}}},
			expected: `<div style="height:0px"></div>`,
		},
		{
			name: "Divider",
			block: document.Block{
				Type: document.DividerBlockType,
				Data: document.BlockData{Props: &document.DividerProps{LineColor: document.Ptr("#CCCCCC"), LineHeight: document.Ptr(2)}},
			},
			expected: `<div><hr style="width:100%;border:none;border-top:2px solid #CCCCCC;margin:0"/></div>`,
		},
		{
			name: "LinkedImage",
			block: document.Block{
				Type: document.ImageBlockType,
				Data: document.BlockData{Props: &document.ImageProps{
					URL:      document.Ptr("https://example.com/a.png"),
					LinkHref: document.Ptr("https://example.com"),
					Width:    document.Ptr(100),
				}},
			},
			expected: `<div><a href="https://example.com" style="text-decoration:none" target="_blank">` +
				`<img alt="" src="https://example.com/a.png" width="100" style="width:100px;outline:none;border:none;text-decoration:none;vertical-align:middle;display:inline-block;max-width:100%"/>` +
				`</a></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Leaf("id", tt.block)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRenderer_LeafRejectsContainers(t *testing.T) {
	_, err := New().Leaf("id", document.Block{Type: document.ContainerBlockType})
	assert.Error(t, err)

	_, err = New().Container("id", document.Block{Type: document.TextBlockType}, nil)
	assert.Error(t, err)

	_, err = New().Container("id", document.Block{Type: document.ColumnsContainerBlockType}, [][]string{{}})
	assert.Error(t, err)
}

func TestRenderer_Container(t *testing.T) {
	block := document.Block{
		Type: document.ContainerBlockType,
		Data: document.BlockData{Style: &document.Style{BorderColor: document.Ptr("#000000"), BorderRadius: document.Ptr(4)}},
	}

	out, err := New().Container("id", block, [][]string{{"<p>a</p>", "<p>b</p>"}})
	require.NoError(t, err)
	assert.Equal(t, `<div style="border:1px solid #000000;border-radius:4px"><p>a</p><p>b</p></div>`, out)
}

func TestButton(t *testing.T) {
	block := document.Block{
		Type: document.ButtonBlockType,
		Data: document.BlockData{Props: &document.ButtonProps{
			Text:        document.Ptr("Go"),
			URL:         document.Ptr("https://example.com"),
			ButtonStyle: document.Ptr("pill"),
			Size:        document.Ptr("large"),
			FullWidth:   document.Ptr(true),
		}},
	}

	out := button(block)
	assert.Contains(t, out, "border-radius:64px")
	assert.Contains(t, out, "padding:16px 32px")
	assert.Contains(t, out, "display:block;width:100%")
	assert.Contains(t, out, "<span>Go</span>")
}

func TestAvatar(t *testing.T) {
	block := document.Block{
		Type: document.AvatarBlockType,
		Data: document.BlockData{Props: &document.AvatarProps{Size: document.Ptr(40), Shape: document.Ptr("rounded")}},
	}
	assert.Contains(t, avatar(block), "border-radius:5px")

	block.Data.Props = &document.AvatarProps{Size: document.Ptr(40), Shape: document.Ptr("circle")}
	assert.Contains(t, avatar(block), "border-radius:40px")
}

func TestColumnGaps(t *testing.T) {
	left, right := columnGaps(2, 0, 16)
	assert.Equal(t, 0.0, left)
	assert.Equal(t, 8.0, right)

	left, right = columnGaps(3, 1, 24)
	assert.Equal(t, 8.0, left)
	assert.Equal(t, 8.0, right)

	left, right = columnGaps(3, 2, 24)
	assert.Equal(t, 16.0, left)
	assert.Equal(t, 0.0, right)
}

func TestDocument(t *testing.T) {
	assert.Equal(t, "<!DOCTYPE html><html><body><p/></body></html>", Document("<p/>"))
}
