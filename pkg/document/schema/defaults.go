package schema

import (
	"github.com/stateful/emailbuilder/pkg/document"
)

var ptr = document.Ptr[string]

// Defaults returns the default-valued block inserted when a user adds a
// block of type t. Every call returns a fresh value.
func Defaults(t document.BlockType) document.Block {
	padding := func() *document.Padding { return document.NewPadding(16, 16, 24, 24) }

	block := document.Block{Type: t}

	switch t {
	case document.AvatarBlockType:
		block.Data.Props = &document.AvatarProps{
			ImageURL: ptr("https://ui-avatars.com/api/?size=128"),
			Size:     document.Ptr(64),
			Shape:    ptr("circle"),
		}
		block.Data.Style = &document.Style{TextAlign: ptr("center"), Padding: padding()}
	case document.ButtonBlockType:
		block.Data.Props = &document.ButtonProps{
			Text: ptr("Button"),
			URL:  ptr("https://example.com"),
		}
		block.Data.Style = &document.Style{Padding: padding()}
	case document.ColumnsContainerBlockType:
		block.Data.Props = &document.ColumnsContainerProps{
			ColumnsCount: document.Ptr(3),
			Columns: []document.Column{
				{ChildrenIDs: []document.BlockID{}},
				{ChildrenIDs: []document.BlockID{}},
				{ChildrenIDs: []document.BlockID{}},
			},
		}
		block.Data.Style = &document.Style{Padding: padding()}
	case document.ContainerBlockType:
		block.Data.Props = &document.ContainerProps{ChildrenIDs: []document.BlockID{}}
		block.Data.Style = &document.Style{Padding: padding()}
	case document.DividerBlockType:
		block.Data.Props = &document.DividerProps{
			LineColor:  ptr("#CCCCCC"),
			LineHeight: document.Ptr(1),
		}
		block.Data.Style = &document.Style{Padding: document.NewPadding(16, 16, 0, 0)}
	case document.EmailLayoutBlockType:
		block.Data.Props = &document.EmailLayoutProps{
			BackdropColor: ptr("#F5F5F5"),
			CanvasColor:   ptr("#FFFFFF"),
			TextColor:     ptr("#262626"),
			FontFamily:    document.Ptr(document.FontModernSans),
			ChildrenIDs:   []document.BlockID{},
		}
	case document.HeadingBlockType:
		block.Data.Props = &document.HeadingProps{Text: ptr("Hello friend"), Level: ptr("h2")}
		block.Data.Style = &document.Style{Padding: document.NewPadding(16, 16, 24, 24)}
	case document.HTMLBlockType:
		block.Data.Props = &document.HTMLProps{Contents: ptr("<strong>Hello world</strong>")}
		block.Data.Style = &document.Style{FontSize: document.Ptr(16), Padding: padding()}
	case document.ImageBlockType:
		block.Data.Props = &document.ImageProps{
			URL:              ptr("https://example.com/sample-image.jpg"),
			Alt:              ptr("Sample product"),
			ContentAlignment: ptr("middle"),
		}
		block.Data.Style = &document.Style{Padding: padding()}
	case document.SpacerBlockType:
		block.Data.Props = &document.SpacerProps{Height: document.Ptr(16)}
	case document.TextBlockType:
		block.Data.Props = &document.TextProps{Text: ptr("My new text block")}
		block.Data.Style = &document.Style{FontWeight: ptr("normal"), Padding: padding()}
	}

	return block
}

// NewDocument returns an empty document whose root carries the layout
// defaults.
func NewDocument() document.Document {
	return document.Document{document.RootBlockID: Defaults(document.EmailLayoutBlockType)}
}
