package document

// Leaf props. Pointer fields are optional: nil means "use the renderer default".

type TextProps struct {
	Text     *string `json:"text,omitempty"`
	Markdown *bool   `json:"markdown,omitempty"`
}

func (*TextProps) BlockType() BlockType { return TextBlockType }

func (p *TextProps) Clone() Props { c := *p; return &c }

type HeadingProps struct {
	Text  *string `json:"text,omitempty"`
	Level *string `json:"level,omitempty" validate:"omitempty,oneof=h1 h2 h3"`
}

func (*HeadingProps) BlockType() BlockType { return HeadingBlockType }

func (p *HeadingProps) Clone() Props { c := *p; return &c }

type ButtonProps struct {
	Text                  *string `json:"text,omitempty"`
	URL                   *string `json:"url,omitempty"`
	ButtonBackgroundColor *string `json:"buttonBackgroundColor,omitempty" validate:"omitempty,hexcolor6"`
	ButtonTextColor       *string `json:"buttonTextColor,omitempty" validate:"omitempty,hexcolor6"`
	ButtonStyle           *string `json:"buttonStyle,omitempty" validate:"omitempty,oneof=rectangle pill rounded"`
	Size                  *string `json:"size,omitempty" validate:"omitempty,oneof=x-small small medium large"`
	FullWidth             *bool   `json:"fullWidth,omitempty"`
}

func (*ButtonProps) BlockType() BlockType { return ButtonBlockType }

func (p *ButtonProps) Clone() Props { c := *p; return &c }

type ImageProps struct {
	URL              *string `json:"url,omitempty"`
	Alt              *string `json:"alt,omitempty"`
	LinkHref         *string `json:"linkHref,omitempty"`
	Width            *int    `json:"width,omitempty" validate:"omitempty,min=0"`
	Height           *int    `json:"height,omitempty" validate:"omitempty,min=0"`
	ContentAlignment *string `json:"contentAlignment,omitempty" validate:"omitempty,oneof=top middle bottom"`
}

func (*ImageProps) BlockType() BlockType { return ImageBlockType }

func (p *ImageProps) Clone() Props { c := *p; return &c }

type DividerProps struct {
	LineColor  *string `json:"lineColor,omitempty" validate:"omitempty,hexcolor6"`
	LineHeight *int    `json:"lineHeight,omitempty" validate:"omitempty,min=1"`
}

func (*DividerProps) BlockType() BlockType { return DividerBlockType }

func (p *DividerProps) Clone() Props { c := *p; return &c }

type SpacerProps struct {
	Height *int `json:"height,omitempty" validate:"omitempty,min=0"`
}

func (*SpacerProps) BlockType() BlockType { return SpacerBlockType }

func (p *SpacerProps) Clone() Props { c := *p; return &c }

type AvatarProps struct {
	ImageURL *string `json:"imageUrl,omitempty"`
	Alt      *string `json:"alt,omitempty"`
	Size     *int    `json:"size,omitempty" validate:"omitempty,min=1"`
	Shape    *string `json:"shape,omitempty" validate:"omitempty,oneof=circle square rounded"`
}

func (*AvatarProps) BlockType() BlockType { return AvatarBlockType }

func (p *AvatarProps) Clone() Props { c := *p; return &c }

// HTMLProps holds raw markup inserted verbatim into the output.
type HTMLProps struct {
	Contents *string `json:"contents,omitempty"`
}

func (*HTMLProps) BlockType() BlockType { return HTMLBlockType }

func (p *HTMLProps) Clone() Props { c := *p; return &c }

// Container props.

type ContainerProps struct {
	ChildrenIDs []BlockID `json:"childrenIds" validate:"dive,required"`
}

func (*ContainerProps) BlockType() BlockType { return ContainerBlockType }

func (p *ContainerProps) Clone() Props {
	return &ContainerProps{ChildrenIDs: cloneIDs(p.ChildrenIDs)}
}

type Column struct {
	ChildrenIDs []BlockID `json:"childrenIds" validate:"dive,required"`
}

type ColumnsContainerProps struct {
	ColumnsCount     *int     `json:"columnsCount,omitempty" validate:"omitempty,oneof=2 3"`
	ColumnsGap       *int     `json:"columnsGap,omitempty" validate:"omitempty,min=0"`
	ContentAlignment *string  `json:"contentAlignment,omitempty" validate:"omitempty,oneof=top middle bottom"`
	FixedWidths      []*int   `json:"fixedWidths,omitempty" validate:"omitempty,len=3,dive,omitempty,min=0"`
	Columns          []Column `json:"columns" validate:"len=3,dive"`
}

func (*ColumnsContainerProps) BlockType() BlockType { return ColumnsContainerBlockType }

func (p *ColumnsContainerProps) Clone() Props {
	c := *p
	if p.FixedWidths != nil {
		c.FixedWidths = make([]*int, len(p.FixedWidths))
		copy(c.FixedWidths, p.FixedWidths)
	}
	if p.Columns != nil {
		c.Columns = make([]Column, len(p.Columns))
		for i, col := range p.Columns {
			c.Columns[i] = Column{ChildrenIDs: cloneIDs(col.ChildrenIDs)}
		}
	}
	return &c
}

// EmailLayoutProps configures the document envelope. The layout block
// is always stored under RootBlockID.
type EmailLayoutProps struct {
	BackdropColor *string     `json:"backdropColor,omitempty" validate:"omitempty,hexcolor6"`
	CanvasColor   *string     `json:"canvasColor,omitempty" validate:"omitempty,hexcolor6"`
	TextColor     *string     `json:"textColor,omitempty" validate:"omitempty,hexcolor6"`
	BorderColor   *string     `json:"borderColor,omitempty" validate:"omitempty,hexcolor6"`
	BorderRadius  *int        `json:"borderRadius,omitempty" validate:"omitempty,min=0"`
	FontFamily    *FontFamily `json:"fontFamily,omitempty" validate:"omitempty,fontfamily"`
	ChildrenIDs   []BlockID   `json:"childrenIds" validate:"dive,required"`
}

func (*EmailLayoutProps) BlockType() BlockType { return EmailLayoutBlockType }

func (p *EmailLayoutProps) Clone() Props {
	c := *p
	c.ChildrenIDs = cloneIDs(p.ChildrenIDs)
	return &c
}

func cloneIDs(ids []BlockID) []BlockID {
	if ids == nil {
		return nil
	}
	result := make([]BlockID, len(ids))
	copy(result, ids)
	return result
}

// Ptr returns a pointer to v. It helps building optional props.
func Ptr[T any](v T) *T {
	return &v
}
