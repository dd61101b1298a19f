package document

import (
	"bytes"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type BlockType int

const (
	UnknownBlockType BlockType = iota
	AvatarBlockType
	ButtonBlockType
	ColumnsContainerBlockType
	ContainerBlockType
	DividerBlockType
	EmailLayoutBlockType
	HeadingBlockType
	HTMLBlockType
	ImageBlockType
	SpacerBlockType
	TextBlockType
)

var blockTypeNames = map[BlockType]string{
	AvatarBlockType:           "Avatar",
	ButtonBlockType:           "Button",
	ColumnsContainerBlockType: "ColumnsContainer",
	ContainerBlockType:        "Container",
	DividerBlockType:          "Divider",
	EmailLayoutBlockType:      "EmailLayout",
	HeadingBlockType:          "Heading",
	HTMLBlockType:             "Html",
	ImageBlockType:            "Image",
	SpacerBlockType:           "Spacer",
	TextBlockType:             "Text",
}

// BlockTypes lists every known block type in a stable order.
var BlockTypes = []BlockType{
	AvatarBlockType,
	ButtonBlockType,
	ColumnsContainerBlockType,
	ContainerBlockType,
	DividerBlockType,
	EmailLayoutBlockType,
	HeadingBlockType,
	HTMLBlockType,
	ImageBlockType,
	SpacerBlockType,
	TextBlockType,
}

func (t BlockType) String() string {
	if name, ok := blockTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t BlockType) Valid() bool {
	_, ok := blockTypeNames[t]
	return ok
}

func ParseBlockType(s string) (BlockType, error) {
	for t, name := range blockTypeNames {
		if name == s {
			return t, nil
		}
	}
	return UnknownBlockType, errors.Errorf("unknown block type %q", s)
}

func (t BlockType) MarshalText() ([]byte, error) {
	if _, ok := blockTypeNames[t]; !ok {
		return nil, errors.Errorf("unknown block type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *BlockType) UnmarshalText(data []byte) error {
	parsed, err := ParseBlockType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsContainer reports whether blocks of this type own children lists.
func (t BlockType) IsContainer() bool {
	return t.ColumnCount() > 0
}

// ColumnCount returns the number of independent children lists a block
// of this type owns. Leaves own none.
func (t BlockType) ColumnCount() int {
	switch t {
	case ContainerBlockType, EmailLayoutBlockType:
		return 1
	case ColumnsContainerBlockType:
		return 3
	default:
		return 0
	}
}

// Block is a single node of a document. Children are referenced by id
// and never embedded.
type Block struct {
	Type BlockType
	Data BlockData
}

type BlockData struct {
	Props Props  `json:"props,omitempty"`
	Style *Style `json:"style,omitempty"`
}

// Props is implemented by the type-specific property structs.
type Props interface {
	BlockType() BlockType
	Clone() Props
}

// NewProps returns a zero-valued props struct for the given type.
func NewProps(t BlockType) (Props, error) {
	switch t {
	case AvatarBlockType:
		return &AvatarProps{}, nil
	case ButtonBlockType:
		return &ButtonProps{}, nil
	case ColumnsContainerBlockType:
		return &ColumnsContainerProps{}, nil
	case ContainerBlockType:
		return &ContainerProps{}, nil
	case DividerBlockType:
		return &DividerProps{}, nil
	case EmailLayoutBlockType:
		return &EmailLayoutProps{}, nil
	case HeadingBlockType:
		return &HeadingProps{}, nil
	case HTMLBlockType:
		return &HTMLProps{}, nil
	case ImageBlockType:
		return &ImageProps{}, nil
	case SpacerBlockType:
		return &SpacerProps{}, nil
	case TextBlockType:
		return &TextProps{}, nil
	default:
		return nil, errors.Errorf("unknown block type %d", int(t))
	}
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	clone := Block{Type: b.Type}
	if b.Data.Props != nil {
		clone.Data.Props = b.Data.Props.Clone()
	}
	if b.Data.Style != nil {
		clone.Data.Style = b.Data.Style.Clone()
	}
	return clone
}

// ErrMissingData is returned when a block object has no data member.
var ErrMissingData = errors.New("block data is required")

type rawBlock struct {
	Type BlockType `json:"type"`
	Data *rawData  `json:"data"`
}

type rawData struct {
	Props json.RawMessage `json:"props,omitempty"`
	Style *Style          `json:"style,omitempty"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	raw := rawBlock{Type: b.Type, Data: &rawData{Style: b.Data.Style}}
	if b.Data.Props != nil {
		if b.Data.Props.BlockType() != b.Type {
			return nil, errors.Errorf("props of %s attached to %s block", b.Data.Props.BlockType(), b.Type)
		}
		props, err := EncodeJSON(b.Data.Props, "")
		if err != nil {
			return nil, err
		}
		raw.Data.Props = props
	}
	return EncodeJSON(raw, "")
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw rawBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}
	if raw.Type == UnknownBlockType {
		return errors.New("block type is required")
	}
	if raw.Data == nil {
		return ErrMissingData
	}

	block := Block{Type: raw.Type, Data: BlockData{Style: raw.Data.Style}}

	if len(raw.Data.Props) > 0 && !bytes.Equal(bytes.TrimSpace(raw.Data.Props), []byte("null")) {
		props, err := NewProps(raw.Type)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw.Data.Props, props); err != nil {
			return errors.Wrapf(err, "failed to decode %s props", raw.Type)
		}
		block.Data.Props = props
	}

	*b = block
	return nil
}
