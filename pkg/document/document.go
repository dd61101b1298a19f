package document

import (
	"sort"

	"github.com/pkg/errors"
)

// BlockID addresses a block within a single document.
type BlockID string

// RootBlockID is the reserved key of the layout block.
const RootBlockID BlockID = "root"

var ErrRootMissing = errors.New("document has no root block")

// Document is a flat arena of blocks keyed by id. Parent/child
// relations are expressed only through child id lists.
type Document map[BlockID]Block

// Empty returns a document consisting of a childless layout root.
func Empty() Document {
	return Document{
		RootBlockID: {
			Type: EmailLayoutBlockType,
			Data: BlockData{
				Props: &EmailLayoutProps{ChildrenIDs: []BlockID{}},
			},
		},
	}
}

// Root returns the layout block.
func (d Document) Root() (Block, error) {
	block, ok := d[RootBlockID]
	if !ok {
		return Block{}, ErrRootMissing
	}
	if block.Type != EmailLayoutBlockType {
		return Block{}, errors.Errorf("root block must be %s, got %s", EmailLayoutBlockType, block.Type)
	}
	return block, nil
}

// Clone returns a copy of the mapping. Blocks are deep-copied.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	result := make(Document, len(d))
	for id, block := range d {
		result[id] = block.Clone()
	}
	return result
}

// IDs returns the block ids in lexical order.
func (d Document) IDs() []BlockID {
	ids := make([]BlockID, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
