package document

import (
	"github.com/pkg/errors"
)

var ErrNotContainer = errors.New("block does not own children")

// ChildLists returns the children lists of a container block, one per
// column. A missing list is returned as nil. Leaves return nil.
func ChildLists(b Block) [][]BlockID {
	count := b.Type.ColumnCount()
	if count == 0 {
		return nil
	}

	lists := make([][]BlockID, count)

	switch props := b.Data.Props.(type) {
	case *ContainerProps:
		lists[0] = props.ChildrenIDs
	case *EmailLayoutProps:
		lists[0] = props.ChildrenIDs
	case *ColumnsContainerProps:
		for i := 0; i < count && i < len(props.Columns); i++ {
			lists[i] = props.Columns[i].ChildrenIDs
		}
	}

	return lists
}

// ChildList returns a single children list of a container block.
func ChildList(b Block, column int) ([]BlockID, error) {
	lists := ChildLists(b)
	if lists == nil {
		return nil, errors.Wrapf(ErrNotContainer, "block type %s", b.Type)
	}
	if column < 0 || column >= len(lists) {
		return nil, errors.Errorf("column %d out of range for %s", column, b.Type)
	}
	return lists[column], nil
}

// WithChildList returns a copy of b whose children list at column is
// replaced by ids. The original block is left untouched.
func WithChildList(b Block, column int, ids []BlockID) (Block, error) {
	if _, err := ChildList(b, column); err != nil {
		return Block{}, err
	}

	result := b.Clone()
	ids = cloneIDs(ids)

	switch result.Type {
	case ContainerBlockType:
		props, _ := result.Data.Props.(*ContainerProps)
		if props == nil {
			props = &ContainerProps{}
		}
		props.ChildrenIDs = ids
		result.Data.Props = props
	case EmailLayoutBlockType:
		props, _ := result.Data.Props.(*EmailLayoutProps)
		if props == nil {
			props = &EmailLayoutProps{}
		}
		props.ChildrenIDs = ids
		result.Data.Props = props
	case ColumnsContainerBlockType:
		props, _ := result.Data.Props.(*ColumnsContainerProps)
		if props == nil {
			props = &ColumnsContainerProps{}
		}
		for len(props.Columns) < 3 {
			props.Columns = append(props.Columns, Column{ChildrenIDs: []BlockID{}})
		}
		props.Columns[column].ChildrenIDs = ids
		result.Data.Props = props
	}

	return result, nil
}

// Children returns all child ids of a block, column by column.
func Children(b Block) []BlockID {
	var result []BlockID
	for _, list := range ChildLists(b) {
		result = append(result, list...)
	}
	return result
}

// Subtree returns id followed by the ids of all its descendants in
// depth-first order. Ids missing from the document are skipped and
// every id is visited at most once.
func Subtree(doc Document, id BlockID) []BlockID {
	seen := make(map[BlockID]bool)
	var result []BlockID

	var walk func(BlockID)
	walk = func(id BlockID) {
		block, ok := doc[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		result = append(result, id)

		for _, child := range Children(block) {
			walk(child)
		}
	}
	walk(id)

	return result
}

// FindParent returns the id of the block whose children lists contain
// id, together with the column index.
func FindParent(doc Document, id BlockID) (BlockID, int, bool) {
	for _, parentID := range doc.IDs() {
		for column, list := range ChildLists(doc[parentID]) {
			for _, child := range list {
				if child == id {
					return parentID, column, true
				}
			}
		}
	}
	return "", 0, false
}
