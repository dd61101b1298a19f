// Package renderer walks a document from a root id and turns it into
// output. The traversal and the per-type dispatch live here; what is
// produced for each block is decided by a Backend.
package renderer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/stateful/emailbuilder/pkg/document"
)

// Backend produces output of type T for a single block. Leaf is called
// for blocks without children. Container receives the already rendered
// children, one slice per column, in list order.
type Backend[T any] interface {
	Leaf(id document.BlockID, block document.Block) (T, error)
	Container(id document.BlockID, block document.Block, columns [][]T) (T, error)
}

// UnresolvedReferenceError is returned when the root id or a child id
// is not a key of the document. It aborts the whole render.
type UnresolvedReferenceError struct {
	ID     document.BlockID
	Parent document.BlockID
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("unresolved block %q", e.ID)
	}
	return fmt.Sprintf("unresolved block %q referenced by %q", e.ID, e.Parent)
}

// Render renders the subtree of doc rooted at rootID with backend. The
// tree invariant is assumed; there is no cycle detection.
func Render[T any](doc document.Document, rootID document.BlockID, backend Backend[T]) (T, error) {
	return render(doc, "", rootID, backend)
}

func render[T any](doc document.Document, parentID, id document.BlockID, backend Backend[T]) (result T, _ error) {
	block, ok := doc[id]
	if !ok {
		return result, &UnresolvedReferenceError{ID: id, Parent: parentID}
	}

	switch block.Type {
	case document.AvatarBlockType,
		document.ButtonBlockType,
		document.DividerBlockType,
		document.HeadingBlockType,
		document.HTMLBlockType,
		document.ImageBlockType,
		document.SpacerBlockType,
		document.TextBlockType:
		return backend.Leaf(id, block)

	case document.ContainerBlockType,
		document.ColumnsContainerBlockType,
		document.EmailLayoutBlockType:
		lists := document.ChildLists(block)
		columns := make([][]T, len(lists))
		for i, list := range lists {
			columns[i] = make([]T, 0, len(list))
			for _, childID := range list {
				child, err := render(doc, id, childID, backend)
				if err != nil {
					return result, err
				}
				columns[i] = append(columns[i], child)
			}
		}
		return backend.Container(id, block, columns)

	default:
		return result, errors.Errorf("block %q has unknown type %s", id, block.Type)
	}
}
