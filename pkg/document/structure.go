package document

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	ErrDanglingReference = errors.New("child id does not resolve to a block")
	ErrSharedChild       = errors.New("child id has more than one parent")
	ErrCycle             = errors.New("children form a cycle")
	ErrRootReferenced    = errors.New("root block used as a child")
	ErrNestedLayout      = errors.New("EmailLayout can only be the root block")
)

// StructureViolation reports a tree invariant broken at a given block.
type StructureViolation struct {
	ID     BlockID
	Err    error
	Detail string
}

func (v *StructureViolation) Error() string {
	if v.Detail == "" {
		return fmt.Sprintf("%s: %s", v.ID, v.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", v.ID, v.Err, v.Detail)
}

func (v *StructureViolation) Unwrap() error { return v.Err }

// CheckStructure verifies the tree invariants of doc: a layout root
// exists and is the only EmailLayout, every child id resolves, no id has
// two parents, the root is nobody's child and there are no cycles. All violations are returned
// combined; use multierr.Errors to inspect them one by one.
func CheckStructure(doc Document) error {
	var err error

	if _, rootErr := doc.Root(); rootErr != nil {
		err = multierr.Append(err, &StructureViolation{ID: RootBlockID, Err: rootErr})
	}

	parents := make(map[BlockID]BlockID)

	for _, parentID := range doc.IDs() {
		if parentID != RootBlockID && doc[parentID].Type == EmailLayoutBlockType {
			err = multierr.Append(err, &StructureViolation{ID: parentID, Err: ErrNestedLayout})
		}
		for column, list := range ChildLists(doc[parentID]) {
			for _, child := range list {
				switch {
				case child == RootBlockID:
					err = multierr.Append(err, &StructureViolation{
						ID:     parentID,
						Err:    ErrRootReferenced,
						Detail: fmt.Sprintf("column %d", column),
					})
					continue
				case !has(doc, child):
					err = multierr.Append(err, &StructureViolation{
						ID:     parentID,
						Err:    ErrDanglingReference,
						Detail: fmt.Sprintf("column %d references %q", column, child),
					})
					continue
				}

				if first, ok := parents[child]; ok {
					err = multierr.Append(err, &StructureViolation{
						ID:     child,
						Err:    ErrSharedChild,
						Detail: fmt.Sprintf("parents %q and %q", first, parentID),
					})
					continue
				}
				parents[child] = parentID
			}
		}
	}

	return multierr.Append(err, checkCycles(doc))
}

func has(doc Document, id BlockID) bool {
	_, ok := doc[id]
	return ok
}

const (
	white = iota
	grey
	black
)

func checkCycles(doc Document) error {
	var err error
	color := make(map[BlockID]int, len(doc))

	var visit func(id BlockID)
	visit = func(id BlockID) {
		color[id] = grey
		for _, child := range Children(doc[id]) {
			if !has(doc, child) {
				continue
			}
			switch color[child] {
			case grey:
				err = multierr.Append(err, &StructureViolation{
					ID:     id,
					Err:    ErrCycle,
					Detail: fmt.Sprintf("back edge to %q", child),
				})
			case white:
				visit(child)
			}
		}
		color[id] = black
	}

	for _, id := range doc.IDs() {
		if color[id] == white {
			visit(id)
		}
	}

	return err
}
