// Package editor is the only legal way to change the shape of a
// document. Every operation reads the current snapshot and commits
// exactly one change set holding both the touched child and the
// updated parent, so no snapshot ever references a missing id.
package editor

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/identity"
	"github.com/stateful/emailbuilder/pkg/document/schema"
	"github.com/stateful/emailbuilder/pkg/document/store"
)

var (
	ErrBlockNotFound  = errors.New("block not found")
	ErrNotAChild      = errors.New("block is not a child of the given parent")
	ErrNonEmptyInsert = errors.New("inserted container must not have children")
)

type Direction int

const (
	Up Direction = iota + 1
	Down
)

// Editor holds no lock of its own. Each operation is a single
// store.Transact, so it may be called from a store listener.
type Editor struct {
	store    *store.Store
	registry *schema.Registry
	ids      identity.Generator
	logger   *zap.Logger
}

type Option func(*Editor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) { e.logger = logger }
}

func WithGenerator(gen identity.Generator) Option {
	return func(e *Editor) { e.ids = gen }
}

func New(s *store.Store, registry *schema.Registry, opts ...Option) *Editor {
	e := &Editor{
		store:    s,
		registry: registry,
		ids:      identity.ULID(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AppendBlock adds a default-valued block of type t at the end of the
// parent's children list.
func (e *Editor) AppendBlock(parentID document.BlockID, column int, t document.BlockType) (document.BlockID, error) {
	return e.AddBlock(parentID, column, -1, schema.Defaults(t))
}

// InsertBlock adds a default-valued block of type t at index.
func (e *Editor) InsertBlock(parentID document.BlockID, column, index int, t document.BlockType) (document.BlockID, error) {
	if index < 0 {
		index = 0
	}
	return e.AddBlock(parentID, column, index, schema.Defaults(t))
}

// InsertBlockAfter adds a default-valued block of type t right after
// siblingID.
func (e *Editor) InsertBlockAfter(parentID document.BlockID, column int, siblingID document.BlockID, t document.BlockType) (document.BlockID, error) {
	return e.add(parentID, column, schema.Defaults(t), func(ids []document.BlockID) (int, error) {
		pos := indexOf(ids, siblingID)
		if pos < 0 {
			return 0, errors.Wrapf(ErrNotAChild, "sibling %q of %q", siblingID, parentID)
		}
		return pos + 1, nil
	})
}

// AddBlock inserts block under parentID at index in the given column. A
// negative index appends. The block is validated first and gets a fresh
// id that is unused anywhere in the document. The new block is selected
// in the same commit.
func (e *Editor) AddBlock(parentID document.BlockID, column, index int, block document.Block) (document.BlockID, error) {
	return e.add(parentID, column, block, func(ids []document.BlockID) (int, error) {
		if index < 0 {
			return len(ids), nil
		}
		return index, nil
	})
}

func (e *Editor) add(
	parentID document.BlockID,
	column int,
	block document.Block,
	position func([]document.BlockID) (int, error),
) (document.BlockID, error) {
	if block.Type == document.EmailLayoutBlockType {
		return "", errors.Wrapf(document.ErrNestedLayout, "parent %q", parentID)
	}
	if err := e.registry.Validate(block); err != nil {
		return "", err
	}
	if len(document.Children(block)) > 0 {
		return "", ErrNonEmptyInsert
	}

	var (
		newID document.BlockID
		index int
	)
	err := e.store.Transact(func(state *store.State) (store.ChangeSet, error) {
		parent, ok := state.Block(parentID)
		if !ok {
			return store.ChangeSet{}, errors.Wrapf(ErrBlockNotFound, "parent %q", parentID)
		}
		ids, err := document.ChildList(parent, column)
		if err != nil {
			return store.ChangeSet{}, err
		}
		index, err = position(ids)
		if err != nil {
			return store.ChangeSet{}, err
		}

		inUse := func(id document.BlockID) bool {
			_, exists := state.Document[id]
			return exists
		}
		var newIDs []document.BlockID
		newID, newIDs, err = insertAt(e.ids, ids, index, inUse)
		if err != nil {
			return store.ChangeSet{}, err
		}

		updatedParent, err := document.WithChildList(parent, column, newIDs)
		if err != nil {
			return store.ChangeSet{}, err
		}

		return store.ChangeSet{
			Put:    document.Document{newID: block, parentID: updatedParent},
			Select: newID,
		}, nil
	})
	if err != nil {
		return "", err
	}

	e.logger.Debug(
		"inserted block",
		zap.String("id", string(newID)),
		zap.Stringer("type", block.Type),
		zap.String("parent", string(parentID)),
		zap.Int("column", column),
		zap.Int("index", index),
	)

	return newID, nil
}

// RemoveBlock detaches childID from the parent's list and deletes its
// subtree in the same commit. Descendants still referenced from outside
// the removed subtree are kept.
func (e *Editor) RemoveBlock(parentID document.BlockID, column int, childID document.BlockID) error {
	var removed []document.BlockID
	err := e.store.Transact(func(state *store.State) (store.ChangeSet, error) {
		parent, ok := state.Block(parentID)
		if !ok {
			return store.ChangeSet{}, errors.Wrapf(ErrBlockNotFound, "parent %q", parentID)
		}
		ids, err := document.ChildList(parent, column)
		if err != nil {
			return store.ChangeSet{}, err
		}
		pos := indexOf(ids, childID)
		if pos < 0 {
			return store.ChangeSet{}, errors.Wrapf(ErrNotAChild, "%q of %q", childID, parentID)
		}

		newIDs := make([]document.BlockID, 0, len(ids)-1)
		newIDs = append(newIDs, ids[:pos]...)
		newIDs = append(newIDs, ids[pos+1:]...)

		updatedParent, err := document.WithChildList(parent, column, newIDs)
		if err != nil {
			return store.ChangeSet{}, err
		}

		view := make(document.Document, len(state.Document))
		for id, block := range state.Document {
			view[id] = block
		}
		view[parentID] = updatedParent

		removed = removableSubtree(view, childID)

		return store.ChangeSet{
			Put:    document.Document{parentID: updatedParent},
			Remove: removed,
		}, nil
	})
	if err != nil {
		return err
	}

	e.logger.Debug("removed block", zap.String("id", string(childID)), zap.Int("blocks", len(removed)))

	return nil
}

// removableSubtree returns the ids of root's subtree that no block
// outside the subtree references. doc must already have root detached
// from its parent.
func removableSubtree(doc document.Document, root document.BlockID) []document.BlockID {
	subtree := document.Subtree(doc, root)
	inSubtree := make(map[document.BlockID]bool, len(subtree))
	for _, id := range subtree {
		inSubtree[id] = true
	}

	for id, block := range doc {
		if inSubtree[id] {
			continue
		}
		for _, child := range document.Children(block) {
			if inSubtree[child] {
				// Still referenced from outside: keep it and what it owns.
				for _, kept := range document.Subtree(doc, child) {
					delete(inSubtree, kept)
				}
			}
		}
	}

	result := make([]document.BlockID, 0, len(inSubtree))
	for _, id := range subtree {
		if inSubtree[id] {
			result = append(result, id)
		}
	}
	return result
}

// MoveBlock swaps childID with its neighbour in the given direction.
// Moving past either end is a no-op.
func (e *Editor) MoveBlock(parentID document.BlockID, column int, childID document.BlockID, dir Direction) error {
	return e.store.Transact(func(state *store.State) (store.ChangeSet, error) {
		parent, ok := state.Block(parentID)
		if !ok {
			return store.ChangeSet{}, errors.Wrapf(ErrBlockNotFound, "parent %q", parentID)
		}
		ids, err := document.ChildList(parent, column)
		if err != nil {
			return store.ChangeSet{}, err
		}
		pos := indexOf(ids, childID)
		if pos < 0 {
			return store.ChangeSet{}, errors.Wrapf(ErrNotAChild, "%q of %q", childID, parentID)
		}

		target := pos - 1
		if dir == Down {
			target = pos + 1
		}
		if target < 0 || target >= len(ids) {
			return store.ChangeSet{}, nil
		}

		newIDs := make([]document.BlockID, len(ids))
		copy(newIDs, ids)
		newIDs[pos], newIDs[target] = newIDs[target], newIDs[pos]

		updatedParent, err := document.WithChildList(parent, column, newIDs)
		if err != nil {
			return store.ChangeSet{}, err
		}
		return store.ChangeSet{Put: document.Document{parentID: updatedParent}}, nil
	})
}

// SetData merges the patches over the stored block, validates the
// result and commits it. On a validation failure the store is left
// untouched and a *schema.ValidationError is returned. Children lists
// cannot be changed here.
func (e *Editor) SetData(id document.BlockID, propsPatch, stylePatch map[string]any) error {
	for _, key := range []string{"childrenIds", "columns"} {
		if _, ok := propsPatch[key]; ok {
			return &schema.ValidationError{Issues: []schema.Issue{{
				Path:    "data.props." + key,
				Code:    schema.CodeNotAllowed,
				Message: "children are changed through tree operations",
			}}}
		}
	}

	err := e.store.Transact(func(state *store.State) (store.ChangeSet, error) {
		block, ok := state.Block(id)
		if !ok {
			return store.ChangeSet{}, errors.Wrapf(ErrBlockNotFound, "%q", id)
		}
		updated, err := e.registry.Update(block, propsPatch, stylePatch)
		if err != nil {
			return store.ChangeSet{}, err
		}
		return store.ChangeSet{Put: document.Document{id: updated}}, nil
	})
	if err != nil {
		e.logger.Debug("rejected block update", zap.String("id", string(id)), zap.Error(err))
	}
	return err
}
