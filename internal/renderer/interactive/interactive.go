// Package interactive renders a document into an addressable element
// tree for editing surfaces. Leaves carry their preview markup and every
// children list exposes the insertion slots the editor accepts.
package interactive

import (
	"github.com/stateful/emailbuilder/internal/renderer/markup"
	"github.com/stateful/emailbuilder/pkg/document"
)

type Element struct {
	ID       document.BlockID   `json:"id"`
	Type     document.BlockType `json:"type"`
	Data     document.BlockData `json:"data"`
	Selected bool               `json:"selected,omitempty"`
	// Markup is set for leaves only.
	Markup string  `json:"markup,omitempty"`
	Lists  []*List `json:"lists,omitempty"`
}

// List is one children list of a container element.
type List struct {
	Column   int        `json:"column"`
	Children []*Element `json:"children"`
	// Slots has one entry per insertion position, len(Children)+1 in total.
	Slots []Slot `json:"slots"`
}

// Slot addresses a position where a new block can be inserted. The
// fields match the arguments of the editor's insert operation.
type Slot struct {
	ParentID document.BlockID `json:"parentId"`
	Column   int              `json:"column"`
	Index    int              `json:"index"`
}

// Find returns the element with the given id from the tree rooted at e.
func (e *Element) Find(id document.BlockID) *Element {
	if e == nil {
		return nil
	}
	if e.ID == id {
		return e
	}
	for _, list := range e.Lists {
		for _, child := range list.Children {
			if found := child.Find(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// Walk calls fn for e and every descendant in depth-first order.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, list := range e.Lists {
		for _, child := range list.Children {
			child.Walk(fn)
		}
	}
}

type Renderer struct {
	leaves   *markup.Renderer
	selected document.BlockID
}

type Option func(*Renderer)

// WithSelection marks the element with the given id as selected.
func WithSelection(id document.BlockID) Option {
	return func(r *Renderer) { r.selected = id }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{leaves: markup.New()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Leaf(id document.BlockID, block document.Block) (*Element, error) {
	html, err := r.leaves.Leaf(id, block)
	if err != nil {
		return nil, err
	}
	return &Element{
		ID:       id,
		Type:     block.Type,
		Data:     block.Data,
		Selected: id == r.selected,
		Markup:   html,
	}, nil
}

func (r *Renderer) Container(id document.BlockID, block document.Block, columns [][]*Element) (*Element, error) {
	e := &Element{
		ID:       id,
		Type:     block.Type,
		Data:     block.Data,
		Selected: id == r.selected,
		Lists:    make([]*List, 0, len(columns)),
	}

	for column, children := range columns {
		list := &List{
			Column:   column,
			Children: children,
			Slots:    make([]Slot, 0, len(children)+1),
		}
		for index := 0; index <= len(children); index++ {
			list.Slots = append(list.Slots, Slot{ParentID: id, Column: column, Index: index})
		}
		e.Lists = append(e.Lists, list)
	}

	return e, nil
}
