package renderer

import (
	"github.com/stateful/emailbuilder/internal/renderer/interactive"
	"github.com/stateful/emailbuilder/internal/renderer/markup"
	"github.com/stateful/emailbuilder/pkg/document"
)

type Options struct {
	// RootBlockID defaults to document.RootBlockID.
	RootBlockID document.BlockID
	// SelectedBlockID is marked in interactive output.
	SelectedBlockID document.BlockID
}

func (o Options) root() document.BlockID {
	if o.RootBlockID == "" {
		return document.RootBlockID
	}
	return o.RootBlockID
}

// RenderToStaticMarkup renders the subtree at opts.RootBlockID into a
// complete HTML document.
func RenderToStaticMarkup(doc document.Document, opts Options) (string, error) {
	body, err := Render[string](doc, opts.root(), markup.New())
	if err != nil {
		return "", err
	}
	return markup.Document(body), nil
}

// RenderInteractive renders the subtree at opts.RootBlockID into an
// element tree.
func RenderInteractive(doc document.Document, opts Options) (*interactive.Element, error) {
	return Render[*interactive.Element](
		doc,
		opts.root(),
		interactive.New(interactive.WithSelection(opts.SelectedBlockID)),
	)
}
