package codec

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/stateful/emailbuilder/pkg/document/schema"
)

type ErrorKind string

const (
	// SyntaxError means the input is not JSON.
	SyntaxError ErrorKind = "SyntaxError"
	// SchemaError means the input is JSON but some block, or the
	// document as a whole, has the wrong shape.
	SchemaError ErrorKind = "SchemaError"
	// MissingRoot means the document has no "root" key.
	MissingRoot ErrorKind = "MissingRoot"
	// StructureError means the blocks are well-formed but the children
	// references do not form a tree.
	StructureError ErrorKind = "StructureError"
)

// ImportError is returned by Parse. The document it was parsing must
// not be used.
type ImportError struct {
	Kind ErrorKind
	// Issues are set for SchemaError. Paths start with the block id.
	Issues []schema.Issue
	Err    error
}

func (e *ImportError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	for i, issue := range e.Issues {
		if i == 0 && e.Err == nil {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

func (e *ImportError) Unwrap() error { return e.Err }

// AsImportError extracts an *ImportError from err.
func AsImportError(err error) (*ImportError, bool) {
	var ierr *ImportError
	if errors.As(err, &ierr) {
		return ierr, true
	}
	return nil, false
}
