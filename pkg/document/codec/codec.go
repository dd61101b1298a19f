// Package codec converts documents to and from their JSON text and the
// compact fragment used in share URLs. Every decoding path runs the
// same validation: syntax, block schemas, the reserved root and the
// tree structure.
package codec

import (
	"bytes"
	stdjson "encoding/json"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/schema"
)

const codeDuplicate = "duplicate"

type Codec struct {
	registry *schema.Registry
	logger   *zap.Logger
}

type Option func(*Codec)

func WithRegistry(registry *schema.Registry) Option {
	return func(c *Codec) { c.registry = registry }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Codec) { c.logger = logger }
}

func New(opts ...Option) *Codec {
	c := &Codec{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = schema.New(schema.WithLogger(c.logger))
	}
	return c
}

var defaultCodec = sync.OnceValue(func() *Codec { return New() })

// Parse validates data with the default codec.
func Parse(data []byte) (document.Document, error) {
	return defaultCodec().Parse(data)
}

// Stringify exports doc with the default codec.
func Stringify(doc document.Document) ([]byte, error) {
	return defaultCodec().Stringify(doc)
}

// Parse decodes and validates a whole document. Failures are returned
// as *ImportError.
func (c *Codec) Parse(data []byte) (document.Document, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, c.fail(&ImportError{Kind: SyntaxError, Err: errors.WithStack(err)})
	}
	if _, ok := generic.(map[string]any); !ok {
		return nil, c.fail(&ImportError{Kind: SchemaError, Issues: []schema.Issue{{
			Code:    schema.CodeInvalidType,
			Message: "document must be an object of blocks keyed by id",
		}}})
	}

	duplicates, err := duplicateKeys(data)
	if err != nil {
		return nil, c.fail(&ImportError{Kind: SyntaxError, Err: err})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, c.fail(&ImportError{Kind: SyntaxError, Err: errors.WithStack(err)})
	}

	var issues []schema.Issue
	for _, id := range duplicates {
		issues = append(issues, schema.Issue{Path: id, Code: codeDuplicate, Message: "block id appears more than once"})
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	doc := make(document.Document, len(raw))
	for _, id := range ids {
		if id == "" {
			issues = append(issues, schema.Issue{Code: "required", Message: "block id must not be empty"})
			continue
		}

		var block document.Block
		if err := json.Unmarshal(raw[id], &block); err != nil {
			if errors.Is(err, document.ErrMissingData) {
				issues = append(issues, schema.Issue{Path: id + ".data", Code: "required", Message: err.Error()})
				continue
			}
			issues = append(issues, schema.Issue{Path: id, Code: schema.CodeInvalidType, Message: errors.Cause(err).Error()})
			continue
		}

		if err := c.registry.Validate(block); err != nil {
			verr, ok := schema.AsValidationError(err)
			if !ok {
				return nil, err
			}
			for _, issue := range verr.Issues {
				issue.Path = id + "." + issue.Path
				issues = append(issues, issue)
			}
			continue
		}

		doc[document.BlockID(id)] = block
	}

	if len(issues) > 0 {
		return nil, c.fail(&ImportError{Kind: SchemaError, Issues: issues})
	}

	root, ok := doc[document.RootBlockID]
	if !ok {
		return nil, c.fail(&ImportError{Kind: MissingRoot, Err: document.ErrRootMissing})
	}
	if root.Type != document.EmailLayoutBlockType {
		return nil, c.fail(&ImportError{Kind: SchemaError, Issues: []schema.Issue{{
			Path:    string(document.RootBlockID) + ".type",
			Code:    schema.CodeMismatch,
			Message: "root block must be " + document.EmailLayoutBlockType.String(),
		}}})
	}

	if err := document.CheckStructure(doc); err != nil {
		return nil, c.fail(&ImportError{Kind: StructureError, Err: err})
	}

	return doc, nil
}

func (c *Codec) fail(err *ImportError) error {
	c.logger.Debug("rejected document", zap.String("kind", string(err.Kind)), zap.Error(err))
	return err
}

// Stringify is the canonical export: ids sorted, two-space indent.
func (c *Codec) Stringify(doc document.Document) ([]byte, error) {
	data, err := document.EncodeJSON(doc, "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode document")
	}
	return data, nil
}

// duplicateKeys returns the top-level keys of a JSON object that occur
// more than once. Decoding into a map keeps only the last of them.
func duplicateKeys(data []byte) ([]string, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil {
		return nil, errors.WithStack(err)
	}

	seen := make(map[string]bool)
	var duplicates []string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected token %v", tok)
		}
		if seen[key] {
			duplicates = append(duplicates, key)
		}
		seen[key] = true

		var value stdjson.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return duplicates, nil
}
