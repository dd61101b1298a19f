package schema

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/stateful/emailbuilder/pkg/document"
)

// Merge returns a copy of block with propsPatch and stylePatch merged
// over its props and style. Merging is shallow: each top-level key of a
// patch replaces the existing value wholesale and a nil value removes
// the key. Nested records such as padding are never merged field by
// field. The result is not validated.
func Merge(block document.Block, propsPatch, stylePatch map[string]any) (document.Block, error) {
	result := block.Clone()

	if len(propsPatch) > 0 {
		var current any
		if block.Data.Props != nil {
			current = block.Data.Props
		}
		raw, err := mergeRaw(current, propsPatch)
		if err != nil {
			return document.Block{}, err
		}
		props, err := document.NewProps(block.Type)
		if err != nil {
			return document.Block{}, &ValidationError{Issues: []Issue{{Path: "type", Code: CodeInvalidType, Message: err.Error()}}}
		}
		if err := json.Unmarshal(raw, props); err != nil {
			return document.Block{}, &ValidationError{Issues: []Issue{{Path: "data.props", Code: CodeInvalidType, Message: err.Error()}}}
		}
		result.Data.Props = props
	}

	if len(stylePatch) > 0 {
		var current any
		if block.Data.Style != nil {
			current = block.Data.Style
		}
		raw, err := mergeRaw(current, stylePatch)
		if err != nil {
			return document.Block{}, err
		}
		var style document.Style
		if err := json.Unmarshal(raw, &style); err != nil {
			return document.Block{}, &ValidationError{Issues: []Issue{{Path: "data.style", Code: CodeInvalidType, Message: err.Error()}}}
		}
		result.Data.Style = &style
	}

	return result, nil
}

func mergeRaw(current any, patch map[string]any) ([]byte, error) {
	fields := make(map[string]json.RawMessage)

	if current != nil {
		raw, err := json.Marshal(current)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	for key, value := range patch {
		if value == nil {
			delete(fields, key)
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %q", key)
		}
		fields[key] = raw
	}

	raw, err := json.Marshal(fields)
	return raw, errors.WithStack(err)
}
