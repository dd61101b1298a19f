package document

import (
	"bytes"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// EncodeJSON marshals v without escaping <, > and &, so HTML in props
// is kept byte for byte. A non-empty indent pretty-prints the output.
func EncodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, errors.WithStack(err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
