package codec

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/schema"
)

// FragmentPrefix precedes the encoded document in a share URL's
// fragment.
const FragmentPrefix = "code/"

// EncodeFragment encodes doc with the default codec.
func EncodeFragment(doc document.Document) (string, error) {
	return defaultCodec().EncodeFragment(doc)
}

// DecodeFragment decodes s with the default codec.
func DecodeFragment(s string) (document.Document, error) {
	return defaultCodec().DecodeFragment(s)
}

// EncodeFragment returns base64(encodeURIComponent(JSON(doc))). The JSON
// is compact.
func (c *Codec) EncodeFragment(doc document.Document) (string, error) {
	data, err := document.EncodeJSON(doc, "")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode document")
	}
	return base64.StdEncoding.EncodeToString([]byte(encodeURIComponent(string(data)))), nil
}

// DecodeFragment is the inverse of EncodeFragment. The decoded payload
// goes through Parse.
func (c *Codec) DecodeFragment(s string) (document.Document, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 in fragment")
	}
	text, err := url.PathUnescape(string(decoded))
	if err != nil {
		return nil, errors.Wrap(err, "invalid percent-encoding in fragment")
	}
	return c.Parse([]byte(text))
}

// DecodeFragmentOr decodes s and returns a copy of fallback on any
// failure. A nil fallback means a fresh default document.
func (c *Codec) DecodeFragmentOr(s string, fallback document.Document) document.Document {
	doc, err := c.DecodeFragment(s)
	if err != nil {
		c.logger.Info("falling back to default document", zap.Error(err))
		return fallbackDocument(fallback)
	}
	return doc
}

func fallbackDocument(fallback document.Document) document.Document {
	if fallback == nil {
		return schema.NewDocument()
	}
	return fallback.Clone()
}

// ShareURL returns base with its fragment replaced by #code/<fragment>.
func (c *Codec) ShareURL(base string, doc document.Document) (string, error) {
	fragment, err := c.EncodeFragment(doc)
	if err != nil {
		return "", err
	}
	base, _, _ = strings.Cut(base, "#")
	return base + "#" + FragmentPrefix + fragment, nil
}

// FromHash reads the document from a location hash such as
// "#code/<fragment>" or from a full URL carrying one. Anything else,
// including an empty hash, yields the fallback.
func (c *Codec) FromHash(hash string, fallback document.Document) document.Document {
	if _, fragment, found := strings.Cut(hash, "#"); found {
		hash = fragment
	}
	encoded, ok := strings.CutPrefix(hash, FragmentPrefix)
	if !ok {
		if hash != "" {
			c.logger.Info("ignoring unknown location hash", zap.String("hash", hash))
		}
		return fallbackDocument(fallback)
	}
	return c.DecodeFragmentOr(encoded, fallback)
}

// encodeURIComponent escapes every byte except the unreserved marks
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) so that the result is plain ASCII.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
