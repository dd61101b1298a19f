package codec

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/schema"
)

// Produced by btoa(encodeURIComponent(JSON.stringify(doc))) for an
// empty layout.
const emptyLayoutFragment = "JTdCJTIycm9vdCUyMiUzQSU3QiUyMnR5cGUlMjIlM0ElMjJFbWFpbExheW91dCUyMiUyQyUyMmRhdGElMjIlM0ElN0IlMjJwcm9wcyUyMiUzQSU3QiUyMmNoaWxkcmVuSWRzJTIyJTNBJTVCJTVEJTdEJTdEJTdEJTdE"

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abcXYZ019", "abcXYZ019"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a b/é€?&=+", "a%20b%2F%C3%A9%E2%82%AC%3F%26%3D%2B"},
		{`{"a":1}`, "%7B%22a%22%3A1%7D"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, encodeURIComponent(tt.input), tt.input)
	}
}

func TestFragment_RoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	fragment, err := EncodeFragment(doc)
	require.NoError(t, err)
	assert.NotContains(t, fragment, "%")

	decoded, err := DecodeFragment(fragment)
	require.NoError(t, err)
	assert.True(t, cmp.Equal(doc, decoded), cmp.Diff(doc, decoded))
}

func TestEncodeFragment_KeepsHTML(t *testing.T) {
	html := schema.Defaults(document.HTMLBlockType)
	html.Data.Props = &document.HTMLProps{Contents: document.Ptr("<strong>Hello world</strong>")}
	root, err := document.WithChildList(schema.Defaults(document.EmailLayoutBlockType), 0, []document.BlockID{"html"})
	require.NoError(t, err)
	doc := document.Document{document.RootBlockID: root, "html": html}

	fragment, err := EncodeFragment(doc)
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(fragment)
	require.NoError(t, err)
	payload, err := url.PathUnescape(string(decoded))
	require.NoError(t, err)
	assert.Contains(t, payload, `"contents":"<strong>Hello world</strong>"`)
	assert.NotContains(t, payload, `\u003c`)

	data, err := Stringify(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contents": "<strong>Hello world</strong>"`)
}

func TestDecodeFragment_Compatible(t *testing.T) {
	doc, err := DecodeFragment(emptyLayoutFragment)
	require.NoError(t, err)
	assert.True(t, cmp.Equal(document.Empty(), doc), cmp.Diff(document.Empty(), doc))
}

func TestDecodeFragment_Errors(t *testing.T) {
	_, err := DecodeFragment("not base64!")
	assert.Error(t, err)

	_, err = DecodeFragment("JTJ")
	assert.Error(t, err)

	// Valid encoding of a document without a root.
	fragment, err := EncodeFragment(document.Document{"x": schema.Defaults(document.TextBlockType)})
	require.NoError(t, err)
	_, err = DecodeFragment(fragment)
	requireKind(t, err, MissingRoot)
}

func TestDecodeFragmentOr(t *testing.T) {
	c := New()
	fallback := sampleDocument(t)

	doc := c.DecodeFragmentOr("garbage", fallback)
	assert.True(t, cmp.Equal(fallback, doc))

	// The fallback is copied.
	doc["extra"] = schema.Defaults(document.SpacerBlockType)
	assert.NotContains(t, fallback, document.BlockID("extra"))

	doc = c.DecodeFragmentOr("garbage", nil)
	assert.True(t, cmp.Equal(schema.NewDocument(), doc))

	doc = c.DecodeFragmentOr(emptyLayoutFragment, fallback)
	assert.Len(t, doc, 1)
}

func TestShareURL(t *testing.T) {
	c := New()
	doc := sampleDocument(t)

	link, err := c.ShareURL("https://example.com/builder#old", doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/builder#code/"))
	assert.Equal(t, 1, strings.Count(link, "#"))

	decoded := c.FromHash(link, nil)
	assert.True(t, cmp.Equal(doc, decoded), cmp.Diff(doc, decoded))

	_, hash, _ := strings.Cut(link, "#")
	decoded = c.FromHash("#"+hash, nil)
	assert.True(t, cmp.Equal(doc, decoded))
}

func TestFromHash_Fallback(t *testing.T) {
	c := New()
	fallback := document.Empty()

	for _, hash := range []string{"", "#", "#other/abc", "#code/", "#code/@@@"} {
		doc := c.FromHash(hash, fallback)
		assert.True(t, cmp.Equal(fallback, doc), hash)
	}
}
