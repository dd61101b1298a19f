package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/schema"
	"github.com/stateful/emailbuilder/pkg/document/store"
)

func sampleDocument(t *testing.T) document.Document {
	t.Helper()

	root, err := document.WithChildList(schema.Defaults(document.EmailLayoutBlockType), 0, []document.BlockID{"heading", "cols"})
	require.NoError(t, err)

	cols := schema.Defaults(document.ColumnsContainerBlockType)
	cols, err = document.WithChildList(cols, 1, []document.BlockID{"text"})
	require.NoError(t, err)

	text := schema.Defaults(document.TextBlockType)
	text.Data.Props.(*document.TextProps).Text = document.Ptr("Grüße, \"friend\" & 100% <ok>")

	return document.Document{
		document.RootBlockID: root,
		"heading":            schema.Defaults(document.HeadingBlockType),
		"cols":               cols,
		"text":               text,
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) *ImportError {
	t.Helper()
	ierr, ok := AsImportError(err)
	require.True(t, ok, "expected *ImportError, got %v", err)
	require.Equal(t, kind, ierr.Kind, ierr.Error())
	return ierr
}

func TestParse_RoundTrip(t *testing.T) {
	for name, doc := range map[string]document.Document{
		"Sample":  sampleDocument(t),
		"Default": schema.NewDocument(),
		"Empty":   document.Empty(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := Stringify(doc)
			require.NoError(t, err)

			parsed, err := Parse(data)
			require.NoError(t, err)
			assert.True(t, cmp.Equal(doc, parsed), cmp.Diff(doc, parsed))

			again, err := Stringify(parsed)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	for _, input := range []string{``, `{"root":`, `{root: 1}`, `{"a" 1}`} {
		_, err := Parse([]byte(input))
		requireKind(t, err, SyntaxError)
	}
}

func TestParse_SchemaError(t *testing.T) {
	t.Run("NotAnObject", func(t *testing.T) {
		_, err := Parse([]byte(`[]`))
		requireKind(t, err, SchemaError)
	})

	t.Run("InvalidColor", func(t *testing.T) {
		input := `{
			"root": {"type": "EmailLayout", "data": {"props": {"childrenIds": ["t"]}}},
			"t": {"type": "Text", "data": {"style": {"color": "red"}}}
		}`
		_, err := Parse([]byte(input))
		ierr := requireKind(t, err, SchemaError)
		require.Len(t, ierr.Issues, 1)
		assert.Equal(t, "t.data.style.color", ierr.Issues[0].Path)
	})

	t.Run("UnknownType", func(t *testing.T) {
		input := `{"root": {"type": "EmailLayout", "data": {}}, "v": {"type": "Video", "data": {}}}`
		_, err := Parse([]byte(input))
		ierr := requireKind(t, err, SchemaError)
		require.Len(t, ierr.Issues, 1)
		assert.Equal(t, "v", ierr.Issues[0].Path)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		input := `{"root": {"type": "EmailLayout", "data": {}}, "root": {"type": "EmailLayout", "data": {}}}`
		_, err := Parse([]byte(input))
		ierr := requireKind(t, err, SchemaError)
		assert.Equal(t, codeDuplicate, ierr.Issues[0].Code)
	})

	t.Run("RootOfWrongType", func(t *testing.T) {
		_, err := Parse([]byte(`{"root": {"type": "Text", "data": {}}}`))
		ierr := requireKind(t, err, SchemaError)
		assert.Equal(t, "root.type", ierr.Issues[0].Path)
	})

	t.Run("MissingData", func(t *testing.T) {
		_, err := Parse([]byte(`{"root": {"type": "EmailLayout"}}`))
		ierr := requireKind(t, err, SchemaError)
		require.Len(t, ierr.Issues, 1)
		assert.Equal(t, "root.data", ierr.Issues[0].Path)
		assert.Equal(t, "required", ierr.Issues[0].Code)
	})

	t.Run("AllBlocksReported", func(t *testing.T) {
		input := `{
			"root": {"type": "EmailLayout", "data": {"props": {"backdropColor": "blue"}}},
			"s": {"type": "Spacer", "data": {"props": {"height": -1}}}
		}`
		_, err := Parse([]byte(input))
		ierr := requireKind(t, err, SchemaError)
		require.Len(t, ierr.Issues, 2)
		assert.Equal(t, "root.data.props.backdropColor", ierr.Issues[0].Path)
		assert.Equal(t, "s.data.props.height", ierr.Issues[1].Path)
	})
}

func TestParse_MissingRoot(t *testing.T) {
	_, err := Parse([]byte(`{"x": {"type": "Text", "data": {"props": {"text": "hi"}}}}`))
	ierr := requireKind(t, err, MissingRoot)
	assert.ErrorIs(t, ierr, document.ErrRootMissing)

	_, err = Parse([]byte(`{}`))
	requireKind(t, err, MissingRoot)
}

func TestParse_StructureError(t *testing.T) {
	t.Run("Dangling", func(t *testing.T) {
		_, err := Parse([]byte(`{"root": {"type": "EmailLayout", "data": {"props": {"childrenIds": ["ghost"]}}}}`))
		ierr := requireKind(t, err, StructureError)
		assert.ErrorIs(t, ierr, document.ErrDanglingReference)
	})

	t.Run("NestedLayout", func(t *testing.T) {
		input := `{
			"root": {"type": "EmailLayout", "data": {"props": {"childrenIds": ["inner"]}}},
			"inner": {"type": "EmailLayout", "data": {"props": {"childrenIds": []}}}
		}`
		_, err := Parse([]byte(input))
		ierr := requireKind(t, err, StructureError)
		assert.ErrorIs(t, ierr, document.ErrNestedLayout)
	})

	t.Run("Cycle", func(t *testing.T) {
		input := `{
			"root": {"type": "EmailLayout", "data": {"props": {"childrenIds": []}}},
			"a": {"type": "Container", "data": {"props": {"childrenIds": ["b"]}}},
			"b": {"type": "Container", "data": {"props": {"childrenIds": ["a"]}}}
		}`
		_, err := Parse([]byte(input))
		ierr := requireKind(t, err, StructureError)
		assert.ErrorIs(t, ierr, document.ErrCycle)
	})
}

func TestImport(t *testing.T) {
	s := store.New(document.Empty())
	before := s.Get()

	err := New().Import(s, []byte(`{"x": {"type": "Text", "data": {}}}`))
	requireKind(t, err, MissingRoot)
	assert.Same(t, before, s.Get())

	data, err := Stringify(sampleDocument(t))
	require.NoError(t, err)

	s.SelectBlock(document.RootBlockID)
	require.NoError(t, New().Import(s, data))

	state := s.Get()
	assert.Len(t, state.Document, 4)
	assert.Empty(t, state.Selection.BlockID)
}
