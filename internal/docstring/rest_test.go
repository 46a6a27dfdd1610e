package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestEmptyInput(t *testing.T) {
	for _, source := range []string{"", "\n"} {
		doc, err := parseRest(source)
		require.NoError(t, err, "source %q", source)
		assert.Nil(t, doc.ShortDescription)
		assert.Nil(t, doc.LongDescription)
		assert.Empty(t, doc.Meta)
	}
}

func TestRestParams(t *testing.T) {
	doc, err := parseRest("Short description")
	require.NoError(t, err)
	assert.Empty(t, doc.Params())

	doc, err = parseRest(`
Short description

:param name: description 1
:param int priority: description 2
:param sender: description 3
:type sender: str?
:param message: description 4, defaults to 'hello'
:type message: str?
`)
	require.NoError(t, err)
	params := doc.Params()
	require.Len(t, params, 4)

	assert.Equal(t, "name", params[0].ArgName)
	assert.Nil(t, params[0].TypeName)
	assert.Equal(t, Str("description 1"), params[0].Description)

	// inline three-token form carries the type
	assert.Equal(t, "priority", params[1].ArgName)
	assert.Equal(t, Str("int"), params[1].TypeName)

	assert.Equal(t, "sender", params[2].ArgName)
	assert.Equal(t, Str("str"), params[2].TypeName)
	assert.True(t, params[2].IsOptional)

	assert.Equal(t, "message", params[3].ArgName)
	assert.Equal(t, Str("'hello'"), params[3].Default)
}

func TestRestDetachedTypesMergeBeforeParam(t *testing.T) {
	// a :type: token may precede the :param: it describes
	doc, err := parseRest(`
Short description

:type sender: str
:param sender: description
`)
	require.NoError(t, err)
	params := doc.Params()
	require.Len(t, params, 1)
	assert.Equal(t, Str("str"), params[0].TypeName)
}

func TestRestReturnsAndYields(t *testing.T) {
	doc, err := parseRest(`
Short description

:returns: ret desc
:rtype: int
:yields: yield desc
:ytype: str
`)
	require.NoError(t, err)

	ret := doc.Returns()
	require.NotNil(t, ret)
	assert.Equal(t, Str("int"), ret.TypeName)
	assert.Equal(t, Str("ret desc"), ret.Description)
	assert.False(t, ret.IsGenerator)

	y := doc.Yields()
	require.NotNil(t, y)
	assert.Equal(t, Str("str"), y.TypeName)
	assert.Equal(t, Str("yield desc"), y.Description)
	assert.True(t, y.IsGenerator)
}

func TestRestBareRtype(t *testing.T) {
	source := "Short description.\n\n:rtype: float"
	doc, err := parseRest(source)
	require.NoError(t, err)
	ret := doc.Returns()
	require.NotNil(t, ret)
	assert.Equal(t, Str("float"), ret.TypeName)
	assert.Nil(t, ret.Description)
	assert.Equal(t, source, composeRest(doc, RenderingCompact, DefaultIndent))
}

func TestRestRaises(t *testing.T) {
	doc, err := parseRest("Short description\n:raises ValueError: exc desc\n")
	require.NoError(t, err)
	raises := doc.Raises()
	require.Len(t, raises, 1)
	assert.Equal(t, Str("ValueError"), raises[0].TypeName)
	assert.Equal(t, Str("exc desc"), raises[0].Description)
}

func TestRestUnknownKeywordIsGenericMeta(t *testing.T) {
	doc, err := parseRest("Short description\n:sthstrange: some text\n")
	require.NoError(t, err)
	require.Len(t, doc.Meta, 1)
	assert.Equal(t, []string{"sthstrange"}, doc.Meta[0].MetaArgs())
	assert.Equal(t, Str("some text"), doc.Meta[0].MetaDescription())
}

func TestRestBrokenMeta(t *testing.T) {
	var parseErr *ParseError

	_, err := parseRest(":")
	assert.ErrorAs(t, err, &parseErr)

	_, err = parseRest(":param herp derp")
	assert.ErrorAs(t, err, &parseErr)

	_, err = parseRest(":param: invalid")
	assert.ErrorAs(t, err, &parseErr)

	_, err = parseRest(":param 3 + 3 a: a param")
	assert.ErrorAs(t, err, &parseErr)
}

func TestRestCompose(t *testing.T) {
	cases := []struct {
		source   string
		expected string
	}{
		{"", ""},
		{"Short description", "Short description"},
		{
			"\nShort description\n\n:param name: description 1\n:type name: int\n",
			"Short description\n\n:type name: int\n:param name: description 1",
		},
		{
			"\nShort description\n:raises ValueError: exc desc\n",
			"Short description\n:raises ValueError: exc desc",
		},
		{
			"\nShort description\n:returns: ret desc\n:rtype: int\n",
			"Short description\n:rtype: int\n:returns: ret desc",
		},
	}
	for _, tc := range cases {
		doc, err := parseRest(tc.source)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, composeRest(doc, RenderingCompact, DefaultIndent), "source %q", tc.source)
	}
}

func TestRestComposeExpanded(t *testing.T) {
	doc, err := parseRest("\nShort description\n\n:param name: description 1\n:type name: int\n")
	require.NoError(t, err)
	expected := "Short description\n" +
		"\n" +
		":type name:\n" +
		"    int\n" +
		":param name:\n" +
		"    description 1"
	assert.Equal(t, expected, composeRest(doc, RenderingExpanded, DefaultIndent))
}
