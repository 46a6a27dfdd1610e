package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRestAutodetection(t *testing.T) {
	doc, err := Parse(`
Short description

Long description

Causing people to indent:

    A lot sometimes

:param spam: spam desc
:param int bla: bla desc
:param str yay:
:raises ValueError: exc desc
:returns tuple: ret desc
`, StyleAuto)
	require.NoError(t, err)

	assert.Equal(t, StyleRest, doc.Style)
	assert.Equal(t, Str("Short description"), doc.ShortDescription)
	assert.Equal(t, Str("Long description\n\nCausing people to indent:\n\n    A lot sometimes"), doc.LongDescription)

	params := doc.Params()
	require.Len(t, params, 3)
	assert.Equal(t, "spam", params[0].ArgName)
	assert.Nil(t, params[0].TypeName)
	assert.Equal(t, Str("spam desc"), params[0].Description)
	assert.Equal(t, "bla", params[1].ArgName)
	assert.Equal(t, Str("int"), params[1].TypeName)
	assert.Equal(t, Str("bla desc"), params[1].Description)
	assert.Equal(t, "yay", params[2].ArgName)
	assert.Equal(t, Str("str"), params[2].TypeName)
	assert.Equal(t, Str(""), params[2].Description)

	raises := doc.Raises()
	require.Len(t, raises, 1)
	assert.Equal(t, Str("ValueError"), raises[0].TypeName)
	assert.Equal(t, Str("exc desc"), raises[0].Description)

	ret := doc.Returns()
	require.NotNil(t, ret)
	assert.Equal(t, Str("tuple"), ret.TypeName)
	assert.Equal(t, Str("ret desc"), ret.Description)
	require.Len(t, doc.ManyReturns(), 1)
}

func TestParseGoogleAutodetection(t *testing.T) {
	doc, err := Parse(`Short description

Long description

Causing people to indent:

    A lot sometimes

Args:
    spam: spam desc
    bla (int): bla desc
    yay (str):

Raises:
    ValueError: exc desc

Returns:
    tuple: ret desc
`, StyleAuto)
	require.NoError(t, err)

	assert.Equal(t, StyleGoogle, doc.Style)
	assert.Equal(t, Str("Short description"), doc.ShortDescription)
	assert.Equal(t, Str("Long description\n\nCausing people to indent:\n\n    A lot sometimes"), doc.LongDescription)

	params := doc.Params()
	require.Len(t, params, 3)
	assert.Equal(t, "spam", params[0].ArgName)
	assert.Nil(t, params[0].TypeName)
	assert.Equal(t, "bla", params[1].ArgName)
	assert.Equal(t, Str("int"), params[1].TypeName)
	assert.Equal(t, "yay", params[2].ArgName)
	assert.Equal(t, Str("str"), params[2].TypeName)
	assert.Equal(t, Str(""), params[2].Description)

	require.Len(t, doc.Raises(), 1)
	ret := doc.Returns()
	require.NotNil(t, ret)
	assert.Equal(t, Str("tuple"), ret.TypeName)
	assert.Equal(t, Str("ret desc"), ret.Description)
}

func TestParseNumpydocAutodetection(t *testing.T) {
	doc, err := Parse(`Short description

Long description

Causing people to indent:

    A lot sometimes

Parameters
----------
spam
    spam desc
bla : int
    bla desc
yay : str

Raises
------
ValueError
    exc desc

Other Parameters
----------------
this_guy : int, optional
    you know him

Returns
-------
tuple
    ret desc

See Also
--------
multiple lines...
something else?

Warnings
--------
multiple lines...
none of this is real!
`, StyleAuto)
	require.NoError(t, err)

	assert.Equal(t, StyleNumpydoc, doc.Style)
	assert.Equal(t, Str("Short description"), doc.ShortDescription)
	assert.Equal(t, Str("Long description\n\nCausing people to indent:\n\n    A lot sometimes"), doc.LongDescription)

	params := doc.Params()
	require.Len(t, params, 4)
	assert.Equal(t, "spam", params[0].ArgName)
	assert.Nil(t, params[0].TypeName)
	assert.Equal(t, Str("spam desc"), params[0].Description)
	assert.Equal(t, "bla", params[1].ArgName)
	assert.Equal(t, Str("int"), params[1].TypeName)
	assert.Equal(t, "yay", params[2].ArgName)
	assert.Equal(t, Str("str"), params[2].TypeName)
	assert.Nil(t, params[2].Description)
	assert.Equal(t, "this_guy", params[3].ArgName)
	assert.Equal(t, Str("int"), params[3].TypeName)
	assert.True(t, params[3].IsOptional)
	assert.Equal(t, Str("you know him"), params[3].Description)

	raises := doc.Raises()
	require.Len(t, raises, 1)
	assert.Equal(t, Str("ValueError"), raises[0].TypeName)
	assert.Equal(t, Str("exc desc"), raises[0].Description)

	ret := doc.Returns()
	require.NotNil(t, ret)
	assert.Equal(t, Str("tuple"), ret.TypeName)
	assert.Equal(t, Str("ret desc"), ret.Description)
}

func TestAutodetectionFallsBackAcrossStyles(t *testing.T) {
	source := "\nDoes something useless\n\n:param 3 + 3 a: a param\n"

	// forced ReST parsing must surface the grammar violation
	_, err := Parse(source, StyleRest)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	// autodetection still finds a style that accepts the text
	doc, err := Parse(source, StyleAuto)
	require.NoError(t, err)
	assert.Equal(t, StyleGoogle, doc.Style)
}

func TestParseUnknownStyle(t *testing.T) {
	_, err := Parse("Short description", Style(42))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestComposeEmptyDocstring(t *testing.T) {
	doc := &Docstring{}
	_, err := Compose(doc, StyleAuto, RenderingCompact, "")
	var styleErr *StyleError
	require.ErrorAs(t, err, &styleErr)
	assert.Contains(t, err.Error(), "none")
	assert.Contains(t, err.Error(), "AUTO")
}

func TestComposeResolvesDetectedStyle(t *testing.T) {
	doc, err := Parse("Short description\n\n:param spam: spam desc\n", StyleAuto)
	require.NoError(t, err)
	require.Equal(t, StyleRest, doc.Style)

	out, err := Compose(doc, StyleAuto, RenderingCompact, "")
	require.NoError(t, err)
	assert.Equal(t, "Short description\n\n:param spam: spam desc", out)
}

func TestConvertBetweenStyles(t *testing.T) {
	doc, err := Parse(`Short description

Args:
    spam (str): spam desc

Returns:
    int: ret desc
`, StyleGoogle)
	require.NoError(t, err)

	out, err := Compose(doc, StyleRest, RenderingCompact, "")
	require.NoError(t, err)
	assert.Equal(t,
		"Short description\n"+
			"\n"+
			":type spam: str\n"+
			":param spam: spam desc\n"+
			":rtype: int\n"+
			":returns: ret desc",
		out)

	out, err = Compose(doc, StyleEpydoc, RenderingCompact, "")
	require.NoError(t, err)
	assert.Equal(t,
		"Short description\n"+
			"\n"+
			"@type spam: str\n"+
			"@param spam: spam desc\n"+
			"@rtype: int\n"+
			"@return: ret desc",
		out)
}
