package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomend/internal/docstring"
)

func TestConvertDocstring(t *testing.T) {
	out, err := convertDocstring(
		"Short description\n\nArgs:\n    spam (str): spam desc\n",
		docstring.StyleGoogle, docstring.StyleRest, docstring.RenderingCompact, "")
	require.NoError(t, err)
	assert.Equal(t, "Short description\n\n:type spam: str\n:param spam: spam desc", out)
}

func TestConvertDocstringInputStyle(t *testing.T) {
	source := "Args:\n    a: desc"

	// autodetection reads the section as Google metadata
	out, err := convertDocstring(source, docstring.StyleAuto, docstring.StyleRest, docstring.RenderingCompact, "")
	require.NoError(t, err)
	assert.Equal(t, ":param a: desc", out)

	// a forced input style keeps the same text as plain description
	out, err = convertDocstring(source, docstring.StyleRest, docstring.StyleRest, docstring.RenderingCompact, "")
	require.NoError(t, err)
	assert.Equal(t, "Args:\na: desc", out)
}

func TestConvertDocstringBadInput(t *testing.T) {
	_, err := convertDocstring(":param 3 + 3 a: a param", docstring.StyleRest, docstring.StyleRest, docstring.RenderingCompact, "")
	require.Error(t, err)

	var parseErr *docstring.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
