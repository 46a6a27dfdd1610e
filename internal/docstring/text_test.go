package docstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleandoc(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		expected string
	}{
		{"empty", "", ""},
		{"blank lines only", "\n\n", ""},
		{"single line", "  Short  ", "Short  "},
		{
			"common margin removed",
			"\n    Short description\n\n    Long description\n        Indented\n    ",
			"Short description\n\nLong description\n    Indented",
		},
		{
			"first line keeps no indent",
			"   First\n      Second\n      Third",
			"First\nSecond\nThird",
		},
		{
			"tabs expand",
			"First\n\tSecond",
			"First\nSecond",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cleandoc(tc.in))
		})
	}
}

func TestTypeLike(t *testing.T) {
	for _, s := range []string{
		"int",
		"str | int|None  | bool",
		"tuple[int, int] | None",
		"Optional[Mapping[str, List[int]]]",
		"dict[str, list[tuple[float, float]]]",
	} {
		assert.True(t, typeLike(s), "%q should read as a type", s)
	}
	for _, s := range []string{
		"",
		"   ",
		"description with",
		"unbalanced[",
		"a | ",
	} {
		assert.False(t, typeLike(s), "%q should not read as a type", s)
	}
}

func TestColonAtDepthZero(t *testing.T) {
	assert.Equal(t, 3, colonAtDepthZero("int: description"))
	assert.Equal(t, -1, colonAtDepthZero("no colon here"))
	assert.Equal(t, 24, colonAtDepthZero("Mapping[str, List[int]]x: rest"))
	assert.Equal(t, -1, colonAtDepthZero("Mapping[str: int]"))
}

func TestExtractDefault(t *testing.T) {
	assert.Nil(t, extractDefault("no default here"))
	assert.Equal(t, Str("'hello'"), extractDefault("description 4, defaults to 'hello'"))
	assert.Equal(t, Str("1.0"), extractDefault("The third arg. Defaults to 1.0."))
	assert.Equal(t, Str("None"), extractDefault("The last arg. Defaults to None."))
	assert.Equal(t, Str("'bye'"), extractDefault("long description 5,\ndefaults to 'bye'"))
}

func TestSplitOptionalType(t *testing.T) {
	base, optional := splitOptionalType("str?")
	assert.Equal(t, "str", base)
	assert.True(t, optional)

	base, optional = splitOptionalType("int")
	assert.Equal(t, "int", base)
	assert.False(t, optional)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Examples", titleCase("examples"))
	assert.Equal(t, "See Also", titleCase("see also"))
	assert.Equal(t, "Meta1", titleCase("meta1"))
	assert.Equal(t, "Other Params", titleCase("oTHer pArams"))
}
