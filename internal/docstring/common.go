// Package docstring parses and composes Python docstrings across the four
// common textual conventions (ReST, Google, Numpydoc, Epydoc). Every style
// parser produces the same unified Docstring model, and every composer turns
// that model back into formatted text, so docstrings can be converted
// between styles or rebuilt after the surrounding code changed.
package docstring

import "fmt"

// Style identifies a docstring grammar.
type Style int

const (
	// StyleUnset is the zero value: a hand-built Docstring that no parser
	// produced. Composing requires resolving it to a concrete style first.
	StyleUnset Style = iota
	StyleRest
	StyleGoogle
	StyleNumpydoc
	StyleEpydoc
	// StyleAuto asks the dispatcher to try every parser in priority order.
	StyleAuto
)

func (s Style) String() string {
	switch s {
	case StyleRest:
		return "REST"
	case StyleGoogle:
		return "GOOGLE"
	case StyleNumpydoc:
		return "NUMPYDOC"
	case StyleEpydoc:
		return "EPYDOC"
	case StyleAuto:
		return "AUTO"
	default:
		return "none"
	}
}

// RenderingStyle controls how composers lay out multi-field entries.
type RenderingStyle int

const (
	// RenderingCompact keeps "name (type): description" on one line.
	RenderingCompact RenderingStyle = iota
	// RenderingClean keeps the type inline but moves the description onto
	// its own indented line.
	RenderingClean
	// RenderingExpanded moves both the type and the description onto their
	// own indented lines.
	RenderingExpanded
)

// DefaultIndent is the indent composers use unless told otherwise.
const DefaultIndent = "    "

// Keyword tables shared by the ReST and Epydoc tag grammars.
var (
	paramKeywords = map[string]bool{
		"param":     true,
		"parameter": true,
		"arg":       true,
		"argument":  true,
		"attribute": true,
		"key":       true,
		"keyword":   true,
	}
	raisesKeywords      = map[string]bool{"raises": true, "raise": true, "except": true, "exception": true}
	deprecationKeywords = map[string]bool{"deprecation": true, "deprecated": true}
	returnsKeywords     = map[string]bool{"return": true, "returns": true}
	yieldsKeywords      = map[string]bool{"yield": true, "yields": true}
	examplesKeywords    = map[string]bool{"example": true, "examples": true}
)

// ParseError reports docstring text that violates a style's grammar. The
// offending chunk is kept so the error is displayable to the user.
type ParseError struct {
	Msg  string
	Near string
}

func (e *ParseError) Error() string {
	if e.Near != "" {
		return fmt.Sprintf("%s near %q", e.Msg, e.Near)
	}
	return e.Msg
}

func parseErrorf(near, format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Near: near}
}

// StyleError reports a compose call whose target style could not be
// resolved. This is a caller configuration defect, not malformed input,
// hence a type distinct from ParseError.
type StyleError struct {
	Detected  Style
	Requested Style
}

func (e *StyleError) Error() string {
	return fmt.Sprintf(
		"detected docstring style of %s and requested style of %s: need a concrete style to compose",
		e.Detected, e.Requested)
}

// Meta is one documented fact extracted from a docstring: a parameter, a
// return or yield shape, a raised exception, or a free-form tagged entry.
// Entries keep their source encounter order inside Docstring.Meta.
type Meta interface {
	// MetaArgs returns the entry's tag tokens (a tag word plus qualifiers).
	MetaArgs() []string
	// MetaDescription returns the free-text description, or nil when the
	// source carried none at all (as opposed to an empty one).
	MetaDescription() *string
}

// MetaField is a generic meta entry and the base embedded by every variant.
type MetaField struct {
	Args        []string
	Description *string
}

func (m *MetaField) MetaArgs() []string       { return m.Args }
func (m *MetaField) MetaDescription() *string { return m.Description }

// Param documents a single argument or attribute.
type Param struct {
	MetaField
	ArgName    string
	TypeName   *string
	IsOptional bool
	// Default is the default literal as text, when the description names one.
	Default *string
}

// Returns documents the return shape. IsGenerator is false here; the same
// shape with the discriminant set lives in Yields.
type Returns struct {
	MetaField
	TypeName    *string
	IsGenerator bool
	ReturnName  *string
}

// Yields documents the yield shape of a generator.
type Yields struct {
	MetaField
	TypeName    *string
	IsGenerator bool
	YieldName   *string
}

// Raises documents one exception the function may raise.
type Raises struct {
	MetaField
	TypeName *string
}

// Deprecated documents a deprecation notice.
type Deprecated struct {
	MetaField
	Version *string
}

// Example documents an example block, optionally with a code snippet.
type Example struct {
	MetaField
	Snippet *string
}

// Docstring is the unified parsed representation shared by all styles.
type Docstring struct {
	ShortDescription *string
	LongDescription  *string

	// The blank-line flags record whether a blank line separated the
	// sections in the source, which exact round-trips depend on.
	BlankAfterShortDescription bool
	BlankAfterLongDescription  bool

	// Style is the grammar that produced this docstring, or StyleUnset for
	// a hand-built one.
	Style Style

	// Meta holds every documented fact in source encounter order.
	Meta []Meta
}

// Params returns every documented argument or attribute, in order.
func (d *Docstring) Params() []*Param {
	var out []*Param
	for _, m := range d.Meta {
		if p, ok := m.(*Param); ok {
			out = append(out, p)
		}
	}
	return out
}

// Raises returns every documented exception, in order.
func (d *Docstring) Raises() []*Raises {
	var out []*Raises
	for _, m := range d.Meta {
		if r, ok := m.(*Raises); ok {
			out = append(out, r)
		}
	}
	return out
}

// Returns returns the first documented return shape, or nil.
func (d *Docstring) Returns() *Returns {
	for _, m := range d.Meta {
		if r, ok := m.(*Returns); ok {
			return r
		}
	}
	return nil
}

// ManyReturns returns every documented return shape, in order.
func (d *Docstring) ManyReturns() []*Returns {
	var out []*Returns
	for _, m := range d.Meta {
		if r, ok := m.(*Returns); ok {
			out = append(out, r)
		}
	}
	return out
}

// Yields returns the first documented generator yield, or nil.
func (d *Docstring) Yields() *Yields {
	for _, m := range d.Meta {
		if y, ok := m.(*Yields); ok && y.IsGenerator {
			return y
		}
	}
	return nil
}

// ManyYields returns every documented yield shape, in order.
func (d *Docstring) ManyYields() []*Yields {
	var out []*Yields
	for _, m := range d.Meta {
		if y, ok := m.(*Yields); ok {
			out = append(out, y)
		}
	}
	return out
}

// Deprecation returns the deprecation notice, or nil.
func (d *Docstring) Deprecation() *Deprecated {
	for _, m := range d.Meta {
		if dep, ok := m.(*Deprecated); ok {
			return dep
		}
	}
	return nil
}

// Examples returns every documented example, in order.
func (d *Docstring) Examples() []*Example {
	var out []*Example
	for _, m := range d.Meta {
		if e, ok := m.(*Example); ok {
			out = append(out, e)
		}
	}
	return out
}
