package mend

import (
	"fmt"
	"strings"

	"gomend/internal/docstring"
	"gomend/internal/extractor"
)

// Placeholder text written into generated docstring slots, to be filled in by
// the author afterwards.
const (
	PlaceholderSummary     = "_summary_."
	PlaceholderDescription = "_description_"
	PlaceholderType        = "_type_"
)

// IssueKind classifies a disagreement between a docstring and the code it
// documents.
type IssueKind string

const (
	IssueMissingDocstring IssueKind = "missing-docstring"
	IssueUnparsable       IssueKind = "unparsable-docstring"
	IssueMissingParam     IssueKind = "missing-param"
	IssueUnknownParam     IssueKind = "unknown-param"
	IssueMissingReturn    IssueKind = "missing-return"
	IssueMissingYield     IssueKind = "missing-yield"
	IssueMissingRaise     IssueKind = "missing-raise"
)

// Issue is one finding about a single unit.
type Issue struct {
	Kind   IssueKind
	UnitID string
	Name   string
	Line   int
	Detail string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", i.Name, i.Line, i.Kind, i.Detail)
}

// Result holds the outcome of mending a single unit.
type Result struct {
	Unit    *extractor.Unit
	Before  string
	After   string
	Changed bool
	Issues  []Issue
}

// Options configures a Mender.
type Options struct {
	// InputStyle forces a parsing style. Zero value means autodetection.
	InputStyle docstring.Style
	// OutputStyle is the style composed docstrings are written in. AUTO or
	// the zero value keep each docstring's detected style, falling back to
	// numpydoc for docstrings created from scratch.
	OutputStyle docstring.Style
	Rendering   docstring.RenderingStyle
	Indent      string
}

// Mender rewrites docstrings so they agree with extracted signature facts.
type Mender struct {
	opts Options
}

func New(opts Options) *Mender {
	if opts.InputStyle == docstring.StyleUnset {
		opts.InputStyle = docstring.StyleAuto
	}
	if opts.Indent == "" {
		opts.Indent = docstring.DefaultIndent
	}
	return &Mender{opts: opts}
}

// MendUnit parses the unit's docstring, merges in what the code actually
// declares, and composes the repaired docstring. Parse failures are reported
// as issues rather than errors so a whole-project run keeps going.
func (m *Mender) MendUnit(unit *extractor.Unit) (*Result, error) {
	res := &Result{Unit: unit, Before: unit.Docstring}

	var doc *docstring.Docstring
	if !unit.HasDocstring {
		doc = &docstring.Docstring{
			ShortDescription:           docstring.Str(PlaceholderSummary),
			BlankAfterShortDescription: true,
		}
		res.addIssue(unit, IssueMissingDocstring, fmt.Sprintf("%s %q has no docstring", unit.UnitType, unit.Name))
	} else {
		parsed, err := docstring.Parse(unit.Docstring, m.opts.InputStyle)
		if err != nil {
			res.addIssue(unit, IssueUnparsable, err.Error())
			res.After = res.Before
			return res, nil
		}
		doc = parsed
	}

	if unit.UnitType == "function" || unit.UnitType == "method" {
		m.mergeParams(res, unit, doc)
		m.mergeReturns(res, unit, doc)
		m.mergeRaises(res, unit, doc)
	}

	out, err := docstring.Compose(doc, m.resolveOutputStyle(doc), m.opts.Rendering, m.opts.Indent)
	if err != nil {
		return nil, fmt.Errorf("composing docstring for %s: %w", unit.ID, err)
	}

	res.After = out
	res.Changed = res.After != res.Before
	return res, nil
}

func (m *Mender) resolveOutputStyle(doc *docstring.Docstring) docstring.Style {
	style := m.opts.OutputStyle
	if style == docstring.StyleUnset || style == docstring.StyleAuto {
		style = doc.Style
	}
	if style == docstring.StyleUnset {
		style = docstring.StyleNumpydoc
	}
	return style
}

// mergeParams reconciles documented parameters with the signature: missing
// ones are appended after the documented params, stray ones are flagged but
// left in place.
func (m *Mender) mergeParams(res *Result, unit *extractor.Unit, doc *docstring.Docstring) {
	documented := map[string]bool{}
	lastParam := -1
	for i, meta := range doc.Meta {
		if p, ok := meta.(*docstring.Param); ok {
			documented[strings.TrimLeft(p.ArgName, "*")] = true
			lastParam = i
		}
	}

	actual := map[string]bool{}
	var added []docstring.Meta
	for _, p := range unit.Params {
		bare := strings.TrimLeft(p.Name, "*")
		actual[bare] = true
		if documented[bare] {
			continue
		}
		param := &docstring.Param{
			MetaField: docstring.MetaField{
				Args:        []string{"param", p.Name},
				Description: docstring.Str(PlaceholderDescription),
			},
			ArgName: p.Name,
		}
		if p.Annotation != "" {
			param.TypeName = docstring.Str(p.Annotation)
		}
		if p.Default != "" {
			param.Default = docstring.Str(p.Default)
			param.IsOptional = true
		}
		added = append(added, param)
		res.addIssue(unit, IssueMissingParam, fmt.Sprintf("parameter %q is not documented", p.Name))
	}

	for _, meta := range doc.Meta {
		if p, ok := meta.(*docstring.Param); ok && !actual[strings.TrimLeft(p.ArgName, "*")] {
			res.addIssue(res.Unit, IssueUnknownParam, fmt.Sprintf("documented parameter %q is not in the signature", p.ArgName))
		}
	}

	if len(added) > 0 {
		doc.Meta = insertMeta(doc.Meta, lastParam+1, added...)
	}
}

func (m *Mender) mergeReturns(res *Result, unit *extractor.Unit, doc *docstring.Docstring) {
	if unit.HasReturn && doc.Returns() == nil {
		doc.Meta = append(doc.Meta, &docstring.Returns{
			MetaField: docstring.MetaField{
				Args:        []string{"returns"},
				Description: docstring.Str(PlaceholderDescription),
			},
			TypeName: docstring.Str(PlaceholderType),
		})
		res.addIssue(unit, IssueMissingReturn, "return value is not documented")
	}
	if unit.HasYield && doc.Yields() == nil {
		doc.Meta = append(doc.Meta, &docstring.Yields{
			MetaField: docstring.MetaField{
				Args:        []string{"yields"},
				Description: docstring.Str(PlaceholderDescription),
			},
			TypeName:    docstring.Str(PlaceholderType),
			IsGenerator: true,
		})
		res.addIssue(unit, IssueMissingYield, "yielded value is not documented")
	}
}

func (m *Mender) mergeRaises(res *Result, unit *extractor.Unit, doc *docstring.Docstring) {
	documented := map[string]bool{}
	for _, r := range doc.Raises() {
		if r.TypeName != nil {
			documented[*r.TypeName] = true
		}
	}
	for _, raised := range unit.RaisedTypes {
		if documented[raised] {
			continue
		}
		doc.Meta = append(doc.Meta, &docstring.Raises{
			MetaField: docstring.MetaField{
				Args:        []string{"raises", raised},
				Description: docstring.Str(PlaceholderDescription),
			},
			TypeName: docstring.Str(raised),
		})
		res.addIssue(unit, IssueMissingRaise, fmt.Sprintf("raised exception %q is not documented", raised))
	}
}

func (r *Result) addIssue(unit *extractor.Unit, kind IssueKind, detail string) {
	line := unit.DocstringLine
	if line == 0 {
		line = unit.StartLine
	}
	r.Issues = append(r.Issues, Issue{
		Kind:   kind,
		UnitID: unit.ID,
		Name:   unit.Name,
		Line:   line,
		Detail: detail,
	})
}

func insertMeta(meta []docstring.Meta, at int, extra ...docstring.Meta) []docstring.Meta {
	out := make([]docstring.Meta, 0, len(meta)+len(extra))
	out = append(out, meta[:at]...)
	out = append(out, extra...)
	out = append(out, meta[at:]...)
	return out
}
