package docstring

import (
	"regexp"
	"strings"
)

// SectionType controls how the body of a Google-style section is read.
type SectionType int

const (
	// SectionSingular treats the whole section body as one entry.
	SectionSingular SectionType = iota
	// SectionSingularOrMultiple switches to per-entry parsing when the
	// first body line looks like a named entry ("name (type): ...").
	SectionSingularOrMultiple
	// SectionMultiple reads one entry per unindented body line.
	SectionMultiple
)

// Section describes one recognized Google-style section: the header title
// as written in source, the keyword it maps to in the model, and how its
// body is read.
type Section struct {
	Title string
	Key   string
	Type  SectionType
}

// DefaultSections returns the section table of the stock Google style.
func DefaultSections() []Section {
	return []Section{
		{"Arguments", "param", SectionMultiple},
		{"Args", "param", SectionMultiple},
		{"Parameters", "param", SectionMultiple},
		{"Params", "param", SectionMultiple},
		{"Attributes", "attribute", SectionMultiple},
		{"Raises", "raises", SectionMultiple},
		{"Exceptions", "raises", SectionMultiple},
		{"Except", "raises", SectionMultiple},
		{"Example", "examples", SectionSingular},
		{"Examples", "examples", SectionSingular},
		{"Returns", "returns", SectionSingularOrMultiple},
		{"Yields", "yields", SectionSingularOrMultiple},
	}
}

var (
	// googleNamedEntry decides SectionSingularOrMultiple: a leading
	// "name (type):" line means per-entry parsing.
	googleNamedEntry = regexp.MustCompile(`^\s*(\S+)\s+\((.+)\)\s*:`)
	// googleParamHead splits "name (type info)" entry heads.
	googleParamHead = regexp.MustCompile(`^\s*(.+?)\s*\(\s*(.+?)\s*\)\s*$`)
	// googleReturnHead splits "name (type)" heads of named return entries.
	googleReturnHead = regexp.MustCompile(`^\s*(\S+)\s+\((.+)\)\s*$`)
)

// GoogleParser parses Google-style docstrings against a configurable
// section table. The zero-argument configuration matches the stock style;
// AddSection derives extended parsers without mutating the original.
type GoogleParser struct {
	sections   []Section
	titleColon bool
}

// NewGoogleParser builds a parser over the given section table, or the
// default table when sections is nil. With titleColon, headers must carry
// a trailing colon; without it they must not.
func NewGoogleParser(sections []Section, titleColon bool) *GoogleParser {
	if sections == nil {
		sections = DefaultSections()
	}
	return &GoogleParser{sections: sections, titleColon: titleColon}
}

// AddSection returns a copy of the parser that also recognizes s.
func (p *GoogleParser) AddSection(s Section) *GoogleParser {
	sections := make([]Section, 0, len(p.sections)+1)
	sections = append(sections, p.sections...)
	sections = append(sections, s)
	return &GoogleParser{sections: sections, titleColon: p.titleColon}
}

// matchSection reports whether line is a section header. Headers sit at
// column zero and must equal a configured title exactly, modulo trailing
// spaces and the configured colon.
func (p *GoogleParser) matchSection(line string) (Section, bool) {
	if line == "" || line[0] == ' ' {
		return Section{}, false
	}
	title := strings.TrimRight(line, " ")
	for _, s := range p.sections {
		want := s.Title
		if p.titleColon {
			want += ":"
		}
		if title == want {
			return s, true
		}
	}
	return Section{}, false
}

// Parse reads a Google-style docstring. Text before the first recognized
// header becomes the description; unrecognized headers after it are
// dropped together with their indented content. A section body is the
// indented block under its header, except when indentation cleanup left
// the body flush with the header (the docstring opens with a header); a
// flush-left body runs to the next recognized header instead.
func (p *GoogleParser) Parse(text string) (*Docstring, error) {
	doc := &Docstring{Style: StyleGoogle}
	text = cleandoc(text)
	if text == "" {
		return doc, nil
	}

	descChunk, metaChunk := splitAtLine(text, func(line string) bool {
		_, ok := p.matchSection(line)
		return ok
	})
	splitDescriptionChunk(doc, descChunk)
	if metaChunk == "" {
		return doc, nil
	}

	lines := strings.Split(metaChunk, "\n")
	for i := 0; i < len(lines); {
		sect, ok := p.matchSection(lines[i])
		if !ok {
			i++
			continue
		}
		i++
		start := i

		indented := false
		for j := start; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "" {
				continue
			}
			if _, next := p.matchSection(lines[j]); next {
				break
			}
			indented = strings.HasPrefix(lines[j], " ")
			break
		}

		for i < len(lines) {
			if _, next := p.matchSection(lines[i]); next {
				break
			}
			if indented && lines[i] != "" && !strings.HasPrefix(lines[i], " ") {
				break
			}
			i++
		}
		chunk := strings.Trim(strings.Join(lines[start:i], "\n"), "\n")
		if err := p.buildSection(doc, sect, chunk); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (p *GoogleParser) buildSection(doc *Docstring, sect Section, chunk string) error {
	kind := sect.Type
	if kind == SectionSingularOrMultiple {
		first, _, _ := strings.Cut(cleandoc(chunk), "\n")
		if googleNamedEntry.MatchString(first) {
			kind = SectionMultiple
		} else {
			kind = SectionSingular
		}
	}
	if kind == SectionSingular {
		return p.buildSingular(doc, sect, chunk)
	}
	return p.buildMultiple(doc, sect, chunk)
}

func (p *GoogleParser) buildSingular(doc *Docstring, sect Section, chunk string) error {
	body := cleandoc(chunk)
	key := sect.Key
	field := MetaField{Args: []string{key}, Description: Str(body)}
	switch {
	case paramKeywords[key]:
		return parseErrorf(chunk, "%q sections cannot be singular", sect.Title)
	case raisesKeywords[key]:
		doc.Meta = append(doc.Meta, &Raises{MetaField: field})
	case returnsKeywords[key]:
		typeName, desc := splitLeadingType(body)
		field.Description = Str(desc)
		doc.Meta = append(doc.Meta, &Returns{MetaField: field, TypeName: typeName})
	case yieldsKeywords[key]:
		typeName, desc := splitLeadingType(body)
		field.Description = Str(desc)
		doc.Meta = append(doc.Meta, &Yields{MetaField: field, TypeName: typeName, IsGenerator: true})
	case examplesKeywords[key]:
		doc.Meta = append(doc.Meta, &Example{MetaField: field})
	case deprecationKeywords[key]:
		doc.Meta = append(doc.Meta, &Deprecated{MetaField: field})
	default:
		doc.Meta = append(doc.Meta, &field)
	}
	return nil
}

// splitLeadingType peels a "type:" prefix off a singular returns or yields
// body. The candidate must end at a colon outside brackets and read as a
// type expression, so "description with: a colon" stays a description.
func splitLeadingType(body string) (*string, string) {
	first, rest, hasRest := strings.Cut(body, "\n")
	ci := colonAtDepthZero(first)
	if ci < 0 || !typeLike(first[:ci]) {
		return nil, body
	}
	desc := strings.TrimPrefix(first[ci+1:], " ")
	if hasRest {
		desc += "\n" + rest
	}
	return Str(first[:ci]), desc
}

// buildMultiple splits a section body into entries. An entry starts on
// every line at the body's base indentation; deeper lines continue the
// entry above them and keep their indentation for the continuation join.
func (p *GoogleParser) buildMultiple(doc *Docstring, sect Section, chunk string) error {
	if strings.TrimSpace(chunk) == "" {
		return parseErrorf(sect.Title, "section %q is empty", sect.Title)
	}
	lines := strings.Split(chunk, "\n")

	base := 0
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		base = len(line) - len(trimmed)
		break
	}

	var entries []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			entries = append(entries, strings.Trim(strings.Join(current, "\n"), "\n"))
			current = current[:0]
		}
	}
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed != "" && len(line)-len(trimmed) <= base {
			flush()
			line = trimmed
		}
		current = append(current, line)
	}
	flush()

	for _, entry := range entries {
		if err := p.buildEntry(doc, sect, entry); err != nil {
			return err
		}
	}
	return nil
}

func (p *GoogleParser) buildEntry(doc *Docstring, sect Section, entry string) error {
	first, _, _ := strings.Cut(entry, "\n")
	ci := colonAtDepthZero(first)
	if ci < 0 {
		return parseErrorf(entry, "expected a colon in %q", first)
	}
	head := entry[:ci]
	desc := strings.TrimPrefix(entry[ci+1:], " ")
	if strings.Contains(desc, "\n") {
		desc = joinContinuation(desc)
	}
	desc = strings.Trim(desc, "\n")

	key := sect.Key
	switch {
	case paramKeywords[key]:
		name := strings.TrimSpace(head)
		var typeName *string
		optional := false
		if m := googleParamHead.FindStringSubmatch(head); m != nil {
			name = m[1]
			info := m[2]
			switch {
			case strings.HasSuffix(info, ", optional"):
				optional = true
				info = strings.TrimSuffix(info, ", optional")
			case strings.HasSuffix(info, "?"):
				optional = true
				info = strings.TrimSuffix(info, "?")
			}
			typeName = Str(info)
		}
		doc.Meta = append(doc.Meta, &Param{
			MetaField:  MetaField{Args: []string{key, name}, Description: Str(desc)},
			ArgName:    name,
			TypeName:   typeName,
			IsOptional: optional,
			Default:    extractDefault(desc),
		})
	case raisesKeywords[key]:
		typeName := strings.TrimSpace(head)
		doc.Meta = append(doc.Meta, &Raises{
			MetaField: MetaField{Args: []string{key, typeName}, Description: Str(desc)},
			TypeName:  Str(typeName),
		})
	case returnsKeywords[key], yieldsKeywords[key]:
		args := []string{key}
		var returnName, typeName *string
		if m := googleReturnHead.FindStringSubmatch(head); m != nil {
			returnName = Str(m[1])
			typeName = Str(m[2])
			args = append(args, m[1])
		} else {
			typeName = Str(strings.TrimSpace(head))
		}
		field := MetaField{Args: args, Description: Str(desc)}
		if yieldsKeywords[key] {
			doc.Meta = append(doc.Meta, &Yields{
				MetaField: field, TypeName: typeName, YieldName: returnName, IsGenerator: true,
			})
		} else {
			doc.Meta = append(doc.Meta, &Returns{
				MetaField: field, TypeName: typeName, ReturnName: returnName,
			})
		}
	default:
		name := strings.TrimSpace(head)
		doc.Meta = append(doc.Meta, &MetaField{
			Args:        []string{key, name},
			Description: Str(desc),
		})
	}
	return nil
}

func parseGoogle(text string) (*Docstring, error) {
	return NewGoogleParser(nil, true).Parse(text)
}

func composeGoogle(d *Docstring, rendering RenderingStyle, indent string) string {
	var parts []string
	if d.ShortDescription != nil {
		parts = append(parts, *d.ShortDescription)
	}
	if d.BlankAfterShortDescription {
		parts = append(parts, "")
	}
	if d.LongDescription != nil {
		parts = append(parts, *d.LongDescription)
	}
	if d.BlankAfterLongDescription {
		parts = append(parts, "")
	}

	appendEntry := func(head, desc string) {
		var body string
		switch {
		case desc != "" && head != "" && rendering == RenderingExpanded:
			lines := append([]string{head + ":"}, strings.Split(desc, "\n")...)
			body = strings.Join(lines, "\n"+indent+indent)
		case desc != "":
			lines := strings.Split(desc, "\n")
			if head != "" {
				lines[0] = head + ": " + lines[0]
			}
			body = strings.Join(lines, "\n"+indent+indent)
		case head != "":
			body = head + ":"
		}
		if body == "" {
			parts = append(parts, "")
			return
		}
		parts = append(parts, indent+body)
	}

	paramHead := func(p *Param) string {
		head := p.ArgName
		if p.TypeName != nil {
			info := *p.TypeName
			if p.IsOptional {
				if rendering == RenderingCompact {
					info += "?"
				} else {
					info += ", optional"
				}
			}
			head += " (" + info + ")"
		}
		return head
	}

	returnHead := func(name, typeName *string) string {
		head := StrValue(name)
		switch {
		case typeName != nil && head != "":
			head += " (" + *typeName + ")"
		case typeName != nil:
			head = *typeName
		}
		return head
	}

	var args, attributes []*Param
	for _, p := range d.Params() {
		if len(p.Args) > 0 && p.Args[0] == "attribute" {
			attributes = append(attributes, p)
		} else {
			args = append(args, p)
		}
	}

	processParams := func(title string, params []*Param) {
		if len(params) == 0 {
			return
		}
		parts = append(parts, title)
		for _, p := range params {
			appendEntry(paramHead(p), StrValue(p.Description))
		}
		parts = append(parts, "")
	}
	processParams("Args:", args)
	processParams("Attributes:", attributes)

	if returns := d.ManyReturns(); len(returns) > 0 {
		parts = append(parts, "Returns:")
		for _, r := range returns {
			appendEntry(returnHead(r.ReturnName, r.TypeName), StrValue(r.Description))
		}
		parts = append(parts, "")
	}
	if yields := d.ManyYields(); len(yields) > 0 {
		parts = append(parts, "Yields:")
		for _, y := range yields {
			appendEntry(returnHead(y.YieldName, y.TypeName), StrValue(y.Description))
		}
		parts = append(parts, "")
	}
	if raises := d.Raises(); len(raises) > 0 {
		parts = append(parts, "Raises:")
		for _, r := range raises {
			appendEntry(StrValue(r.TypeName), StrValue(r.Description))
		}
		parts = append(parts, "")
	}

	for _, m := range d.Meta {
		switch m.(type) {
		case *Param, *Returns, *Yields, *Raises:
			continue
		}
		title := "Meta:"
		if tags := m.MetaArgs(); len(tags) > 0 {
			title = titleCase(tags[0]) + ":"
		}
		parts = append(parts, title)
		if desc := StrValue(m.MetaDescription()); desc != "" {
			for _, line := range strings.Split(desc, "\n") {
				parts = append(parts, indent+line)
			}
		}
		parts = append(parts, "")
	}

	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "\n")
}

type googleCodec struct{}

func (googleCodec) parse(text string) (*Docstring, error) { return parseGoogle(text) }

func (googleCodec) compose(d *Docstring, rendering RenderingStyle, indent string) string {
	return composeGoogle(d, rendering, indent)
}
