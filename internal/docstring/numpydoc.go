package docstring

import (
	"regexp"
	"strings"
)

// Numpydoc sections are a title line underlined with dashes. Entries inside
// key-value sections sit at column zero with their description indented
// below, "name : type" style.

type numpySectionKind int

const (
	// numpyGeneric sections (Notes, Warnings, See Also, References) carry
	// free text that is kept opaque so it survives round-trips.
	numpyGeneric numpySectionKind = iota
	numpyParams
	numpyRaises
	numpyReturns
	numpyYields
	numpyExamples
	numpyDeprecated
)

type numpySection struct {
	title string
	key   string
	kind  numpySectionKind
}

var numpySections = []numpySection{
	{"Parameters", "param", numpyParams},
	{"Params", "param", numpyParams},
	{"Arguments", "param", numpyParams},
	{"Args", "param", numpyParams},
	{"Other Parameters", "other_param", numpyParams},
	{"Other Params", "other_param", numpyParams},
	{"Receives", "receives", numpyParams},
	{"Receive", "receives", numpyParams},
	{"Attributes", "attribute", numpyParams},
	{"Attribute", "attribute", numpyParams},
	{"Raises", "raises", numpyRaises},
	{"Raise", "raises", numpyRaises},
	{"Warns", "warns", numpyRaises},
	{"Warn", "warns", numpyRaises},
	{"Returns", "returns", numpyReturns},
	{"Return", "returns", numpyReturns},
	{"Yields", "yields", numpyYields},
	{"Yield", "yields", numpyYields},
	{"Examples", "examples", numpyExamples},
	{"Example", "examples", numpyExamples},
	{"Notes", "notes", numpyGeneric},
	{"Note", "notes", numpyGeneric},
	{"Warnings", "warnings", numpyGeneric},
	{"Warning", "warnings", numpyGeneric},
	{"See Also", "see_also", numpyGeneric},
	{"Related", "see_also", numpyGeneric},
	{"References", "references", numpyGeneric},
	{"Deprecated", "deprecation", numpyDeprecated},
}

var (
	numpyDefaultRegex     = regexp.MustCompile(`default\W+(\S+)`)
	numpyDeprecatedRegex  = regexp.MustCompile(`^\.\.\s*deprecated\s*::\s*(\S*)`)
	numpyUnderlineAllDash = regexp.MustCompile(`^-+\s*$`)
)

func matchNumpySection(line string) (numpySection, bool) {
	if line == "" || line[0] == ' ' {
		return numpySection{}, false
	}
	title := strings.TrimRight(line, " ")
	for _, s := range numpySections {
		if title == s.title {
			return s, true
		}
	}
	return numpySection{}, false
}

func isNumpyUnderline(line string) bool {
	return line != "" && line[0] == '-' && numpyUnderlineAllDash.MatchString(line)
}

func parseNumpydoc(text string) (*Docstring, error) {
	doc := &Docstring{Style: StyleNumpydoc}
	text = cleandoc(text)
	if text == "" {
		return doc, nil
	}

	lines := strings.Split(text, "\n")
	isHeader := func(i int) (numpySection, bool) {
		sect, ok := matchNumpySection(lines[i])
		if !ok || i+1 >= len(lines) || !isNumpyUnderline(lines[i+1]) {
			return numpySection{}, false
		}
		return sect, true
	}

	start := len(lines)
	for i := range lines {
		if _, ok := isHeader(i); ok {
			start = i
			break
		}
	}
	descChunk := text
	if start < len(lines) {
		descChunk = ""
		if start > 0 {
			descChunk = strings.Join(lines[:start], "\n") + "\n"
		}
	}
	splitDescriptionChunk(doc, descChunk)

	for i := start; i < len(lines); {
		sect, ok := isHeader(i)
		if !ok {
			i++
			continue
		}
		i += 2
		from := i
		for i < len(lines) {
			if _, next := isHeader(i); next {
				break
			}
			i++
		}
		content := strings.Trim(strings.Join(lines[from:i], "\n"), "\n")
		if err := buildNumpySection(doc, sect, content); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func buildNumpySection(doc *Docstring, sect numpySection, content string) error {
	switch sect.kind {
	case numpyParams, numpyRaises, numpyReturns, numpyYields:
		items := splitNumpyItems(content)
		if len(items) == 0 {
			return parseErrorf(sect.title, "section %q is empty", sect.title)
		}
		for _, item := range items {
			buildNumpyItem(doc, sect, item.head, item.value)
		}
		return nil
	case numpyExamples:
		snippet, desc := splitNumpyExample(content)
		doc.Meta = append(doc.Meta, &Example{
			MetaField: MetaField{Args: []string{sect.key}, Description: Str(desc)},
			Snippet:   snippet,
		})
		return nil
	case numpyDeprecated:
		version, desc := splitNumpyDeprecation(content)
		doc.Meta = append(doc.Meta, &Deprecated{
			MetaField: MetaField{Args: []string{sect.key}, Description: Str(desc)},
			Version:   version,
		})
		return nil
	default:
		doc.Meta = append(doc.Meta, &MetaField{
			Args:        []string{sect.key},
			Description: Str(cleandoc(content)),
		})
		return nil
	}
}

type numpyItem struct {
	head  string
	value string
}

// splitNumpyItems breaks a key-value section into entries. Column-zero
// lines start entries, the indented block below each is its value.
func splitNumpyItems(content string) []numpyItem {
	var items []numpyItem
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(items) > 0 {
				items[len(items)-1].value += "\n"
			}
			continue
		}
		if !strings.HasPrefix(line, " ") {
			items = append(items, numpyItem{head: strings.TrimRight(line, " ")})
			continue
		}
		if len(items) > 0 {
			items[len(items)-1].value += line + "\n"
		}
	}
	return items
}

func buildNumpyItem(doc *Docstring, sect numpySection, head, value string) {
	var desc *string
	if body := cleandoc(value); body != "" {
		desc = Str(body)
	}

	switch sect.kind {
	case numpyParams:
		name, typeInfo, hasType := strings.Cut(head, ":")
		name = strings.TrimSpace(name)
		field := MetaField{Args: []string{sect.key, name}, Description: desc}
		param := &Param{MetaField: field, ArgName: name}
		if hasType {
			info := strings.TrimSpace(typeInfo)
			switch {
			case strings.HasSuffix(info, ", optional"):
				param.IsOptional = true
				info = strings.TrimSuffix(info, ", optional")
			case strings.HasSuffix(info, "(optional)"):
				param.IsOptional = true
				info = strings.TrimSpace(strings.TrimSuffix(info, "(optional)"))
			}
			if m := numpyDefaultRegex.FindStringSubmatch(info); m != nil {
				param.Default = Str(m[1])
			}
			if info != "" {
				param.TypeName = Str(info)
			}
		}
		doc.Meta = append(doc.Meta, param)
	case numpyRaises:
		typeName := strings.TrimSpace(head)
		raises := &Raises{
			MetaField: MetaField{Args: []string{sect.key, typeName}, Description: desc},
		}
		if typeName != "" {
			raises.TypeName = Str(typeName)
		}
		doc.Meta = append(doc.Meta, raises)
	case numpyReturns, numpyYields:
		var returnName, typeName *string
		if name, typeInfo, hasName := strings.Cut(head, " : "); hasName {
			returnName = Str(strings.TrimSpace(name))
			typeName = Str(strings.TrimSpace(typeInfo))
		} else if t := strings.TrimSpace(head); t != "" {
			typeName = Str(t)
		}
		field := MetaField{Args: []string{sect.key}, Description: desc}
		if sect.kind == numpyYields {
			doc.Meta = append(doc.Meta, &Yields{
				MetaField: field, TypeName: typeName, YieldName: returnName, IsGenerator: true,
			})
		} else {
			doc.Meta = append(doc.Meta, &Returns{
				MetaField: field, TypeName: typeName, ReturnName: returnName,
			})
		}
	}
}

// splitNumpyExample peels leading ">>>"/"..." snippet lines off an Examples
// section body.
func splitNumpyExample(content string) (snippet *string, desc string) {
	lines := strings.Split(cleandoc(content), "\n")
	i := 0
	for i < len(lines) && (strings.HasPrefix(lines[i], ">>>") || strings.HasPrefix(lines[i], "...")) {
		i++
	}
	if i > 0 {
		snippet = Str(strings.Join(lines[:i], "\n"))
	}
	desc = strings.Trim(strings.Join(lines[i:], "\n"), "\n")
	return snippet, desc
}

func splitNumpyDeprecation(content string) (version *string, desc string) {
	first, rest, _ := strings.Cut(cleandoc(content), "\n")
	if m := numpyDeprecatedRegex.FindStringSubmatch(first); m != nil {
		if m[1] != "" {
			version = Str(m[1])
		}
		return version, strings.Trim(cleandoc(rest), "\n")
	}
	return nil, cleandoc(content)
}

// numpyTitleFor maps a meta key back to its canonical section title.
func numpyTitleFor(key string) string {
	for _, s := range numpySections {
		if s.key == key {
			return s.title
		}
	}
	return titleCase(key)
}

// composeNumpydoc renders the fixed Numpydoc layout. The rendering style
// knob has no effect here: entry heads and indented descriptions are the
// only layout the format allows.
func composeNumpydoc(d *Docstring, _ RenderingStyle, indent string) string {
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

	header := func(title string) {
		parts = append(parts, title, strings.Repeat("-", len(title)))
	}
	appendDesc := func(desc *string) {
		if desc == nil || *desc == "" {
			return
		}
		for _, line := range strings.Split(*desc, "\n") {
			if line == "" {
				parts = append(parts, "")
			} else {
				parts = append(parts, indent+line)
			}
		}
	}

	groupKey := func(m Meta) string {
		if args := m.MetaArgs(); len(args) > 0 {
			return args[0]
		}
		return ""
	}

	paramGroups := map[string][]*Param{}
	for _, p := range d.Params() {
		key := groupKey(p)
		paramGroups[key] = append(paramGroups[key], p)
	}
	processParams := func(key string) {
		params := paramGroups[key]
		if len(params) == 0 {
			return
		}
		header(numpyTitleFor(key))
		for _, p := range params {
			head := p.ArgName
			if p.TypeName != nil {
				head += " : " + *p.TypeName
				if p.IsOptional {
					head += ", optional"
				}
			}
			parts = append(parts, head)
			appendDesc(p.Description)
		}
		parts = append(parts, "")
	}
	processParams("param")
	processParams("attribute")
	processParams("other_param")
	processParams("receives")

	if returns := d.ManyReturns(); len(returns) > 0 {
		header("Returns")
		for _, r := range returns {
			head := StrValue(r.TypeName)
			if r.ReturnName != nil {
				head = *r.ReturnName + " : " + head
			}
			parts = append(parts, head)
			appendDesc(r.Description)
		}
		parts = append(parts, "")
	}
	if yields := d.ManyYields(); len(yields) > 0 {
		header("Yields")
		for _, y := range yields {
			head := StrValue(y.TypeName)
			if y.YieldName != nil {
				head = *y.YieldName + " : " + head
			}
			parts = append(parts, head)
			appendDesc(y.Description)
		}
		parts = append(parts, "")
	}

	raisesGroups := map[string][]*Raises{}
	for _, r := range d.Raises() {
		key := groupKey(r)
		raisesGroups[key] = append(raisesGroups[key], r)
	}
	processRaises := func(key string) {
		raises := raisesGroups[key]
		if len(raises) == 0 {
			return
		}
		header(numpyTitleFor(key))
		for _, r := range raises {
			parts = append(parts, StrValue(r.TypeName))
			appendDesc(r.Description)
		}
		parts = append(parts, "")
	}
	processRaises("raises")
	processRaises("warns")

	for _, m := range d.Meta {
		switch meta := m.(type) {
		case *Param, *Returns, *Yields, *Raises:
			continue
		case *Example:
			header(numpyTitleFor(groupKey(m)))
			if meta.Snippet != nil {
				parts = append(parts, strings.Split(*meta.Snippet, "\n")...)
			}
			if desc := StrValue(meta.Description); desc != "" {
				parts = append(parts, strings.Split(desc, "\n")...)
			}
			parts = append(parts, "")
		case *Deprecated:
			header("Deprecated")
			directive := ".. deprecated::"
			if meta.Version != nil {
				directive += " " + *meta.Version
			}
			parts = append(parts, directive)
			appendDesc(meta.Description)
			parts = append(parts, "")
		default:
			header(numpyTitleFor(groupKey(m)))
			if desc := StrValue(m.MetaDescription()); desc != "" {
				parts = append(parts, strings.Split(desc, "\n")...)
			}
			parts = append(parts, "")
		}
	}

	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "\n")
}

type numpydocCodec struct{}

func (numpydocCodec) parse(text string) (*Docstring, error) { return parseNumpydoc(text) }

func (numpydocCodec) compose(d *Docstring, rendering RenderingStyle, indent string) string {
	return composeNumpydoc(d, rendering, indent)
}
