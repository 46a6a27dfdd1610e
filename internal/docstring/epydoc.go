package docstring

import "strings"

// Epydoc-style docstrings document facts in "@tag arg1 arg2: description"
// field lines. Multi-line descriptions continue on indented lines below the
// tag; nested indentation inside a description is preserved verbatim.

// streamToken is one scanned field chunk: the tag word, its extra
// arguments, the accumulated multi-line description, and the raw chunk for
// error reporting.
type streamToken struct {
	tag   string
	args  []string
	desc  string
	chunk string
}

// scanFieldTokens splits a meta chunk into stream tokens. A token starts at
// every line beginning with marker and runs until the next such line. The
// scanner walks three states: before the tag's colon, on the tag line's
// description, and in indented continuation lines.
func scanFieldTokens(metaChunk, marker string) ([]streamToken, error) {
	if metaChunk == "" {
		return nil, nil
	}

	var chunks []string
	var current []string
	for _, line := range strings.Split(metaChunk, "\n") {
		if strings.HasPrefix(line, marker) && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	chunks = append(chunks, strings.Join(current, "\n"))

	var tokens []streamToken
	for _, chunk := range chunks {
		body := strings.TrimPrefix(chunk, marker)
		argsPart, descPart, found := strings.Cut(body, ":")
		if !found {
			return nil, parseErrorf(chunk, "error parsing meta information")
		}
		args := strings.Fields(argsPart)
		if len(args) == 0 {
			return nil, parseErrorf(chunk, "error parsing meta information")
		}
		desc := strings.TrimSpace(descPart)
		if strings.Contains(desc, "\n") {
			desc = joinContinuation(desc)
		}
		tokens = append(tokens, streamToken{
			tag:   args[0],
			args:  args[1:],
			desc:  desc,
			chunk: chunk,
		})
	}
	return tokens, nil
}

func knownFieldTag(tag string) bool {
	return paramKeywords[tag] || raisesKeywords[tag] || returnsKeywords[tag] ||
		yieldsKeywords[tag] || deprecationKeywords[tag] || examplesKeywords[tag]
}

// buildFieldMeta materializes a recognized tag token into a model entry.
// Tokens with an unrecognized tag must be diverted to generic meta before
// this point; reaching the default branch is a grammar violation.
func buildFieldMeta(tok streamToken, paramTypes map[string]string) (Meta, error) {
	field := MetaField{
		Args:        append([]string{tok.tag}, tok.args...),
		Description: Str(tok.desc),
	}
	switch {
	case paramKeywords[tok.tag]:
		var argName, typeName string
		switch len(tok.args) {
		case 1:
			argName = tok.args[0]
		case 2:
			typeName, argName = tok.args[0], tok.args[1]
		default:
			return nil, parseErrorf(tok.chunk, "expected one or two arguments for a %s keyword", tok.tag)
		}
		if typeName == "" {
			typeName = paramTypes[argName]
		}
		param := &Param{
			MetaField: field,
			ArgName:   argName,
			Default:   extractDefault(tok.desc),
		}
		if typeName != "" {
			base, optional := splitOptionalType(typeName)
			param.TypeName = Str(base)
			param.IsOptional = optional
		}
		return param, nil
	case raisesKeywords[tok.tag]:
		if len(tok.args) > 1 {
			return nil, parseErrorf(tok.chunk, "expected at most one argument for a %s keyword", tok.tag)
		}
		raises := &Raises{MetaField: field}
		if len(tok.args) == 1 {
			raises.TypeName = Str(tok.args[0])
		}
		return raises, nil
	case returnsKeywords[tok.tag]:
		ret := &Returns{MetaField: field}
		if len(tok.args) == 1 {
			ret.TypeName = Str(tok.args[0])
		}
		return ret, nil
	case yieldsKeywords[tok.tag]:
		y := &Yields{MetaField: field, IsGenerator: true}
		if len(tok.args) == 1 {
			y.TypeName = Str(tok.args[0])
		}
		return y, nil
	case deprecationKeywords[tok.tag]:
		dep := &Deprecated{MetaField: field}
		if len(tok.args) == 1 {
			dep.Version = Str(tok.args[0])
		}
		return dep, nil
	case examplesKeywords[tok.tag]:
		return &Example{MetaField: field}, nil
	default:
		return nil, parseErrorf(tok.chunk, "unknown tag %q", tok.tag)
	}
}

func parseEpydoc(text string) (*Docstring, error) {
	return parseFieldGrammar(text, "@", StyleEpydoc, "return", "yield")
}

// parseFieldGrammar is the parse loop shared by the Epydoc ("@tag:") and
// ReST (":tag:") grammars, which differ only in their marker rune and in
// the tag word used for synthesized return/yield entries.
func parseFieldGrammar(text, marker string, style Style, retTag, yieldTag string) (*Docstring, error) {
	doc := &Docstring{Style: style}
	text = cleandoc(text)
	if text == "" {
		return doc, nil
	}

	descChunk, metaChunk := splitAtLine(text, func(line string) bool {
		return strings.HasPrefix(line, marker)
	})
	splitDescriptionChunk(doc, descChunk)

	tokens, err := scanFieldTokens(metaChunk, marker)
	if err != nil {
		return nil, err
	}

	// Pre-pass: detached @type/@rtype/@ytype tokens apply to entries that
	// may appear before or after them.
	paramTypes := map[string]string{}
	var rtype, ytype *string
	rest := tokens[:0]
	for _, tok := range tokens {
		switch tok.tag {
		case "type":
			if len(tok.args) != 1 {
				return nil, parseErrorf(tok.chunk, "expected exactly one argument for a type keyword")
			}
			paramTypes[tok.args[0]] = tok.desc
		case "rtype":
			rtype = Str(tok.desc)
		case "ytype":
			ytype = Str(tok.desc)
		default:
			rest = append(rest, tok)
		}
	}

	returnsSeen, yieldsSeen := false, false
	for _, tok := range rest {
		if !knownFieldTag(tok.tag) {
			doc.Meta = append(doc.Meta, &MetaField{
				Args:        append([]string{tok.tag}, tok.args...),
				Description: Str(tok.desc),
			})
			continue
		}
		meta, err := buildFieldMeta(tok, paramTypes)
		if err != nil {
			return nil, err
		}
		switch m := meta.(type) {
		case *Returns:
			returnsSeen = true
			if m.TypeName == nil && rtype != nil {
				m.TypeName = Str(*rtype)
			}
		case *Yields:
			yieldsSeen = true
			if m.TypeName == nil && ytype != nil {
				m.TypeName = Str(*ytype)
			}
		}
		doc.Meta = append(doc.Meta, meta)
	}

	// A bare rtype/ytype token still documents a return/yield shape.
	if !returnsSeen && rtype != nil {
		doc.Meta = append(doc.Meta, &Returns{
			MetaField: MetaField{Args: []string{retTag}},
			TypeName:  rtype,
		})
	}
	if !yieldsSeen && ytype != nil {
		doc.Meta = append(doc.Meta, &Yields{
			MetaField:   MetaField{Args: []string{yieldTag}},
			TypeName:    ytype,
			IsGenerator: true,
		})
	}
	return doc, nil
}

// fieldDesc renders a field description for the "@tag:"/":tag:" grammars.
// Compact keeps the first line inline after the tag; Clean moves
// descriptions (but not types) onto indented lines; Expanded moves both.
func fieldDesc(desc string, isType bool, rendering RenderingStyle, indent string) string {
	if desc == "" {
		return ""
	}
	lines := strings.Split(desc, "\n")
	if rendering == RenderingExpanded || (rendering == RenderingClean && !isType) {
		var b strings.Builder
		for _, line := range lines {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString(line)
		}
		return b.String()
	}
	out := " " + lines[0]
	for _, line := range lines[1:] {
		out += "\n" + indent + line
	}
	return out
}

func composeEpydoc(d *Docstring, rendering RenderingStyle, indent string) string {
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

	for _, m := range d.Meta {
		switch meta := m.(type) {
		case *Param:
			if meta.TypeName != nil {
				typeName := *meta.TypeName
				if meta.IsOptional {
					typeName += "?"
				}
				if rendering == RenderingExpanded {
					parts = append(parts, "@type "+meta.ArgName+":"+fieldDesc(typeName, true, rendering, indent))
				} else {
					parts = append(parts, "@type "+meta.ArgName+": "+typeName)
				}
			}
			parts = append(parts, "@param "+meta.ArgName+":"+fieldDesc(StrValue(meta.Description), false, rendering, indent))
		case *Returns:
			if meta.TypeName != nil {
				parts = append(parts, "@rtype:"+fieldDesc(*meta.TypeName, true, rendering, indent))
			}
			if StrValue(meta.Description) != "" {
				parts = append(parts, "@return:"+fieldDesc(*meta.Description, false, rendering, indent))
			}
		case *Yields:
			if meta.TypeName != nil {
				parts = append(parts, "@ytype:"+fieldDesc(*meta.TypeName, true, rendering, indent))
			}
			if StrValue(meta.Description) != "" {
				parts = append(parts, "@yield:"+fieldDesc(*meta.Description, false, rendering, indent))
			}
		case *Raises:
			head := "@raise:"
			if meta.TypeName != nil {
				head = "@raise " + *meta.TypeName + ":"
			}
			parts = append(parts, head+fieldDesc(StrValue(meta.Description), false, rendering, indent))
		default:
			head := "@" + strings.Join(m.MetaArgs(), " ") + ":"
			parts = append(parts, head+fieldDesc(StrValue(m.MetaDescription()), false, rendering, indent))
		}
	}
	return strings.Join(parts, "\n")
}

type epydocCodec struct{}

func (epydocCodec) parse(text string) (*Docstring, error) { return parseEpydoc(text) }

func (epydocCodec) compose(d *Docstring, rendering RenderingStyle, indent string) string {
	return composeEpydoc(d, rendering, indent)
}
