package docstring

import "strings"

// ReST-style docstrings use Sphinx field lists: ":tag args: description".
// The grammar is the Epydoc one with a ":" marker, so parsing is shared
// with parseFieldGrammar; only composition differs in surface syntax.

func parseRest(text string) (*Docstring, error) {
	return parseFieldGrammar(text, ":", StyleRest, "returns", "yields")
}

func composeRest(d *Docstring, rendering RenderingStyle, indent string) string {
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
					parts = append(parts, ":type "+meta.ArgName+":"+fieldDesc(typeName, true, rendering, indent))
				} else {
					parts = append(parts, ":type "+meta.ArgName+": "+typeName)
				}
			}
			parts = append(parts, ":param "+meta.ArgName+":"+fieldDesc(StrValue(meta.Description), false, rendering, indent))
		case *Returns:
			if meta.TypeName != nil {
				parts = append(parts, ":rtype:"+fieldDesc(*meta.TypeName, true, rendering, indent))
			}
			if StrValue(meta.Description) != "" {
				parts = append(parts, ":returns:"+fieldDesc(*meta.Description, false, rendering, indent))
			}
		case *Yields:
			if meta.TypeName != nil {
				parts = append(parts, ":ytype:"+fieldDesc(*meta.TypeName, true, rendering, indent))
			}
			if StrValue(meta.Description) != "" {
				parts = append(parts, ":yields:"+fieldDesc(*meta.Description, false, rendering, indent))
			}
		case *Raises:
			head := ":raises:"
			if meta.TypeName != nil {
				head = ":raises " + *meta.TypeName + ":"
			}
			parts = append(parts, head+fieldDesc(StrValue(meta.Description), false, rendering, indent))
		default:
			head := ":" + strings.Join(m.MetaArgs(), " ") + ":"
			parts = append(parts, head+fieldDesc(StrValue(m.MetaDescription()), false, rendering, indent))
		}
	}
	return strings.Join(parts, "\n")
}

type restCodec struct{}

func (restCodec) parse(text string) (*Docstring, error) { return parseRest(text) }

func (restCodec) compose(d *Docstring, rendering RenderingStyle, indent string) string {
	return composeRest(d, rendering, indent)
}
