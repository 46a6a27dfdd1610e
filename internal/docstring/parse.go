package docstring

// styleCodec pairs a style's parser with its composer.
type styleCodec interface {
	parse(text string) (*Docstring, error)
	compose(d *Docstring, rendering RenderingStyle, indent string) string
}

var codecs = map[Style]styleCodec{
	StyleRest:     restCodec{},
	StyleGoogle:   googleCodec{},
	StyleNumpydoc: numpydocCodec{},
	StyleEpydoc:   epydocCodec{},
}

// styleOrder fixes the priority used to break autodetection ties.
var styleOrder = []Style{StyleRest, StyleGoogle, StyleNumpydoc, StyleEpydoc}

// Parse reads a docstring in the given style. With StyleAuto every style
// is attempted and the parse that recognized the most meta entries wins,
// ties going to the earlier style in priority order. A docstring that no
// style accepts yields a ParseError.
func Parse(text string, style Style) (*Docstring, error) {
	if style != StyleAuto {
		codec, ok := codecs[style]
		if !ok {
			return nil, parseErrorf("", "no parser registered for style %s", style)
		}
		return codec.parse(text)
	}

	var best *Docstring
	var lastErr error
	for _, s := range styleOrder {
		doc, err := codecs[s].parse(text)
		if err != nil {
			lastErr = err
			continue
		}
		if best == nil || len(doc.Meta) > len(best.Meta) {
			best = doc
		}
	}
	if best == nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, parseErrorf(text, "no docstring style matched")
	}
	return best, nil
}

// Compose renders a docstring in the given style. StyleAuto and StyleUnset
// fall back to the style recorded on the docstring itself; if that is also
// unresolved the call fails with a StyleError. An empty indent selects
// DefaultIndent.
func Compose(d *Docstring, style Style, rendering RenderingStyle, indent string) (string, error) {
	if indent == "" {
		indent = DefaultIndent
	}
	resolved := style
	if resolved == StyleAuto || resolved == StyleUnset {
		resolved = d.Style
	}
	codec, ok := codecs[resolved]
	if !ok {
		return "", &StyleError{Detected: d.Style, Requested: style}
	}
	return codec.compose(d, rendering, indent), nil
}
