package docstring

import (
	"regexp"
	"strings"
	"unicode"
)

// Str returns a pointer to s. Model fields use *string so an absent
// description can be told apart from an empty one.
func Str(s string) *string { return &s }

// StrValue returns the pointed-to string, or "" for nil.
func StrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// cleandoc normalizes docstring indentation the way Python's
// inspect.cleandoc does: the first line loses all leading spaces, the
// remaining lines lose their longest common margin, and leading and
// trailing empty lines are dropped.
func cleandoc(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", "        "), "\n")

	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeft(line, " ")
		if content == "" {
			continue
		}
		indent := len(line) - len(content)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	if margin > 0 {
		for i, line := range lines[1:] {
			if len(line) > margin {
				lines[i+1] = line[margin:]
			} else {
				lines[i+1] = ""
			}
		}
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// splitDescriptionChunk fills the short/long description fields and their
// blank-line flags from the text preceding the first meta marker.
func splitDescriptionChunk(d *Docstring, chunk string) {
	first, rest, hasRest := strings.Cut(chunk, "\n")
	if first != "" {
		d.ShortDescription = Str(first)
	}
	if !hasRest {
		return
	}
	d.BlankAfterShortDescription = strings.HasPrefix(rest, "\n")
	d.BlankAfterLongDescription = strings.HasSuffix(rest, "\n\n")
	if long := strings.TrimSpace(rest); long != "" {
		d.LongDescription = Str(long)
	}
}

// joinContinuation keeps the first description line as-is and dedents the
// continuation block under it, preserving relative indentation inside the
// block.
func joinContinuation(desc string) string {
	first, rest, hasRest := strings.Cut(desc, "\n")
	if !hasRest {
		return desc
	}
	return first + "\n" + cleandoc(rest)
}

// splitAtLine cuts text at the first line isMarker accepts. The
// description chunk keeps its trailing newline so blank-line flags can be
// recovered from it; the meta chunk starts at the marker line.
func splitAtLine(text string, isMarker func(string) bool) (descChunk, metaChunk string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isMarker(line) {
			if i == 0 {
				return "", text
			}
			return strings.Join(lines[:i], "\n") + "\n", strings.Join(lines[i:], "\n")
		}
	}
	return text, ""
}

var defaultValueRegex = regexp.MustCompile(`(?is)defaults? to\s+(.+?)\.?\s*$`)

// extractDefault pulls a "defaults to X" literal out of a description.
func extractDefault(desc string) *string {
	m := defaultValueRegex.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}
	return Str(m[1])
}

// splitOptionalType strips a trailing "?" optionality marker from a type.
func splitOptionalType(typeName string) (string, bool) {
	if strings.HasSuffix(typeName, "?") {
		return strings.TrimSuffix(typeName, "?"), true
	}
	return typeName, false
}

// colonAtDepthZero returns the index of the first ':' outside bracket or
// paren nesting, or -1.
func colonAtDepthZero(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// typeLike reports whether s reads as a type expression: bracket-balanced
// tokens joined by "|", with no bare top-level spaces inside a token. It is
// what lets "str | int|None | bool" count as a type while "description
// with" does not.
func typeLike(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	depth := 0
	start := 0
	var parts []string
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return false
	}
	parts = append(parts, s[start:])
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return false
		}
		d := 0
		for _, r := range part {
			switch r {
			case '(', '[', '{':
				d++
			case ')', ']', '}':
				d--
			case ' ':
				if d == 0 {
					return false
				}
			}
		}
	}
	return true
}

// titleCase mirrors Python's str.title: the first letter of every
// letter-run is uppercased, the rest lowercased.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
