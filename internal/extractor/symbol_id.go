package extractor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// BuildStableSymbolID creates a deterministic symbol ID.
// The ID is derived from semantic identity fields and a canonical signature
// hash, so it survives the unit moving around inside its file.
func BuildStableSymbolID(unit *Unit) string {
	if unit == nil {
		return ""
	}

	lang := strings.TrimSpace(unit.Language)
	if lang == "" {
		lang = "unknown"
	}

	module := strings.TrimSpace(unit.Module)
	if module == "" {
		module = "_"
	}

	kind := strings.TrimSpace(unit.UnitType)
	if kind == "" {
		kind = "symbol"
	}

	name := strings.TrimSpace(unit.Name)
	if name == "" {
		name = "_"
	}

	signature := canonicalize(signatureOf(unit))

	fingerprint := strings.Join([]string{
		lang,
		module,
		kind,
		name,
		signature,
	}, "|")

	sum := sha256.Sum256([]byte(fingerprint))
	short := hex.EncodeToString(sum[:8])
	return fmt.Sprintf("%s/%s:%s:%s:%s", lang, module, kind, name, short)
}

func signatureOf(unit *Unit) string {
	var parts []string
	for _, p := range unit.Params {
		s := p.Name
		if p.Annotation != "" {
			s += ": " + p.Annotation
		}
		if p.Default != "" {
			s += " = " + p.Default
		}
		parts = append(parts, s)
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func canonicalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return whitespaceRe.ReplaceAllString(s, " ")
}
