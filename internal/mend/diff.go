package mend

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Patch renders a unified diff between the unit's original docstring and the
// mended one. It returns "" when nothing changed.
func (r *Result) Patch() string {
	if !r.Changed {
		return ""
	}
	label := r.Unit.Filepath + ":" + r.Unit.Name
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Before),
		B:        difflib.SplitLines(r.After),
		FromFile: label,
		ToFile:   label + " (mended)",
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return strings.TrimRight(diff, "\n")
}
