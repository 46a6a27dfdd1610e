package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	langExtractor LanguageExtractor
	langName      string
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python":
		langExt = &PythonExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, langName: lang}, nil
}

// ExtractFromFile parses a single source file and extracts all documentable units,
// starting with the module unit itself.
func (e *Extractor) ExtractFromFile(path string) ([]*Unit, error) {
	sourceCode, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return e.ExtractFromSource(sourceCode, path)
}

// ExtractFromSource extracts units from in-memory source. The path is only used
// for unit identity and module naming.
func (e *Extractor) ExtractFromSource(sourceCode []byte, path string) ([]*Unit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	moduleName := moduleNameFromPath(path)

	var units []*Unit
	if mod := e.langExtractor.ExtractModuleUnit(tree.RootNode(), sourceCode, path, moduleName); mod != nil {
		units = append(units, mod)
	}

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			captureName := query.CaptureNameForId(c.Index)
			unit := e.langExtractor.ExtractUnit(captureName, c.Node, sourceCode, path, moduleName)
			if unit != nil {
				units = append(units, unit)
			}
		}
	}

	return units, nil
}

// moduleNameFromPath derives a module name from a file path: the file stem,
// or the enclosing directory name for an __init__.py.
func moduleNameFromPath(path string) string {
	path = filepath.ToSlash(path)
	stem := strings.TrimSuffix(filepath.Base(path), ".py")
	if stem == "__init__" {
		return filepath.Base(filepath.Dir(path))
	}
	return stem
}
