package extractor

import sitter "github.com/smacker/go-tree-sitter"

// Unit is the universal container for any documentable symbol: the module
// itself, a class, or a function.
type Unit struct {
	ID        string `json:"id"`
	Filepath  string `json:"filepath"`
	Module    string `json:"module"`
	Language  string `json:"language"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	UnitType  string `json:"unit_type"` // e.g., "module", "class", "function", "method"
	Name      string `json:"name"`

	// Docstring is the raw docstring text with quotes stripped, "" when the
	// unit carries none. HasDocstring tells the two apart, since an empty
	// docstring literal is still a docstring.
	Docstring     string `json:"docstring"`
	HasDocstring  bool   `json:"has_docstring"`
	DocstringLine int    `json:"docstring_line"`

	// Signature facts used to check documentation against the code.
	Params      []Param  `json:"params"`
	HasReturn   bool     `json:"has_return"`
	HasYield    bool     `json:"has_yield"`
	RaisedTypes []string `json:"raised_types"`
}

// Param is one parameter of a function signature.
type Param struct {
	Name       string `json:"name"`
	Annotation string `json:"annotation,omitempty"`
	Default    string `json:"default,omitempty"`
}

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractUnit(captureName string, node *sitter.Node, sourceCode []byte, filepath string, moduleName string) *Unit
	ExtractModuleUnit(root *sitter.Node, sourceCode []byte, filepath string, moduleName string) *Unit
}
