package extractor

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonExtractor implements LanguageExtractor for Python.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) GetQuery() string {
	return `
		(function_definition) @func
		(class_definition) @class
	`
}

func (p *PythonExtractor) ExtractUnit(captureName string, node *sitter.Node, sourceCode []byte, path string, moduleName string) *Unit {
	var unit *Unit
	switch captureName {
	case "func":
		unit = p.extractFunctionUnit(node, sourceCode, path)
	case "class":
		unit = p.extractClassUnit(node, sourceCode, path)
	}

	if unit != nil {
		unit.Module = moduleName
		unit.Language = "python"
	}
	return unit
}

// ExtractModuleUnit builds the unit representing the file itself. Its docstring
// is the leading string expression of the module, when present.
func (p *PythonExtractor) ExtractModuleUnit(root *sitter.Node, sourceCode []byte, path string, moduleName string) *Unit {
	unit := &Unit{
		ID:        fmt.Sprintf("%s:%s:%d", path, moduleName, 1),
		Filepath:  path,
		Module:    moduleName,
		Language:  "python",
		StartLine: 1,
		EndLine:   int(root.EndPoint().Row + 1),
		UnitType:  "module",
		Name:      moduleName,
	}
	p.attachDocstring(unit, root, sourceCode)
	return unit
}

func (p *PythonExtractor) extractClassUnit(node *sitter.Node, sourceCode []byte, path string) *Unit {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(sourceCode)

	unit := &Unit{
		ID:        fmt.Sprintf("%s:%s:%d", path, name, node.StartPoint().Row+1),
		Filepath:  path,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		UnitType:  "class",
		Name:      name,
	}
	if body := node.ChildByFieldName("body"); body != nil {
		p.attachDocstring(unit, body, sourceCode)
	}
	return unit
}

func (p *PythonExtractor) extractFunctionUnit(node *sitter.Node, sourceCode []byte, path string) *Unit {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Content(sourceCode)

	unitType := "function"
	isMethod := enclosedByClass(node)
	if isMethod {
		unitType = "method"
	}

	unit := &Unit{
		ID:        fmt.Sprintf("%s:%s:%d", path, name, node.StartPoint().Row+1),
		Filepath:  path,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		UnitType:  unitType,
		Name:      name,
	}

	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		unit.Params = p.extractParams(paramsNode, sourceCode, isMethod)
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		p.attachDocstring(unit, body, sourceCode)
		p.scanBody(unit, body, sourceCode)
	}
	return unit
}

// enclosedByClass reports whether the nearest enclosing definition of a
// function is a class, which makes the function a method.
func enclosedByClass(node *sitter.Node) bool {
	for n := node.Parent(); n != nil; n = n.Parent() {
		switch n.Type() {
		case "class_definition":
			return true
		case "function_definition":
			return false
		}
	}
	return false
}

// extractParams flattens a parameters node into Param values. The implicit
// receiver of a method (self or cls in first position) is dropped, matching
// how documentation tools treat signatures.
func (p *PythonExtractor) extractParams(paramsNode *sitter.Node, sourceCode []byte, isMethod bool) []Param {
	var params []Param
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		var param Param
		switch child.Type() {
		case "identifier":
			param.Name = child.Content(sourceCode)
		case "typed_parameter":
			if patNode := child.NamedChild(0); patNode != nil {
				param.Name = patternName(patNode, sourceCode)
			}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				param.Annotation = typeNode.Content(sourceCode)
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				param.Name = patternName(nameNode, sourceCode)
			}
			if typeNode := child.ChildByFieldName("type"); typeNode != nil {
				param.Annotation = typeNode.Content(sourceCode)
			}
			if valueNode := child.ChildByFieldName("value"); valueNode != nil {
				param.Default = valueNode.Content(sourceCode)
			}
		case "list_splat_pattern":
			param.Name = "*" + patternName(child.NamedChild(0), sourceCode)
		case "dictionary_splat_pattern":
			param.Name = "**" + patternName(child.NamedChild(0), sourceCode)
		default:
			// keyword_separator and positional_separator carry no name
			continue
		}
		if param.Name == "" {
			continue
		}
		if isMethod && len(params) == 0 && (param.Name == "self" || param.Name == "cls") {
			continue
		}
		params = append(params, param)
	}
	return params
}

func patternName(node *sitter.Node, sourceCode []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(sourceCode)
}

// attachDocstring looks for a leading string expression in a body node and
// records its stripped text and location on the unit.
func (p *PythonExtractor) attachDocstring(unit *Unit, body *sitter.Node, sourceCode []byte) {
	first := body.NamedChild(0)
	if first == nil {
		return
	}
	if first.Type() == "comment" {
		// skip any leading comments before the docstring candidate
		for i := 1; i < int(body.NamedChildCount()); i++ {
			if c := body.NamedChild(i); c.Type() != "comment" {
				first = c
				break
			}
		}
	}
	if first == nil || first.Type() != "expression_statement" {
		return
	}
	strNode := first.NamedChild(0)
	if strNode == nil || strNode.Type() != "string" {
		return
	}
	unit.Docstring = stripStringLiteral(strNode.Content(sourceCode))
	unit.HasDocstring = true
	unit.DocstringLine = int(strNode.StartPoint().Row + 1)
}

// scanBody walks statements looking for return, yield, and raise. Nested
// function and class definitions are not descended into, since their control
// flow belongs to them.
func (p *PythonExtractor) scanBody(unit *Unit, body *sitter.Node, sourceCode []byte) {
	seenRaised := map[string]bool{}

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition", "class_definition", "lambda":
			return
		case "return_statement":
			if n.NamedChildCount() > 0 {
				unit.HasReturn = true
			}
		case "yield":
			unit.HasYield = true
		case "raise_statement":
			if t := raisedTypeName(n, sourceCode); t != "" && !seenRaised[t] {
				seenRaised[t] = true
				unit.RaisedTypes = append(unit.RaisedTypes, t)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(body)
}

// raisedTypeName resolves the exception type of a raise statement: the callee
// for "raise ValueError(...)", the identifier for "raise ValueError", or ""
// for a bare re-raise.
func raisedTypeName(raise *sitter.Node, sourceCode []byte) string {
	expr := raise.NamedChild(0)
	if expr == nil {
		return ""
	}
	switch expr.Type() {
	case "call":
		if fn := expr.ChildByFieldName("function"); fn != nil {
			return fn.Content(sourceCode)
		}
	case "identifier", "attribute":
		return expr.Content(sourceCode)
	}
	return ""
}

// stripStringLiteral removes string prefixes and quotes from a Python string
// literal, leaving the raw docstring text.
func stripStringLiteral(literal string) string {
	s := literal
	for len(s) > 0 {
		c := s[0] | 0x20
		if c == 'r' || c == 'b' || c == 'u' || c == 'f' {
			s = s[1:]
			continue
		}
		break
	}
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(s, quote) && strings.HasSuffix(s, quote) && len(s) >= 2*len(quote) {
			return s[len(quote) : len(s)-len(quote)]
		}
	}
	return s
}
