package extractor

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/widgetspec/pkg/parser/queries"
)

// heritageTarget returns the text of the extended expression inside a
// class_heritage node. JavaScript puts the expression directly under the
// heritage node; TypeScript wraps it in an extends_clause.
func heritageTarget(heritage *ts.Node, sourceCode []byte) string {
	for i := uint(0); i < heritage.NamedChildCount(); i++ {
		child := heritage.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "comment", "implements_clause":
			continue
		case "extends_clause":
			if value := child.ChildByFieldName("value"); value != nil {
				return strings.TrimSpace(value.Utf8Text(sourceCode))
			}
			if child.NamedChildCount() > 0 {
				return strings.TrimSpace(child.NamedChild(0).Utf8Text(sourceCode))
			}
		default:
			return strings.TrimSpace(child.Utf8Text(sourceCode))
		}
	}
	return ""
}

// extractImports builds bindings from import statements and require calls.
func (e *Extractor) extractImports(matches []queries.QueryMatch, sourceCode []byte, filePath string) []ImportBinding {
	var bindings []ImportBinding
	for _, match := range matches {
		if stmt := match.Capture("import.statement"); stmt != nil {
			bindings = append(bindings, importStatementBindings(stmt.Node, sourceCode, toLocation(stmt.Location, filePath))...)
			continue
		}

		fn := match.Capture("require.fn")
		src := match.Capture("require.source")
		name := match.Capture("require.binding")
		if fn == nil || src == nil || name == nil || fn.Text != "require" {
			continue
		}
		loc := toLocation(name.Location, filePath)
		if decl := match.Capture("require.declarator"); decl != nil {
			loc = toLocation(decl.Location, filePath)
		}
		bindings = append(bindings, patternBindings(name.Node, sourceCode, unquote(src.Text), loc)...)
	}
	return bindings
}

// importStatementBindings walks the clauses of one import statement.
func importStatementBindings(stmt *ts.Node, sourceCode []byte, loc Location) []ImportBinding {
	var bindings []ImportBinding

	var source string
	if s := stmt.ChildByFieldName("source"); s != nil {
		source = unquote(s.Utf8Text(sourceCode))
	}

	for i := uint(0); i < stmt.NamedChildCount(); i++ {
		child := stmt.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "import_clause":
			if source != "" {
				bindings = append(bindings, importClauseBindings(child, sourceCode, source, loc)...)
			}
		case "import_require_clause":
			// import Base = require("./base")
			var local, spec string
			for j := uint(0); j < child.NamedChildCount(); j++ {
				n := child.NamedChild(j)
				switch n.Kind() {
				case "identifier":
					if local == "" {
						local = n.Utf8Text(sourceCode)
					}
				case "string":
					spec = unquote(n.Utf8Text(sourceCode))
				}
			}
			if local != "" && spec != "" {
				bindings = append(bindings, ImportBinding{
					LocalName:    local,
					ImportedName: "*",
					Source:       spec,
					Type:         ImportTypeRequire,
					Location:     loc,
				})
			}
		}
	}
	return bindings
}

func importClauseBindings(clause *ts.Node, sourceCode []byte, source string, loc Location) []ImportBinding {
	var bindings []ImportBinding
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier":
			bindings = append(bindings, ImportBinding{
				LocalName:    child.Utf8Text(sourceCode),
				ImportedName: "default",
				Source:       source,
				Type:         ImportTypeDefault,
				Location:     loc,
			})

		case "namespace_import":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				if id := child.NamedChild(j); id != nil && id.Kind() == "identifier" {
					bindings = append(bindings, ImportBinding{
						LocalName:    id.Utf8Text(sourceCode),
						ImportedName: "*",
						Source:       source,
						Type:         ImportTypeNamespace,
						Location:     loc,
					})
					break
				}
			}

		case "named_imports":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				spec := child.NamedChild(j)
				if spec == nil || spec.Kind() != "import_specifier" {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				imported := unquote(name.Utf8Text(sourceCode))
				local := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = alias.Utf8Text(sourceCode)
				}
				bindings = append(bindings, ImportBinding{
					LocalName:    local,
					ImportedName: imported,
					Source:       source,
					Type:         ImportTypeNamed,
					Location:     loc,
				})
			}
		}
	}
	return bindings
}

// patternBindings expands the left-hand side of a require declarator.
// A plain identifier binds the whole module; an object pattern binds the
// destructured members.
func patternBindings(pattern *ts.Node, sourceCode []byte, source string, loc Location) []ImportBinding {
	switch pattern.Kind() {
	case "identifier":
		return []ImportBinding{{
			LocalName:    pattern.Utf8Text(sourceCode),
			ImportedName: "*",
			Source:       source,
			Type:         ImportTypeRequire,
			Location:     loc,
		}}

	case "object_pattern":
		var bindings []ImportBinding
		for i := uint(0); i < pattern.NamedChildCount(); i++ {
			prop := pattern.NamedChild(i)
			if prop == nil {
				continue
			}
			switch prop.Kind() {
			case "shorthand_property_identifier_pattern":
				name := prop.Utf8Text(sourceCode)
				bindings = append(bindings, ImportBinding{
					LocalName:    name,
					ImportedName: name,
					Source:       source,
					Type:         ImportTypeRequire,
					Location:     loc,
				})
			case "pair_pattern":
				key := prop.ChildByFieldName("key")
				value := prop.ChildByFieldName("value")
				if key == nil || value == nil || value.Kind() != "identifier" {
					continue
				}
				bindings = append(bindings, ImportBinding{
					LocalName:    value.Utf8Text(sourceCode),
					ImportedName: unquote(key.Utf8Text(sourceCode)),
					Source:       source,
					Type:         ImportTypeRequire,
					Location:     loc,
				})
			}
		}
		return bindings
	}
	return nil
}

// unquote strips one layer of matching JavaScript string quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
