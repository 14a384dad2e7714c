// Package extractor reads the module structure of a single JavaScript or
// TypeScript file: which classes it declares, what they extend, and which
// local names are bound to which imported modules.
//
// Each file is parsed once; both queries run over the same tree.
package extractor

import "github.com/gnana997/widgetspec/pkg/parser"

// ModuleInfo is everything the extractor learned about one file.
type ModuleInfo struct {
	FilePath string
	Language parser.Language
	Classes  []ClassInfo
	Imports  []ImportBinding
}

// ClassInfo is a class with an extends clause.
type ClassInfo struct {
	// Name is empty for anonymous class expressions.
	Name string

	// Extends is the source text of the extended expression, e.g.
	// "BaseProps", "_base.default" or "React.Component". Type arguments
	// are not included.
	Extends string

	Location Location
}

// ImportBinding ties one local name to the module it came from.
type ImportBinding struct {
	// LocalName is the identifier visible in this file.
	LocalName string

	// ImportedName is the exported name on the other side: "default" for
	// default imports, "*" for namespace imports and whole-module requires.
	ImportedName string

	// Source is the module specifier with quotes removed.
	Source string

	Type     ImportType
	Location Location
}

// ImportType identifies how a binding was introduced.
type ImportType string

const (
	ImportTypeNamed     ImportType = "named"     // import { foo, bar as b } from './mod'
	ImportTypeDefault   ImportType = "default"   // import foo from './mod'
	ImportTypeNamespace ImportType = "namespace" // import * as foo from './mod'
	ImportTypeRequire   ImportType = "require"   // var foo = require('./mod'), import foo = require('./mod')
)

// Location represents a position in source code.
//
// Line and column numbers are 1-based; byte offsets are 0-based.
type Location struct {
	FilePath    string `json:"file_path"`
	StartLine   uint32 `json:"start_line"`
	StartColumn uint32 `json:"start_column"`
	EndLine     uint32 `json:"end_line"`
	EndColumn   uint32 `json:"end_column"`
	StartByte   uint32 `json:"start_byte"`
	EndByte     uint32 `json:"end_byte"`
}

// ParentClass returns the first class in the file that extends something.
func (m *ModuleInfo) ParentClass() (ClassInfo, bool) {
	for _, c := range m.Classes {
		if c.Extends != "" {
			return c, true
		}
	}
	return ClassInfo{}, false
}

// BindingFor finds the import binding behind an expression such as
// "BaseProps" or "_base.default". The full text is tried first, then its
// leading identifier.
func (m *ModuleInfo) BindingFor(expr string) (ImportBinding, bool) {
	if b, ok := m.binding(expr); ok {
		return b, true
	}
	if root := leadingIdentifier(expr); root != expr {
		return m.binding(root)
	}
	return ImportBinding{}, false
}

func (m *ModuleInfo) binding(name string) (ImportBinding, bool) {
	for _, b := range m.Imports {
		if b.LocalName == name {
			return b, true
		}
	}
	return ImportBinding{}, false
}

func leadingIdentifier(expr string) string {
	for i, r := range expr {
		if r == '.' || r == '[' || r == '(' || r == '<' {
			return expr[:i]
		}
	}
	return expr
}
