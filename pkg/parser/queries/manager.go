// Package queries provides tree-sitter query compilation, caching, and execution.
package queries

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/parser/queries/modules"
)

// QueryType identifies which query to execute.
type QueryType int

const (
	// QueryTypeClasses matches classes with an extends clause.
	QueryTypeClasses QueryType = iota
	// QueryTypeImports matches import statements and require bindings.
	QueryTypeImports
)

// String returns the string representation of a QueryType.
func (qt QueryType) String() string {
	switch qt {
	case QueryTypeClasses:
		return "classes"
	case QueryTypeImports:
		return "imports"
	default:
		return "unknown"
	}
}

// queryKey uniquely identifies a compiled query. TSX trees use different
// node symbols than plain TypeScript, so the variant is part of the key.
type queryKey struct {
	lang  parser.Language
	isTSX bool
	qtype QueryType
}

// QueryManager compiles queries lazily and caches them per grammar.
// Safe for concurrent use; compiled queries are freed by Close.
//
//	qm := NewQueryManager(parserManager, logger)
//	defer qm.Close()
//
//	query, err := qm.GetQuery(parser.LanguageJavaScript, false, QueryTypeClasses)
//	if err != nil {
//	    return err
//	}
//	matches, err := qm.ExecuteQuery(tree, query, source)
type QueryManager struct {
	parserManager *parser.ParserManager
	cache         map[queryKey]*ts.Query
	mutex         sync.RWMutex
	logger        *slog.Logger
}

// NewQueryManager creates a new query manager. Logger can be nil.
func NewQueryManager(pm *parser.ParserManager, logger *slog.Logger) *QueryManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &QueryManager{
		parserManager: pm,
		cache:         make(map[queryKey]*ts.Query),
		logger:        logger,
	}
}

// GetQuery returns the compiled query of type qtype for a grammar,
// compiling it on first use.
func (qm *QueryManager) GetQuery(lang parser.Language, isTSX bool, qtype QueryType) (*ts.Query, error) {
	if lang != parser.LanguageTypeScript {
		isTSX = false
	}
	key := queryKey{lang: lang, isTSX: isTSX, qtype: qtype}

	qm.mutex.RLock()
	query, exists := qm.cache[key]
	qm.mutex.RUnlock()
	if exists {
		return query, nil
	}

	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	if query, exists = qm.cache[key]; exists {
		return query, nil
	}

	queryString, err := queryString(lang, qtype)
	if err != nil {
		return nil, err
	}

	langPtr, err := qm.parserManager.GetLanguagePointer(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get language pointer for %s: %w", lang, err)
	}

	query, qerr := ts.NewQuery(ts.NewLanguage(langPtr), queryString)
	if qerr != nil {
		return nil, fmt.Errorf("failed to compile %s query for %s: %s", qtype, lang, qerr.Message)
	}

	qm.cache[key] = query
	qm.logger.Debug("compiled query",
		"language", lang.String(),
		"isTSX", isTSX,
		"type", qtype.String())

	return query, nil
}

// queryString returns the query source for a language and type.
func queryString(lang parser.Language, qtype QueryType) (string, error) {
	switch {
	case lang == parser.LanguageJavaScript && qtype == QueryTypeClasses:
		return modules.JSClassQueries, nil
	case lang == parser.LanguageJavaScript && qtype == QueryTypeImports:
		return modules.JSImportQueries, nil
	case lang == parser.LanguageTypeScript && qtype == QueryTypeClasses:
		return modules.TSClassQueries, nil
	case lang == parser.LanguageTypeScript && qtype == QueryTypeImports:
		return modules.TSImportQueries, nil
	default:
		return "", fmt.Errorf("no %s query for language %s", qtype, lang)
	}
}

// ExecuteQuery runs a compiled query over tree and returns its matches in
// document order. Captured nodes are only valid until the tree is closed.
func (qm *QueryManager) ExecuteQuery(tree *ts.Tree, query *ts.Query, source []byte) ([]QueryMatch, error) {
	if tree == nil {
		return nil, fmt.Errorf("tree is nil")
	}
	if query == nil {
		return nil, fmt.Errorf("query is nil")
	}

	cursor := ts.NewQueryCursor()
	defer cursor.Close()

	iter := cursor.Matches(query, tree.RootNode(), source)

	captureNames := query.CaptureNames()

	var matches []QueryMatch
	for {
		match := iter.Next()
		if match == nil {
			break
		}

		var captures []QueryCapture
		for _, capture := range match.Captures {
			var captureName string
			if int(capture.Index) < len(captureNames) {
				captureName = captureNames[capture.Index]
			}

			category, field := parseCaptureName(captureName)

			node := capture.Node
			captures = append(captures, QueryCapture{
				Name:     captureName,
				Category: category,
				Field:    field,
				Node:     &node,
				Text:     node.Utf8Text(source),
				Location: nodeLocation(&node),
			})
		}

		matches = append(matches, QueryMatch{
			PatternIndex: uint32(match.PatternIndex),
			Captures:     captures,
		})
	}

	return matches, nil
}

// Close releases all compiled queries.
func (qm *QueryManager) Close() error {
	qm.mutex.Lock()
	defer qm.mutex.Unlock()

	qm.logger.Debug("closing QueryManager", "queries_compiled", len(qm.cache))

	for key, query := range qm.cache {
		if query != nil {
			query.Close()
		}
		delete(qm.cache, key)
	}

	return nil
}

// QueryMatch represents a single pattern match from query execution.
type QueryMatch struct {
	PatternIndex uint32
	Captures     []QueryCapture
}

// Capture returns the first capture named name, or nil.
func (m QueryMatch) Capture(name string) *QueryCapture {
	for i := range m.Captures {
		if m.Captures[i].Name == name {
			return &m.Captures[i]
		}
	}
	return nil
}

// QueryCapture represents a single captured node from a query match.
type QueryCapture struct {
	// Name is the full capture name, e.g. "class.heritage".
	Name string

	// Category and Field are Name split at the first dot.
	Category string
	Field    string

	Node     *ts.Node
	Text     string
	Location Location
}

// Location represents a position in source code.
type Location struct {
	StartLine   uint32 // 1-based line number
	StartColumn uint32 // 1-based column number
	EndLine     uint32
	EndColumn   uint32
	StartByte   uint32 // 0-based byte offset
	EndByte     uint32
}

// parseCaptureName splits a capture name at its first dot.
//
// If the name has no dot, returns (name, "").
// Examples:
//   - "class.heritage" → ("class", "heritage")
//   - "require.source" → ("require", "source")
//   - "statement" → ("statement", "")
func parseCaptureName(name string) (category, field string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

// nodeLocation extracts location information from a tree-sitter node.
//
// Converts tree-sitter's 0-based coordinates to 1-based line/column numbers
// for consistency with LSP and most editor APIs.
func nodeLocation(node *ts.Node) Location {
	start := node.StartPosition()
	end := node.EndPosition()

	return Location{
		StartLine:   uint32(start.Row + 1),    // Convert 0-based to 1-based
		StartColumn: uint32(start.Column + 1), // Convert 0-based to 1-based
		EndLine:     uint32(end.Row + 1),
		EndColumn:   uint32(end.Column + 1),
		StartByte:   uint32(node.StartByte()),
		EndByte:     uint32(node.EndByte()),
	}
}
