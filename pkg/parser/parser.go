// Package parser wraps tree-sitter grammars for the JavaScript and
// TypeScript files that make up a compiled widget library.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// poolKey uniquely identifies a parser pool (language + TSX variant)
type poolKey struct {
	lang  Language
	isTSX bool
}

// ParserManager owns one lazily created parser pool per grammar.
//
// Callers own the returned trees and must Close them. The manager itself
// must be closed once no more parses will be issued.
//
//	manager := NewParserManager(logger)
//	defer manager.Close()
//
//	tree, err := manager.ParseFile(src, "/lib/button/button.props.js")
//	if err != nil {
//	    return err
//	}
//	defer tree.Close()
type ParserManager struct {
	pools    map[poolKey]*parserPool
	poolSize int
	mutex    sync.RWMutex
	logger   *slog.Logger

	parsesCalled int
}

// NewParserManager creates a ParserManager with CPU-sized pools.
func NewParserManager(logger *slog.Logger) *ParserManager {
	return NewParserManagerWithPoolSize(logger, 0)
}

// NewParserManagerWithPoolSize creates a ParserManager whose pools hold at
// most poolSize parsers each. Zero selects the CPU-based default.
func NewParserManagerWithPoolSize(logger *slog.Logger, poolSize int) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &ParserManager{
		pools:    make(map[poolKey]*parserPool),
		poolSize: getPoolSize(poolSize),
		logger:   logger,
	}
}

// Parse parses source with the grammar for lang. isTSX selects the TSX
// variant and is ignored for JavaScript.
//
// Trees containing syntax errors are still returned; compiled output is
// occasionally hand-patched and partial trees remain useful.
func (pm *ParserManager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}
	if lang != LanguageTypeScript {
		isTSX = false
	}

	pm.mutex.Lock()
	pm.parsesCalled++
	pm.mutex.Unlock()

	pool, err := pm.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree for %s source", lang)
	}

	if tree.RootNode().HasError() {
		pm.logger.Debug("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses source using the grammar implied by filePath's extension.
func (pm *ParserManager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return pm.Parse(source, lang, IsTSXFile(filePath))
}

// Close releases every parser pool. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	pm.logger.Debug("closing ParserManager", "parses_called", pm.parsesCalled)

	for key, pool := range pm.pools {
		if pool != nil {
			pool.close()
		}
		delete(pm.pools, key)
	}
	return nil
}

// getOrCreatePool returns the pool for a grammar, creating it on first use.
func (pm *ParserManager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	pm.mutex.RLock()
	pool, exists := pm.pools[key]
	pm.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	// Another goroutine may have created it in the meantime.
	if pool, exists = pm.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := pm.GetLanguagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(lang, langPtr, isTSX, pm.poolSize, pm.logger)
	pm.pools[key] = pool

	pm.logger.Debug("created parser pool",
		"language", lang.String(),
		"isTSX", isTSX,
		"maxSize", pm.poolSize)

	return pool, nil
}

// GetLanguagePointer returns the raw grammar pointer for lang. The query
// manager compiles its queries against the same pointer the parsers use.
func (pm *ParserManager) GetLanguagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil

	case LanguageJavaScript:
		return ts_javascript.Language(), nil

	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	totalParsers := 0
	for _, pool := range pm.pools {
		totalParsers += pool.getCreatedCount()
	}

	return ParserStats{
		ParsersCreated: totalParsers,
		ParsesCalled:   pm.parsesCalled,
		PoolSize:       pm.poolSize,
	}
}

// ParserStats contains parser usage statistics.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
	PoolSize       int
}
