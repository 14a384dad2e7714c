package extractor

import (
	"fmt"
	"log/slog"

	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/parser/queries"
)

// Extractor turns source text into a ModuleInfo.
//
//	pm := parser.NewParserManager(logger)
//	qm := queries.NewQueryManager(pm, logger)
//	ex := extractor.NewExtractor(pm, qm, logger)
//
//	info, err := ex.ExtractModule("/lib/button/button.props.js", src)
//	if err != nil {
//	    return err
//	}
//	parent, ok := info.ParentClass()
//
// Safe for concurrent use.
type Extractor struct {
	parserManager *parser.ParserManager
	queryManager  *queries.QueryManager
	logger        *slog.Logger
}

// NewExtractor creates a new extractor over shared parser and query managers.
func NewExtractor(pm *parser.ParserManager, qm *queries.QueryManager, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		parserManager: pm,
		queryManager:  qm,
		logger:        logger,
	}
}

// ExtractModule parses filePath's source once and collects its classes and
// import bindings. The language is taken from the file extension.
func (e *Extractor) ExtractModule(filePath string, sourceCode []byte) (*ModuleInfo, error) {
	lang := parser.DetectLanguage(filePath)
	if lang == parser.LanguageUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", filePath)
	}
	isTSX := parser.IsTSXFile(filePath)

	tree, err := e.parserManager.Parse(sourceCode, lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}
	defer tree.Close()

	classQuery, err := e.queryManager.GetQuery(lang, isTSX, queries.QueryTypeClasses)
	if err != nil {
		return nil, fmt.Errorf("failed to get class query for %s: %w", lang, err)
	}
	importQuery, err := e.queryManager.GetQuery(lang, isTSX, queries.QueryTypeImports)
	if err != nil {
		return nil, fmt.Errorf("failed to get import query for %s: %w", lang, err)
	}

	classMatches, err := e.queryManager.ExecuteQuery(tree, classQuery, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to execute class query: %w", err)
	}
	importMatches, err := e.queryManager.ExecuteQuery(tree, importQuery, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to execute import query: %w", err)
	}

	info := &ModuleInfo{
		FilePath: filePath,
		Language: lang,
		Classes:  e.extractClasses(classMatches, sourceCode, filePath),
		Imports:  e.extractImports(importMatches, sourceCode, filePath),
	}

	e.logger.Debug("extracted module",
		"file", filePath,
		"classes", len(info.Classes),
		"imports", len(info.Imports))

	return info, nil
}

func (e *Extractor) extractClasses(matches []queries.QueryMatch, sourceCode []byte, filePath string) []ClassInfo {
	var classes []ClassInfo
	for _, match := range matches {
		def := match.Capture("class.definition")
		heritage := match.Capture("class.heritage")
		if def == nil || heritage == nil {
			continue
		}

		extends := heritageTarget(heritage.Node, sourceCode)
		if extends == "" {
			continue
		}

		var name string
		if n := def.Node.ChildByFieldName("name"); n != nil {
			name = n.Utf8Text(sourceCode)
		}

		classes = append(classes, ClassInfo{
			Name:     name,
			Extends:  extends,
			Location: toLocation(def.Location, filePath),
		})
	}
	return classes
}

func toLocation(loc queries.Location, filePath string) Location {
	return Location{
		FilePath:    filePath,
		StartLine:   loc.StartLine,
		StartColumn: loc.StartColumn,
		EndLine:     loc.EndLine,
		EndColumn:   loc.EndColumn,
		StartByte:   loc.StartByte,
		EndByte:     loc.EndByte,
	}
}
