package parser

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool hands out tree-sitter parsers for one grammar.
//
// A tree-sitter parser is not safe for concurrent use, so every Parse call
// borrows one. Parsers are built lazily; once limit parsers exist, acquire
// waits for a release.
type parserPool struct {
	idle    chan *ts.Parser
	slots   chan struct{} // one token per parser that may still be built
	langPtr unsafe.Pointer
	lang    Language
	isTSX   bool

	created atomic.Int64
	logger  *slog.Logger
}

func newParserPool(lang Language, langPtr unsafe.Pointer, isTSX bool, limit int, logger *slog.Logger) *parserPool {
	slots := make(chan struct{}, limit)
	for range limit {
		slots <- struct{}{}
	}
	return &parserPool{
		idle:    make(chan *ts.Parser, limit),
		slots:   slots,
		langPtr: langPtr,
		lang:    lang,
		isTSX:   isTSX,
		logger:  logger,
	}
}

// acquire prefers an idle parser, then a fresh one, then waits.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.idle:
		return parser, nil
	default:
	}

	select {
	case parser := <-p.idle:
		return parser, nil
	case <-p.slots:
		parser, err := p.build()
		if err != nil {
			p.slots <- struct{}{}
			return nil, err
		}
		return parser, nil
	}
}

func (p *parserPool) build() (*ts.Parser, error) {
	parser := ts.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create parser")
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	n := p.created.Add(1)
	p.logger.Debug("created parser",
		"language", p.lang.String(),
		"isTSX", p.isTSX,
		"parsers", n)
	return parser, nil
}

// release makes parser available to the next acquire.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.idle <- parser:
	default:
		// Cannot happen while every parser comes from acquire.
		parser.Close()
		p.logger.Warn("parser pool overflow, closing parser", "language", p.lang.String())
	}
}

// close frees every idle parser. Parsers still borrowed are not tracked;
// callers must release them first.
func (p *parserPool) close() {
	close(p.idle)
	count := 0
	for parser := range p.idle {
		parser.Close()
		count++
	}
	p.logger.Debug("closed parser pool",
		"language", p.lang.String(),
		"isTSX", p.isTSX,
		"parsers_closed", count)
}

func (p *parserPool) getCreatedCount() int {
	return int(p.created.Load())
}
