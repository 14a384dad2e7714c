// Package widget reconstructs the effective contract of a widget from its
// compiled class files: every own and inherited property, which properties
// are events, the inheritance chain, and the merged style surface.
//
// An Engine is immutable after construction and safe for concurrent use.
// Every call builds its own traversal state, so resolving the same file
// twice yields identical results.
package widget

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnana997/widgetspec/pkg/extractor"
	"github.com/gnana997/widgetspec/pkg/parser"
	"github.com/gnana997/widgetspec/pkg/source"
)

// Catalog maps a widget name to the category and canonical identifier of
// its style-definition file.
type Catalog interface {
	Lookup(widgetName string) (category, id string, ok bool)
}

// ModuleExtractor reads class and import structure from one file.
type ModuleExtractor interface {
	ExtractModule(filePath string, sourceCode []byte) (*extractor.ModuleInfo, error)
}

// Engine resolves widget structures.
type Engine struct {
	reader    source.Reader
	modules   ModuleExtractor
	catalog   Catalog
	opts      Options
	bases     StringSet
	callbacks StringSet
	logger    *slog.Logger
}

// NewEngine builds an Engine. catalog may be nil, in which case no
// style-definition file is ever found. logger may be nil.
func NewEngine(reader source.Reader, modules ModuleExtractor, catalog Catalog, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	bases := NewStringSet(DefaultGenericBases...)
	bases.Add(opts.GenericBases...)
	callbacks := NewStringSet(DefaultEventCallbacks...)
	callbacks.Add(opts.EventCallbacks...)

	return &Engine{
		reader:    reader,
		modules:   modules,
		catalog:   catalog,
		opts:      opts,
		bases:     bases,
		callbacks: callbacks,
		logger:    logger,
	}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.opts
}

// IsGenericBase reports whether a parent expression names a framework
// root. Member expressions match on their full text or last segment, so
// both "React.Component" and "_react.Component" qualify.
func (e *Engine) IsGenericBase(parent string) bool {
	if e.bases.Has(parent) {
		return true
	}
	if i := strings.LastIndex(parent, "."); i >= 0 {
		return e.bases.Has(parent[i+1:])
	}
	return false
}

// parentLink is the resolved parent of one file.
type parentLink struct {
	Name string
	File string
}

type readResult struct {
	text string
	err  error
}

type moduleResult struct {
	info   *extractor.ModuleInfo
	reason TerminationReason
}

type parentResult struct {
	link   parentLink
	reason TerminationReason
}

// resolution holds the state of one top-level call. Files are read and
// parsed at most once per call, and each walker has its own visited set.
type resolution struct {
	engine  *Engine
	texts   map[string]readResult
	modules map[string]moduleResult
	parents map[string]parentResult

	propsVisited  map[string]bool
	stylesVisited map[string]bool
}

func (e *Engine) newResolution() *resolution {
	return &resolution{
		engine:        e,
		texts:         make(map[string]readResult),
		modules:       make(map[string]moduleResult),
		parents:       make(map[string]parentResult),
		propsVisited:  make(map[string]bool),
		stylesVisited: make(map[string]bool),
	}
}

func (r *resolution) read(path string) (string, error) {
	if res, ok := r.texts[path]; ok {
		return res.text, res.err
	}
	text, err := r.engine.reader.Read(path)
	r.texts[path] = readResult{text: text, err: err}
	return text, err
}

// parent determines the parent class of the file at path and, unless it is
// a generic root, the file that declares it. reasonContinue means the walk
// may descend into link.File.
func (r *resolution) parent(path string) (parentLink, TerminationReason) {
	if res, ok := r.parents[path]; ok {
		return res.link, res.reason
	}
	link, reason := r.findParent(path)
	r.parents[path] = parentResult{link: link, reason: reason}
	return link, reason
}

func (r *resolution) findParent(path string) (parentLink, TerminationReason) {
	e := r.engine
	info, reason := r.module(path)
	if info == nil {
		return parentLink{}, reason
	}

	class, ok := info.ParentClass()
	if !ok {
		return parentLink{}, ReasonNoParent
	}

	binding, bound := info.BindingFor(class.Extends)
	var file string
	var found bool
	if bound {
		file, found = e.resolveModuleFile(path, binding.Source)
	}

	link := parentLink{Name: r.parentName(class.Extends, binding, bound, file, found)}
	if e.IsGenericBase(link.Name) || e.IsGenericBase(class.Extends) {
		return link, ReasonGenericRoot
	}

	if !bound {
		e.logger.Debug("inheritance walk stopped: parent not imported",
			"file", path, "parent", class.Extends)
		return link, ReasonUnresolved
	}
	if !found {
		e.logger.Debug("inheritance walk stopped: import not resolved",
			"file", path, "parent", class.Extends, "source", binding.Source)
		return link, ReasonUnresolved
	}

	link.File = file
	return link, reasonContinue
}

// module reads and parses the file at path once per call. A nil result
// comes with the reason the walk stops there.
func (r *resolution) module(path string) (*extractor.ModuleInfo, TerminationReason) {
	if res, ok := r.modules[path]; ok {
		return res.info, res.reason
	}
	res := r.extract(path)
	r.modules[path] = res
	return res.info, res.reason
}

func (r *resolution) extract(path string) moduleResult {
	e := r.engine
	text, err := r.read(path)
	if err != nil {
		e.logger.Debug("inheritance walk stopped: unreadable file", "file", path, "error", err)
		return moduleResult{reason: ReasonUnreadable}
	}
	info, err := e.modules.ExtractModule(path, []byte(text))
	if err != nil {
		e.logger.Debug("inheritance walk stopped: module not parsed", "file", path, "error", err)
		return moduleResult{reason: ReasonNoParent}
	}
	return moduleResult{info: info}
}

// parentName is the class name recorded in the chain for an extends
// expression. Compiled CommonJS refers to the parent through a module
// object ("_base.default", "_react.Component", "base_1.default"), so the
// member is used instead: a named member as it is, and "default" as the
// class declared by the imported file or, failing that, the class name the
// compiler derived the module variable from.
func (r *resolution) parentName(expr string, binding extractor.ImportBinding, bound bool, file string, found bool) string {
	if !bound || binding.ImportedName != "*" {
		return expr
	}
	member, ok := memberOf(expr, binding.LocalName)
	if !ok {
		return expr
	}
	if member != "default" {
		return member
	}
	if found {
		if info, _ := r.module(file); info != nil {
			for _, c := range info.Classes {
				if c.Name != "" {
					return c.Name
				}
			}
		}
	}
	if name := classNameFromVariable(binding.LocalName); name != "" {
		return name
	}
	return expr
}

// memberOf returns the first member accessed on local in expr, so
// memberOf("_base.default", "_base") is "default".
func memberOf(expr, local string) (string, bool) {
	rest, ok := strings.CutPrefix(expr, local+".")
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, ".[(<"); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}

// classNameFromVariable undoes the module variable naming of Babel
// ("_baseComponent", "_baseComponent2") and tsc ("base_component_1"),
// giving "BaseComponent".
func classNameFromVariable(local string) string {
	name := strings.TrimRight(local, "0123456789")
	name = strings.Trim(name, "_$")
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// resolveModuleFile maps an import specifier seen in fromFile to a file.
// Relative specifiers resolve against fromFile's directory; specifiers
// under PackagePrefix resolve against RuntimeRoot. Bare package names
// outside the prefix are not followed.
func (e *Engine) resolveModuleFile(fromFile, spec string) (string, bool) {
	var base string
	switch {
	case spec == "." || spec == ".." || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../"):
		base = filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(spec))

	case e.opts.PackagePrefix != "" && e.opts.RuntimeRoot != "" &&
		(spec == e.opts.PackagePrefix || strings.HasPrefix(spec, e.opts.PackagePrefix+"/")):
		rest := strings.TrimPrefix(spec, e.opts.PackagePrefix)
		base = filepath.Join(e.opts.RuntimeRoot, filepath.FromSlash(rest))

	case filepath.IsAbs(spec):
		base = filepath.Clean(spec)

	default:
		return "", false
	}

	if e.reader.Exists(base) {
		return base, true
	}
	for _, ext := range parser.SourceExtensions() {
		if candidate := base + ext; e.reader.Exists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range parser.SourceExtensions() {
		if candidate := filepath.Join(base, "index"+ext); e.reader.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
