package widget

import (
	"path/filepath"
	"regexp"
	"strings"
)

const defaultClassConst = "DEFAULT_CLASS"

var (
	// export const DEFAULT_CLASS = 'app-button';
	// const DEFAULT_CLASS = exports.DEFAULT_CLASS = 'app-button';
	defaultClassPattern = regexp.MustCompile(
		`\b(?:const|let|var)\s+` + defaultClassConst + `\s*=\s*(?:exports\.` + defaultClassConst + `\s*=\s*)?` +
			"(?:\"([^\"]*)\"|'([^']*)'|`([^`$]*)`)")

	// defineStyles({ ... }), defineStyles<T>({ ... }), (0, _x.defineStyles)({ ... })
	defineStylesPattern = regexp.MustCompile(`\bdefineStyles\s*(?:<[^<>()]*>)?\s*\)?\s*\(\s*\{`)

	// addStyle('app-button-rtl', ...)
	addStylePattern = regexp.MustCompile("\\baddStyle\\s*\\)?\\s*\\(\\s*(?:\"([^\"]+)\"|'([^']+)'|`([^`$]+)`)")

	// DEFAULT_CLASS + '-icon'
	concatPattern = regexp.MustCompile(
		`\b` + defaultClassConst + `\s*\+\s*(?:"([^"]*)"|'([^']*)')`)

	// `${DEFAULT_CLASS}-icon`
	templatePattern = regexp.MustCompile("`\\$\\{\\s*(?:[\\w$]+\\.)?" + defaultClassConst + "\\s*\\}([^`$]*)`")

	// { className: '.app-button-icon', rnStyleSelector: 'app-button.icon' }
	classSelectorPattern = regexp.MustCompile(
		`["']?className["']?\s*:\s*["']([^"']+)["']\s*,\s*["']?rnStyleSelector["']?\s*:\s*["']([^"']+)["']`)
	selectorClassPattern = regexp.MustCompile(
		`["']?rnStyleSelector["']?\s*:\s*["']([^"']+)["']\s*,\s*["']?className["']?\s*:\s*["']([^"']+)["']`)
)

// ResolveStyles aggregates the style surface of the widget whose props file
// is propsPath, merged with everything its ancestors contribute. It returns
// nil when no level of the hierarchy has a style or style-definition file.
func (e *Engine) ResolveStyles(propsPath, widgetName string) *StyleDescription {
	return e.newResolution().resolveStyles(filepath.Clean(propsPath), widgetName, 0)
}

func (r *resolution) resolveStyles(propsPath, widgetName string, depth int) *StyleDescription {
	if depth >= MaxInheritanceDepth || r.stylesVisited[propsPath] {
		return nil
	}
	r.stylesVisited[propsPath] = true

	own := r.ownStyles(propsPath, widgetName)

	var inherited *StyleDescription
	if link, reason := r.parent(propsPath); reason == reasonContinue {
		inherited = r.resolveStyles(link.File, WidgetNameFromPath(link.File), depth+1)
	}

	return mergeStyles(own, inherited)
}

// ownStyles reads the style file next to propsPath and the catalogued
// style-definition file for widgetName.
func (r *resolution) ownStyles(propsPath, widgetName string) *StyleDescription {
	e := r.engine
	var desc *StyleDescription

	stylePath := e.styleFilePath(propsPath)
	if text, err := r.read(stylePath); err == nil {
		desc = NewStyleDescription()
		parseStyleFile(text, desc)
	}

	if defPath, ok := r.styleDefPathFor(widgetName); ok {
		if text, err := r.read(defPath); err == nil {
			if desc == nil {
				desc = NewStyleDescription()
			}
			parseStyleDef(text, desc)
		} else {
			e.logger.Debug("style definition missing", "widget", widgetName, "path", defPath)
		}
	}

	return desc
}

func (r *resolution) styleDefPathFor(widgetName string) (string, bool) {
	e := r.engine
	if e.catalog == nil || e.opts.StyleDefRoot == "" {
		return "", false
	}
	category, id, ok := e.catalog.Lookup(widgetName)
	if !ok {
		e.logger.Debug("style definition missing: widget not in catalog", "widget", widgetName)
		return "", false
	}
	return e.styleDefPath(category, id), true
}

// parseStyleFile reads default class, parts and classes from a compiled
// style module into desc.
func parseStyleFile(text string, desc *StyleDescription) {
	var defaultClass string
	if m := defaultClassPattern.FindStringSubmatch(text); m != nil {
		defaultClass = firstGroup(m)
		desc.DefaultClassName = defaultClass
		desc.Classes.Add(defaultClass)
	}

	if loc := defineStylesPattern.FindStringIndex(text); loc != nil {
		desc.Parts.Add(topLevelKeys(text, loc[1]-1)...)
	}

	for _, m := range addStylePattern.FindAllStringSubmatch(text, -1) {
		desc.Classes.Add(firstGroup(m))
	}

	if defaultClass != "" {
		for _, m := range concatPattern.FindAllStringSubmatch(text, -1) {
			desc.Classes.Add(defaultClass + firstGroup(m))
		}
		for _, m := range templatePattern.FindAllStringSubmatch(text, -1) {
			desc.Classes.Add(defaultClass + m[1])
		}
	}
}

// parseStyleDef reads className/rnStyleSelector pairs into desc. The part
// is the last dotted segment of the selector.
func parseStyleDef(text string, desc *StyleDescription) {
	add := func(className, selector string) {
		token := strings.TrimPrefix(strings.TrimSpace(className), ".")
		selector = strings.TrimSpace(selector)
		if token == "" || selector == "" {
			return
		}
		part := selector
		if i := strings.LastIndex(selector, "."); i >= 0 {
			part = selector[i+1:]
		}
		desc.Classes.Add(token)
		desc.ClassToPartMapping[token] = part
	}

	for _, m := range classSelectorPattern.FindAllStringSubmatch(text, -1) {
		add(m[1], m[2])
	}
	for _, m := range selectorClassPattern.FindAllStringSubmatch(text, -1) {
		add(m[2], m[1])
	}
}

// mergeStyles overlays child on parent. Sets are unioned, child mappings
// win, and the child's default class name wins when it has one.
func mergeStyles(child, parent *StyleDescription) *StyleDescription {
	if child == nil && parent == nil {
		return nil
	}

	out := NewStyleDescription()
	for _, d := range []*StyleDescription{parent, child} {
		if d == nil {
			continue
		}
		if d.DefaultClassName != "" {
			out.DefaultClassName = d.DefaultClassName
		}
		out.Parts.Union(d.Parts)
		out.Classes.Union(d.Classes)
		for class, part := range d.ClassToPartMapping {
			out.ClassToPartMapping[class] = part
		}
	}
	return out
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// topLevelKeys lists the property names of the object literal whose '{' is
// at open. Nested objects, strings and comments are skipped.
func topLevelKeys(text string, open int) []string {
	var keys []string
	depth := 0
	expectKey := false

	for i := open; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end := skipString(text, i)
			if depth == 1 && expectKey && c != '`' && end > i {
				if isKeyTerminator(text, end+1) {
					keys = append(keys, text[i+1:end])
				}
				expectKey = false
			}
			i = end

		case c == '/' && i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*'):
			i = skipComment(text, i)

		case c == '{' || c == '[' || c == '(':
			depth++
			expectKey = depth == 1 && c == '{'

		case c == '}' || c == ']' || c == ')':
			depth--
			if depth == 0 {
				return keys
			}

		case c == ',':
			if depth == 1 {
				expectKey = true
			}

		case depth == 1 && expectKey && isIdentStart(c):
			j := i
			for j < len(text) && isIdentPart(text[j]) {
				j++
			}
			if isKeyTerminator(text, j) {
				keys = append(keys, text[i:j])
			}
			expectKey = false
			i = j - 1

		case c == ' ' || c == '\t' || c == '\n' || c == '\r':

		default:
			if depth == 1 {
				expectKey = false
			}
		}
	}
	return keys
}

// isKeyTerminator reports whether the first non-space byte at or after i
// ends an object key: ':' for a property, ',' or '}' for shorthand, '('
// for a method.
func isKeyTerminator(text string, i int) bool {
	for ; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':', ',', '}', '(':
			return true
		default:
			return false
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
