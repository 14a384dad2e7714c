package widget

import (
	"path/filepath"
	"strings"
)

// WidgetNameFromPath derives a widget name from a file's base name by
// dropping everything from the first dot: "button.props.js" -> "button".
func WidgetNameFromPath(path string) string {
	base := filepath.Base(path)
	name, _, _ := strings.Cut(base, ".")
	if name == "" {
		return base
	}
	return name
}

// swapSuffix rewrites "<name><from><ext>" to "<name><to><ext>" within the
// same directory. Files without the from suffix get to inserted before
// their extension.
func swapSuffix(path, from, to string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stem = strings.TrimSuffix(stem, from)
	return filepath.Join(dir, stem+to+ext)
}

// styleFilePath maps a props file to its sibling style file.
func (e *Engine) styleFilePath(propsPath string) string {
	return swapSuffix(propsPath, e.opts.PropsSuffix, e.opts.StylesSuffix)
}

// styleDefPath locates the style-definition file of a catalogued widget.
func (e *Engine) styleDefPath(category, id string) string {
	return filepath.Join(e.opts.StyleDefRoot, e.opts.StyleDefSubdir, category, id, id+e.opts.StyleDefSuffix+e.opts.StyleDefExt)
}
