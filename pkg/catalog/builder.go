package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// defaultCategory holds widgets that sit directly under the library root.
const defaultCategory = "components"

// Entry is one widget found in a library: its short name and props file.
type Entry struct {
	Name     string
	FilePath string
}

// BuildConfig configures Build.
type BuildConfig struct {
	// Name defaults to the base name of RootDir.
	Name    string
	Version string

	// RootDir is the library root. The first directory below it names a
	// widget's category.
	RootDir string

	// Base, when set, supplies category, id, description and aliases for
	// widgets it already knows. Layout-derived values fill the rest.
	Base *QueryService
}

// Build assembles a catalog from the widgets found in a library. Entries
// whose names normalize to an already-seen key are skipped. The catalog is
// returned even when validation fails, together with the joined errors.
func Build(cfg BuildConfig, entries []Entry) (*Catalog, error) {
	name := cfg.Name
	if name == "" {
		name = filepath.Base(cfg.RootDir)
	}
	version := cfg.Version
	if version == "" {
		version = "1.0"
	}

	seen := make(map[string]bool, len(entries))
	categories := make(map[string]string)
	var widgets []Widget

	for _, e := range entries {
		key := NormalizeWidgetName(e.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		w := Widget{
			Name:     e.Name,
			Category: computeCategory(e.FilePath, cfg.RootDir),
			ID:       e.Name,
		}
		if cfg.Base != nil {
			if known, ok := cfg.Base.GetWidget(e.Name); ok {
				w = mergeWidget(w, known)
				if c, ok := cfg.Base.Index.CategoryByName[w.Category]; ok {
					categories[w.Category] = c.Description
				}
			}
		}
		if _, ok := categories[w.Category]; !ok {
			categories[w.Category] = ""
		}
		widgets = append(widgets, w)
	}

	sort.Slice(widgets, func(i, j int) bool {
		return widgets[i].Name < widgets[j].Name
	})

	cat := &Catalog{
		Name:       name,
		Version:    version,
		Source:     "widgetspec catalog build",
		Categories: buildCategories(categories),
		Widgets:    widgets,
	}
	if errs := cat.Validate(); len(errs) > 0 {
		return cat, fmt.Errorf("built catalog is invalid: %w", errors.Join(errs...))
	}
	return cat, nil
}

// mergeWidget overlays a known catalog entry on a layout-derived one. The
// known category and id win since style-definition paths depend on them.
func mergeWidget(derived Widget, known *Widget) Widget {
	out := derived
	if known.Category != "" {
		out.Category = known.Category
	}
	if known.ID != "" {
		out.ID = known.ID
	}
	out.Description = known.Description
	out.Aliases = append([]string(nil), known.Aliases...)
	return out
}

// computeCategory returns the first directory of filePath below rootDir.
func computeCategory(filePath, rootDir string) string {
	if rootDir == "" {
		return defaultCategory
	}
	absFile, err := filepath.Abs(filePath)
	if err != nil {
		return defaultCategory
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return defaultCategory
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		return defaultCategory
	}

	dir := filepath.Dir(rel)
	if dir == "." || dir == "" {
		return defaultCategory
	}
	return strings.Split(filepath.ToSlash(dir), "/")[0]
}

func buildCategories(descriptions map[string]string) []Category {
	categories := make([]Category, 0, len(descriptions))
	for name, desc := range descriptions {
		categories = append(categories, Category{Name: name, Description: desc})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories
}
