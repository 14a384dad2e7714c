package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gnana997/widgetspec/catalogs"
)

// CatalogIndex provides O(1) lookups into the catalog.
// Built by the loaders after validation passes.
type CatalogIndex struct {
	// WidgetByKey maps a normalized widget name or alias -> *Widget.
	WidgetByKey map[string]*Widget

	// CategoryByName maps category name -> *Category.
	CategoryByName map[string]*Category

	// WidgetsByCategory maps category name -> []*Widget in catalog order.
	WidgetsByCategory map[string][]*Widget
}

// Validate checks the catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Catalog) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, fmt.Errorf("catalog name is required"))
	}
	if c.Version == "" {
		errs = append(errs, fmt.Errorf("catalog version is required"))
	}

	categoryNames := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
			continue
		}
		if categoryNames[cat.Name] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate category name %q", i, cat.Name))
			continue
		}
		categoryNames[cat.Name] = true
	}

	// owner maps every normalized key to the widget that claimed it first.
	owner := make(map[string]string)
	claim := func(widget, name, what string) {
		key := NormalizeWidgetName(name)
		if key == "" {
			errs = append(errs, fmt.Errorf("widget %q: %s %q normalizes to an empty name", widget, what, name))
			return
		}
		if prev, ok := owner[key]; ok {
			errs = append(errs, fmt.Errorf("widget %q: %s %q collides with widget %q", widget, what, name, prev))
			return
		}
		owner[key] = widget
	}

	for i, w := range c.Widgets {
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("widgets[%d]: name is required", i))
			continue
		}
		if w.ID == "" {
			errs = append(errs, fmt.Errorf("widget %q: id is required", w.Name))
		}
		if w.Category == "" {
			errs = append(errs, fmt.Errorf("widget %q: category is required", w.Name))
		} else if !categoryNames[w.Category] {
			errs = append(errs, fmt.Errorf("widget %q: references unknown category %q", w.Name, w.Category))
		}

		claim(w.Name, w.Name, "name")
		for _, alias := range w.Aliases {
			claim(w.Name, alias, "alias")
		}
	}

	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		WidgetByKey:       make(map[string]*Widget, len(c.Widgets)),
		CategoryByName:    make(map[string]*Category, len(c.Categories)),
		WidgetsByCategory: make(map[string][]*Widget),
	}

	for i := range c.Categories {
		idx.CategoryByName[c.Categories[i].Name] = &c.Categories[i]
	}

	for i := range c.Widgets {
		w := &c.Widgets[i]
		idx.WidgetByKey[NormalizeWidgetName(w.Name)] = w
		for _, alias := range w.Aliases {
			idx.WidgetByKey[NormalizeWidgetName(alias)] = w
		}
		idx.WidgetsByCategory[w.Category] = append(idx.WidgetsByCategory[w.Category], w)
	}

	return idx
}

// LoadFromFile loads a catalog from a JSON file, validates it, and builds the index.
func LoadFromFile(path string) (*Catalog, *CatalogIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a catalog from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Catalog, *CatalogIndex, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}

	index := catalog.BuildIndex()
	return &catalog, index, nil
}

// LoadEmbedded loads the widget catalog bundled with the binary.
func LoadEmbedded() (*Catalog, *CatalogIndex, error) {
	return LoadFromBytes(catalogs.WidgetsJSON)
}
