package catalog

import (
	"strings"
	"unicode"
)

// widgetPrefix is the framework prefix carried by compiled class names
// (WmButton) and some file names (wm-button).
const widgetPrefix = "wm"

// NormalizeWidgetName maps the many spellings of a widget name onto one
// lookup key: lowercased, with separators and the framework prefix removed.
//
//	NormalizeWidgetName("WmButton")     // "button"
//	NormalizeWidgetName("progress-bar") // "progressbar"
func NormalizeWidgetName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	key := b.String()
	if trimmed := strings.TrimPrefix(key, widgetPrefix); trimmed != "" {
		return trimmed
	}
	return key
}

// QueryService provides read-only query methods over a loaded catalog.
// Safe for concurrent use once constructed.
type QueryService struct {
	Catalog *Catalog
	Index   *CatalogIndex
}

// NewQueryService creates a QueryService from a validated catalog and its index.
func NewQueryService(cat *Catalog, idx *CatalogIndex) *QueryService {
	return &QueryService{Catalog: cat, Index: idx}
}

// LoadAndQuery loads a catalog from file and returns a ready-to-use QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	cat, idx, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat, idx), nil
}

// LoadAndQueryEmbedded returns a QueryService over the bundled catalog.
func LoadAndQueryEmbedded() (*QueryService, error) {
	cat, idx, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return NewQueryService(cat, idx), nil
}

// GetWidget returns the widget registered under name or one of its aliases.
func (q *QueryService) GetWidget(name string) (*Widget, bool) {
	w, ok := q.Index.WidgetByKey[NormalizeWidgetName(name)]
	return w, ok
}

// Lookup returns the category and canonical identifier for a widget name.
func (q *QueryService) Lookup(name string) (category, id string, ok bool) {
	w, ok := q.GetWidget(name)
	if !ok {
		return "", "", false
	}
	return w.Category, w.ID, true
}

// ListCategories returns all categories in the catalog.
func (q *QueryService) ListCategories() []Category {
	return q.Catalog.Categories
}

// ListWidgets returns widgets filtered by category and/or keyword.
// Both filters are optional (pass "" to skip). When both are provided, they combine with AND logic.
// The keyword matches case-insensitively against widget Name and Description.
func (q *QueryService) ListWidgets(category, keyword string) []Widget {
	var candidates []*Widget

	if category != "" {
		candidates = q.Index.WidgetsByCategory[category]
	} else {
		candidates = make([]*Widget, 0, len(q.Catalog.Widgets))
		for i := range q.Catalog.Widgets {
			candidates = append(candidates, &q.Catalog.Widgets[i])
		}
	}

	keyword = strings.ToLower(keyword)
	results := make([]Widget, 0, len(candidates))
	for _, w := range candidates {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(w.Name), keyword) &&
			!strings.Contains(strings.ToLower(w.Description), keyword) {
			continue
		}
		results = append(results, *w)
	}
	return results
}
