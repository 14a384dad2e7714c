package catalog

// Catalog maps the widgets of one component library to the category and
// canonical identifier used to lay out their style-definition files.
type Catalog struct {
	Name       string     `json:"name"`
	Version    string     `json:"version"`
	Source     string     `json:"source,omitempty"`
	Categories []Category `json:"categories"`
	Widgets    []Widget   `json:"widgets"`
}

// Category groups widgets. Its name is also a directory level under the
// style-definition root.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Widget is a single catalog entry.
type Widget struct {
	// Name is the widget's short name, e.g. "button".
	Name string `json:"name"`

	// Category names the Category this widget belongs to.
	Category string `json:"category"`

	// ID is the canonical identifier of the widget's style-definition
	// directory and file, e.g. "progress-bar".
	ID string `json:"id"`

	Description string `json:"description,omitempty"`

	// Aliases are additional names that resolve to this widget.
	Aliases []string `json:"aliases,omitempty"`
}
