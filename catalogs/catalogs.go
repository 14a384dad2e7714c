// Package catalogs provides embedded widget catalogs for supported component libraries.
package catalogs

import _ "embed"

// WidgetsJSON is the bundled widget catalog for the React Native runtime,
// embedded at build time.
//
//go:embed widgets/catalog.json
var WidgetsJSON []byte
