package widget

// MaxInheritanceDepth bounds every inheritance walk, including cyclic ones.
const MaxInheritanceDepth = 5

// DefaultGenericBases are framework root classes. They end a chain and are
// never resolved to a file.
var DefaultGenericBases = []string{
	"BaseComponent",
	"BaseProps",
	"BaseStyles",
	"BaseComponentState",
	"Component",
	"PureComponent",
	"React.Component",
	"React.PureComponent",
	"Object",
}

// DefaultEventCallbacks are callback properties whose names do not start
// with "on" but which still behave as events.
var DefaultEventCallbacks = []string{
	"renderItem",
	"renderItemPartial",
	"keyExtractor",
	"getDisplayExpression",
	"formatter",
}

// Options configures an Engine.
type Options struct {
	// StyleDefRoot is the directory holding style-definition trees. Empty
	// disables style-definition lookups.
	StyleDefRoot string

	// StyleDefSubdir is inserted between StyleDefRoot and the category.
	StyleDefSubdir string

	// PackagePrefix marks package-style import specifiers that live under
	// RuntimeRoot, e.g. "@wavemaker/app-rn-runtime".
	PackagePrefix string
	RuntimeRoot   string

	// GenericBases and EventCallbacks extend the defaults above.
	GenericBases   []string
	EventCallbacks []string

	// PropsSuffix, StylesSuffix and StyleDefSuffix are the name suffixes
	// placed before the file extension, e.g. "button.props.js".
	PropsSuffix    string
	StylesSuffix   string
	StyleDefSuffix string

	// StyleDefExt is the extension of style-definition files.
	StyleDefExt string
}

// DefaultOptions returns options for the React Native runtime layout.
func DefaultOptions() Options {
	return Options{
		StyleDefSubdir: "components",
		PackagePrefix:  "@wavemaker/app-rn-runtime",
		PropsSuffix:    ".props",
		StylesSuffix:   ".styles",
		StyleDefSuffix: ".styledef",
		StyleDefExt:    ".js",
	}
}

// withDefaults fills unset suffixes from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PropsSuffix == "" {
		o.PropsSuffix = d.PropsSuffix
	}
	if o.StylesSuffix == "" {
		o.StylesSuffix = d.StylesSuffix
	}
	if o.StyleDefSuffix == "" {
		o.StyleDefSuffix = d.StyleDefSuffix
	}
	if o.StyleDefExt == "" {
		o.StyleDefExt = d.StyleDefExt
	}
	return o
}
