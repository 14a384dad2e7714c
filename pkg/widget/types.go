package widget

// InferredType is the structural type guessed from a default value literal.
type InferredType string

const (
	TypeAny      InferredType = "any"
	TypeBoolean  InferredType = "boolean"
	TypeString   InferredType = "string"
	TypeNumber   InferredType = "number"
	TypeFunction InferredType = "function"
	TypeArray    InferredType = "array"
	TypeObject   InferredType = "object"
)

// PropertyRecord is one property initializer found in one file.
type PropertyRecord struct {
	Name         string       `json:"name" yaml:"name"`
	Type         InferredType `json:"type" yaml:"type"`
	Required     bool         `json:"required" yaml:"required"`
	DefaultValue string       `json:"defaultValue" yaml:"defaultValue"`
	Description  string       `json:"description" yaml:"description"`
	SourceFile   string       `json:"sourceFile" yaml:"sourceFile"`
}

// EventRecord is the event view of a callback-shaped PropertyRecord.
type EventRecord struct {
	Name        string `json:"name" yaml:"name"`
	Signature   string `json:"signature" yaml:"signature"`
	Description string `json:"description" yaml:"description"`
	SourceFile  string `json:"sourceFile" yaml:"sourceFile"`
}

// InheritanceChain lists ancestor class names, immediate parent first.
type InheritanceChain []string

// TerminationReason says why an inheritance walk stopped.
type TerminationReason string

const (
	// ReasonGenericRoot: the last parent is a framework root class.
	ReasonGenericRoot TerminationReason = "generic-root"
	// ReasonNoParent: the last file declares no class with an extends clause.
	ReasonNoParent TerminationReason = "no-parent"
	// ReasonUnresolved: the parent's import could not be mapped to a file.
	ReasonUnresolved TerminationReason = "unresolved"
	// ReasonUnreadable: a file on the chain could not be read.
	ReasonUnreadable TerminationReason = "unreadable"
	// ReasonDepthLimit: MaxInheritanceDepth levels were walked.
	ReasonDepthLimit TerminationReason = "depth-limit"

	reasonContinue TerminationReason = ""
)

// StyleDescription aggregates a widget's style surface.
type StyleDescription struct {
	DefaultClassName   string            `json:"defaultClassName" yaml:"defaultClassName"`
	Parts              StringSet         `json:"parts" yaml:"parts"`
	Classes            StringSet         `json:"classes" yaml:"classes"`
	ClassToPartMapping map[string]string `json:"classToPartMapping" yaml:"classToPartMapping"`
}

// NewStyleDescription returns an empty description with allocated sets.
func NewStyleDescription() *StyleDescription {
	return &StyleDescription{
		Parts:              NewStringSet(),
		Classes:            NewStringSet(),
		ClassToPartMapping: make(map[string]string),
	}
}

// InheritanceInfo is the inheritance section of a resolved widget.
type InheritanceInfo struct {
	Immediate         string            `json:"immediate" yaml:"immediate"`
	Chain             InheritanceChain  `json:"chain" yaml:"chain"`
	TerminationReason TerminationReason `json:"terminationReason" yaml:"terminationReason"`
}

// Stats summarizes a resolved widget.
type Stats struct {
	TotalProps        int `json:"totalProps" yaml:"totalProps"`
	OwnProps          int `json:"ownProps" yaml:"ownProps"`
	InheritedProps    int `json:"inheritedProps" yaml:"inheritedProps"`
	Events            int `json:"events" yaml:"events"`
	InheritanceLevels int `json:"inheritanceLevels" yaml:"inheritanceLevels"`
	StyleParts        int `json:"styleParts" yaml:"styleParts"`
	StyleClasses      int `json:"styleClasses" yaml:"styleClasses"`
}

// AggregatedWidgetStructure is the full effective contract of one widget.
// A new value is built for every Resolve call.
type AggregatedWidgetStructure struct {
	WidgetName  string           `json:"widgetName" yaml:"widgetName"`
	FilePath    string           `json:"filePath" yaml:"filePath"`
	Props       []PropertyRecord `json:"props" yaml:"props"`
	Events      []EventRecord    `json:"events" yaml:"events"`
	Styles      StyleDescription `json:"styles" yaml:"styles"`
	Inheritance InheritanceInfo  `json:"inheritance" yaml:"inheritance"`
	Stats       Stats            `json:"stats" yaml:"stats"`
}
