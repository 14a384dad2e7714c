package widget

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrTargetUnreadable is returned by Resolve when the queried file itself
// cannot be read. Failures further up the hierarchy only shorten the result.
var ErrTargetUnreadable = errors.New("target file unreadable")

// Resolve aggregates the effective contract of the widget declared in
// filePath: own and inherited properties (own first, duplicates kept),
// events, the inheritance chain and the merged styles.
func (e *Engine) Resolve(filePath string) (*AggregatedWidgetStructure, error) {
	path := filepath.Clean(filePath)
	r := e.newResolution()

	if _, err := r.read(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTargetUnreadable, path, err)
	}

	widgetName := WidgetNameFromPath(path)

	props := r.gatherProps(path, 0)
	if props == nil {
		props = []PropertyRecord{}
	}
	events := e.classifyEvents(props)
	chain, reason := r.walk(path)

	styles := r.resolveStyles(path, widgetName, 0)
	if styles == nil {
		styles = NewStyleDescription()
	}

	own := 0
	for _, p := range props {
		if p.SourceFile == path {
			own++
		}
	}

	var immediate string
	if len(chain) > 0 {
		immediate = chain[0]
	}

	result := &AggregatedWidgetStructure{
		WidgetName: widgetName,
		FilePath:   path,
		Props:      props,
		Events:     events,
		Styles:     *styles,
		Inheritance: InheritanceInfo{
			Immediate:         immediate,
			Chain:             chain,
			TerminationReason: reason,
		},
		Stats: Stats{
			TotalProps:        len(props),
			OwnProps:          own,
			InheritedProps:    len(props) - own,
			Events:            len(events),
			InheritanceLevels: len(chain),
			StyleParts:        len(styles.Parts),
			StyleClasses:      len(styles.Classes),
		},
	}

	e.logger.Debug("resolved widget",
		"widget", widgetName,
		"file", path,
		"props", result.Stats.TotalProps,
		"events", result.Stats.Events,
		"chain", len(chain),
		"termination", reason)

	return result, nil
}

// gatherProps returns the records of path followed by those of its
// ancestors. Generic roots have no file and contribute nothing.
func (r *resolution) gatherProps(path string, depth int) []PropertyRecord {
	if depth >= MaxInheritanceDepth || r.propsVisited[path] {
		return nil
	}
	r.propsVisited[path] = true

	text, err := r.read(path)
	if err != nil {
		return nil
	}
	props := ExtractProperties(text, path)

	if link, reason := r.parent(path); reason == reasonContinue {
		props = append(props, r.gatherProps(link.File, depth+1)...)
	}
	return props
}
