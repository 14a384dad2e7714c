package widget

import "strings"

const eventPrefix = "on"

// ClassifyEvents selects the event properties from props using the default
// callback allow-list. Order follows props.
func ClassifyEvents(props []PropertyRecord) []EventRecord {
	return classifyEvents(props, NewStringSet(DefaultEventCallbacks...))
}

func (e *Engine) classifyEvents(props []PropertyRecord) []EventRecord {
	return classifyEvents(props, e.callbacks)
}

func classifyEvents(props []PropertyRecord, callbacks StringSet) []EventRecord {
	events := []EventRecord{}
	for _, p := range props {
		if !strings.HasPrefix(p.Name, eventPrefix) && !callbacks.Has(p.Name) {
			continue
		}
		events = append(events, EventRecord{
			Name:        p.Name,
			Signature:   p.DefaultValue,
			Description: "Triggered when " + eventSubject(p.Name) + " occurs",
			SourceFile:  p.SourceFile,
		})
	}
	return events
}

// eventSubject strips the "on" prefix: "onTap" becomes "Tap". Callback
// names without the prefix are used as they are.
func eventSubject(name string) string {
	return strings.TrimPrefix(name, eventPrefix)
}
