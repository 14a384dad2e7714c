package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/widgetspec/pkg/indexer"
	"github.com/gnana997/widgetspec/pkg/widget"
)

const maxWidth = 80

// Output formats accepted by -o.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML, formatText:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want json, yaml or text)", format)
}

// writeValue encodes v as JSON or YAML. Text rendering is per command.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

// printWidgetText prints a human-readable widget summary.
func printWidgetText(w io.Writer, res *widget.AggregatedWidgetStructure) {
	fmt.Fprintf(w, "%s  [%s]\n", res.WidgetName, res.FilePath)

	fmt.Fprintln(w)
	printInheritance(w, res.Inheritance)

	fmt.Fprintln(w)
	printPropsTable(w, res.FilePath, res.Props)

	fmt.Fprintln(w)
	if len(res.Events) == 0 {
		fmt.Fprintln(w, "Events  (none)")
	} else {
		fmt.Fprintln(w, "Events")
		nameW := 0
		for _, e := range res.Events {
			nameW = max(nameW, len(e.Name))
		}
		for _, e := range res.Events {
			fmt.Fprintf(w, "  %-*s  %s\n", nameW, e.Name, e.Signature)
		}
	}

	fmt.Fprintln(w)
	printStyles(w, &res.Styles)

	s := res.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d props (%d own, %d inherited), %d events, %d levels, %d parts, %d classes\n",
		s.TotalProps, s.OwnProps, s.InheritedProps, s.Events, s.InheritanceLevels, s.StyleParts, s.StyleClasses)
}

func printInheritance(w io.Writer, info widget.InheritanceInfo) {
	if len(info.Chain) == 0 {
		fmt.Fprintf(w, "Inheritance  (none, %s)\n", info.TerminationReason)
		return
	}
	fmt.Fprintf(w, "Inheritance  (%s)\n", info.TerminationReason)
	fmt.Fprintf(w, "  %s\n", wrapList(info.Chain, " -> ", 2))
}

// printPropsTable renders props with dynamic column widths. Inherited
// records are marked with the file they came from.
func printPropsTable(w io.Writer, ownFile string, props []widget.PropertyRecord) {
	if len(props) == 0 {
		fmt.Fprintln(w, "Props  (none)")
		return
	}
	fmt.Fprintln(w, "Props")

	nameW, typeW, defW := len("NAME"), len("TYPE"), len("DEFAULT")
	for _, p := range props {
		nameW = max(nameW, len(p.Name))
		typeW = max(typeW, len(p.Type))
		defW = max(defW, len(shortDefault(p.DefaultValue)))
	}

	fmt.Fprintf(w, "  %-*s  %-*s  %-*s\n", nameW, "NAME", typeW, "TYPE", defW, "DEFAULT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", nameW+typeW+defW+4))

	for _, p := range props {
		inherited := ""
		if p.SourceFile != ownFile {
			inherited = "  (from " + p.SourceFile + ")"
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %-*s%s\n", nameW, p.Name, typeW, p.Type, defW, shortDefault(p.DefaultValue), inherited)
		if p.Description != "" {
			fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", nameW), p.Description)
		}
	}
}

// shortDefault keeps table rows on one line.
func shortDefault(v string) string {
	if v == "" {
		return "—"
	}
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i] + " …"
	}
	if len(v) > 32 {
		v = v[:31] + "…"
	}
	return v
}

func printStyles(w io.Writer, styles *widget.StyleDescription) {
	if styles.DefaultClassName == "" && len(styles.Parts) == 0 && len(styles.Classes) == 0 {
		fmt.Fprintln(w, "Styles  (none)")
		return
	}
	fmt.Fprintln(w, "Styles")
	if styles.DefaultClassName != "" {
		fmt.Fprintf(w, "  default class  %s\n", styles.DefaultClassName)
	}
	if len(styles.Parts) > 0 {
		fmt.Fprintf(w, "  parts          %s\n", wrapList(styles.Parts.Sorted(), ", ", 17))
	}
	if len(styles.ClassToPartMapping) > 0 {
		classes := make([]string, 0, len(styles.ClassToPartMapping))
		width := 0
		for c := range styles.ClassToPartMapping {
			classes = append(classes, c)
			width = max(width, len(c))
		}
		sort.Strings(classes)
		fmt.Fprintln(w, "  classes")
		for _, c := range classes {
			fmt.Fprintf(w, "    %-*s  %s\n", width, c, styles.ClassToPartMapping[c])
		}
	}
}

// wrapList joins items, wrapping at maxWidth with the given indent.
func wrapList(items []string, sep string, indent int) string {
	var sb strings.Builder
	lineLen := indent
	for i, item := range items {
		addition := len(item)
		if i > 0 {
			addition += len(sep)
		}
		if lineLen+addition > maxWidth && i > 0 {
			sb.WriteString(strings.TrimRight(sep, " "))
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", indent))
			lineLen = indent
		} else if i > 0 {
			sb.WriteString(sep)
			lineLen += len(sep)
		}
		sb.WriteString(item)
		lineLen += len(item)
	}
	return sb.String()
}

// printIndexSummary prints a one-screen summary of an indexing run.
func printIndexSummary(w io.Writer, results []indexer.Result, stats *indexer.BatchStats) {
	nameW := 0
	for _, r := range results {
		if r.Widget != nil {
			nameW = max(nameW, len(r.Widget.WidgetName))
		}
	}
	for _, r := range results {
		if r.Widget == nil {
			fmt.Fprintf(w, "  ! %s: %s\n", r.FilePath, r.Error)
			continue
		}
		s := r.Widget.Stats
		fmt.Fprintf(w, "  %-*s  %3d props  %2d events  %d levels  %s\n",
			nameW, r.Widget.WidgetName, s.TotalProps, s.Events, s.InheritanceLevels, r.Widget.Inheritance.TerminationReason)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d files, %d resolved, %d failed in %dms (%d workers)\n",
		stats.FilesDiscovered, stats.FilesResolved, stats.FilesFailed, stats.TotalTimeMs, stats.WorkerCount)
	if stats.Cancelled {
		fmt.Fprintf(w, "cancelled after %d of %d files\n", stats.FilesDispatched, stats.FilesDiscovered)
	}
}
