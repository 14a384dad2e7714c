package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/search"
	"github.com/gnana997/widgetspec/pkg/widget"
)

// targetPath turns a command argument into a props file path. Arguments
// that name an existing file or look like a path are used as given;
// anything else is a widget name searched for under the library root.
func (a *app) targetPath(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil || strings.ContainsAny(arg, `/\`) || filepath.Ext(arg) != "" {
		return filepath.Abs(arg)
	}
	if a.cfg.LibraryRoot == "" {
		return "", fmt.Errorf("widget %q: no library root configured", arg)
	}
	return search.FindPropsFile(a.cfg.LibraryRoot, arg)
}

func newResolveCmd(a *app) *cobra.Command {
	var (
		format    string
		effective bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <props-file | widget>",
		Short: "Resolve a widget's props, events, inheritance and styles",
		Long: `Resolve the full effective structure of one widget.

The argument is either the path of a compiled props file or a widget name
such as "button" or "WmButton", which is looked up under the library root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			path, err := a.targetPath(args[0])
			if err != nil {
				return err
			}

			c, err := buildComponents(a.cfg, false, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.engine.Resolve(path)
			if errors.Is(err, widget.ErrTargetUnreadable) {
				return fmt.Errorf("cannot resolve %s: %w", args[0], err)
			}
			if err != nil {
				return err
			}
			if effective {
				out := *res
				out.Props = widget.EffectiveProps(res.Props)
				res = &out
			}

			if format == formatText {
				printWidgetText(cmd.OutOrStdout(), res)
				return nil
			}
			return writeValue(cmd.OutOrStdout(), format, res)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatJSON, "output format (json, yaml, text)")
	cmd.Flags().BoolVar(&effective, "effective", false, "show one record per prop name, own definitions winning")
	return cmd
}

func newChainCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "chain <props-file | widget>",
		Short: "Print a widget's inheritance chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			path, err := a.targetPath(args[0])
			if err != nil {
				return err
			}

			c, err := buildComponents(a.cfg, false, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			chain, reason := c.engine.Walk(path)
			info := widget.InheritanceInfo{Chain: chain, TerminationReason: reason}
			if len(chain) > 0 {
				info.Immediate = chain[0]
			}

			if format == formatText {
				printInheritance(cmd.OutOrStdout(), info)
				return nil
			}
			return writeValue(cmd.OutOrStdout(), format, info)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (json, yaml, text)")
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <pattern>",
		Short: "List library files matching a glob pattern",
		Long: `List files under the library root matching a doublestar pattern.

A pattern without a slash matches file names at any depth, so
"*.props.js" lists every compiled props file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := search.Search(args[0], a.cfg.LibraryRoot)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}
