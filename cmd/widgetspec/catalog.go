package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/catalog"
	"github.com/gnana997/widgetspec/pkg/search"
	"github.com/gnana997/widgetspec/pkg/widget"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the widget catalog",
	}
	cmd.AddCommand(newCatalogListCmd(a), newCatalogLookupCmd(a), newCatalogBuildCmd(a))
	return cmd
}

func newCatalogListCmd(a *app) *cobra.Command {
	var (
		format   string
		category string
		keyword  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog widgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			qs, err := loadCatalog(a.cfg.CatalogPath)
			if err != nil {
				return err
			}
			if category != "" {
				if _, ok := qs.Index.CategoryByName[category]; !ok {
					return fmt.Errorf("unknown category %q", category)
				}
			}

			widgets := qs.ListWidgets(category, keyword)
			if format != formatText {
				return writeValue(cmd.OutOrStdout(), format, widgets)
			}

			out := cmd.OutOrStdout()
			nameW := 0
			for _, w := range widgets {
				nameW = max(nameW, len(w.Name))
			}
			for _, w := range widgets {
				padding := strings.Repeat(" ", nameW-len(w.Name))
				fmt.Fprintf(out, "  %s%s  %-12s %s\n", w.Name, padding, w.Category, w.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (json, yaml, text)")
	cmd.Flags().StringVar(&category, "category", "", "only widgets in this category")
	cmd.Flags().StringVar(&keyword, "keyword", "", "only widgets whose name or description contains this")
	return cmd
}

func newCatalogLookupCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lookup <widget>",
		Short: "Show the catalog entry for a widget name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			qs, err := loadCatalog(a.cfg.CatalogPath)
			if err != nil {
				return err
			}

			w, ok := qs.GetWidget(args[0])
			if !ok {
				return fmt.Errorf("widget %q not found in catalog", args[0])
			}
			if format != formatText {
				return writeValue(cmd.OutOrStdout(), format, w)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  [%s]\n", w.Name, w.Category)
			fmt.Fprintf(out, "  id       %s\n", w.ID)
			if len(w.Aliases) > 0 {
				fmt.Fprintf(out, "  aliases  %s\n", strings.Join(w.Aliases, ", "))
			}
			if w.Description != "" {
				fmt.Fprintf(out, "  %s\n", w.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (json, yaml, text)")
	return cmd
}

func newCatalogBuildCmd(a *app) *cobra.Command {
	var (
		name    string
		outFile string
		merge   bool
	)

	cmd := &cobra.Command{
		Use:   "build [root]",
		Short: "Generate a catalog from a library's directory layout",
		Long: `Generate a catalog with one widget per props file found under the library
root (or the given directory). The first directory below the root becomes
the widget's category.

With --merge, widgets known to the configured catalog keep its category,
id, description and aliases.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.LibraryRoot
			if len(args) == 1 {
				root = args[0]
			}

			files, err := search.Discover(root, search.Options{
				Include: search.DefaultPropsPatterns,
				Exclude: a.cfg.excludes(),
			})
			if err != nil {
				return err
			}

			entries := make([]catalog.Entry, 0, len(files))
			for _, f := range files {
				entries = append(entries, catalog.Entry{Name: widget.WidgetNameFromPath(f), FilePath: f})
			}

			cfg := catalog.BuildConfig{Name: name, RootDir: root}
			if merge {
				if cfg.Base, err = loadCatalog(a.cfg.CatalogPath); err != nil {
					return err
				}
			}

			cat, err := catalog.Build(cfg, entries)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cat, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return err
			}
			a.logger.Info("wrote catalog", "path", outFile, "widgets", len(cat.Widgets), "categories", len(cat.Categories))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "catalog name (default: base name of the root)")
	cmd.Flags().StringVarP(&outFile, "output-file", "f", "", "write the catalog here instead of stdout")
	cmd.Flags().BoolVar(&merge, "merge", false, "keep entries from the configured catalog for known widgets")
	return cmd
}
