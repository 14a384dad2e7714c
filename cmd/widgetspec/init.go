package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter .widgetspec/config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := defaultConfig()
			if root := a.v.GetString("library_root"); root != "" {
				cfg.LibraryRoot = root
			}
			cfg.StyleDefRoot = a.v.GetString("styledef_root")
			cfg.RuntimeRoot = a.v.GetString("runtime_root")
			cfg.CatalogPath = a.v.GetString("catalog_path")

			path := filepath.Join(configDir, "config.yaml")
			if err := writeConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
