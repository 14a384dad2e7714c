package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/widgetspec/pkg/mcp"
	"github.com/gnana997/widgetspec/pkg/mcplog"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := buildComponents(a.cfg, a.cfg.Watch, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			callLog, err := mcplog.NewLogger(a.cfg.LogFile)
			if err != nil {
				return fmt.Errorf("open call log: %w", err)
			}
			if callLog != nil {
				defer callLog.Close()
			}

			a.logger.Info("serving MCP on stdio",
				"library_root", a.cfg.LibraryRoot,
				"watch", a.cfg.Watch,
				"call_log", a.cfg.LogFile)

			return mcpserver.NewServer(c.engine, c.query, a.cfg.LibraryRoot, callLog).ServeStdio()
		},
	}

	cmd.Flags().String("log-file", "", "append one JSON line per tool call to this file")
	cmd.Flags().Bool("watch", false, "evict cached sources when library files change")
	_ = a.v.BindPFlag("log_file", cmd.Flags().Lookup("log-file"))
	_ = a.v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	return cmd
}
