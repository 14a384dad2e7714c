package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gnana997/widgetspec/pkg/indexer"
)

func newIndexCmd(a *app) *cobra.Command {
	var (
		format   string
		workers  int
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "index [root]",
		Short: "Resolve every props file in a library",
		Long: `Discover every compiled props file under the library root (or the given
directory) and resolve them in parallel.

With -o json each result is written as one JSON line, in discovery order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			root := a.cfg.LibraryRoot
			if len(args) == 1 {
				root = args[0]
			}

			c, err := buildComponents(a.cfg, false, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			opts := indexer.DefaultOptions()
			opts.Exclude = a.cfg.excludes()
			opts.Workers = workers

			var onProgress indexer.ProgressCallback
			if progress {
				errOut := cmd.ErrOrStderr()
				onProgress = func(done, total int, file string) {
					fmt.Fprintf(errOut, "[%d/%d] %s\n", done, total, file)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			results, stats, err := indexer.NewIndexer(c.engine, opts, a.logger).IndexLibrary(ctx, root, onProgress)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatText:
				printIndexSummary(out, results, stats)
			case formatJSON:
				enc := json.NewEncoder(out)
				for _, r := range results {
					if err := enc.Encode(r); err != nil {
						return err
					}
				}
			default:
				if err := writeValue(out, format, results); err != nil {
					return err
				}
			}

			if stats.FilesFailed > 0 {
				a.logger.Warn("some files failed to resolve", "failed", stats.FilesFailed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "output format (json, yaml, text)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of resolver goroutines (0 = one per CPU)")
	cmd.Flags().BoolVar(&progress, "progress", false, "report each finished file on stderr")
	return cmd
}
