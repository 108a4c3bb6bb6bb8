package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/api"
	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/record"
)

func newStreamCmd() *cobra.Command {
	var (
		format   string
		output   string
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "stream FILE",
		Short: "Stream-parse a single file, reporting progress as it goes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				return fail("stream requires --format")
			}
			if output != "compact" && output != "json" {
				return errs.NewConfigurationError("unknown output mode: " + output)
			}
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			var onProgress api.ProgressFunc
			if progress {
				onProgress = func(bytes, total, lines int64) {
					if total > 0 {
						fmt.Fprintf(errOut, "\rprocessed %d lines (%d/%d bytes, %.1f%%)", lines, bytes, total, 100*float64(bytes)/float64(total))
					} else {
						fmt.Fprintf(errOut, "\rprocessed %d lines (%d bytes)", lines, bytes)
					}
				}
			}

			err := api.StreamParse(args[0], format, func(r record.Record) {
				writeStreamRecord(out, r, output)
			}, onProgress)
			if progress {
				fmt.Fprintln(errOut)
			}
			if err != nil {
				return fail("streaming %s: %v", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "parser format (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "compact", "output mode: compact|json")
	cmd.Flags().BoolVar(&progress, "progress", true, "report progress to stderr (--progress=false to disable)")
	return cmd
}

func writeStreamRecord(out io.Writer, r record.Record, mode string) {
	switch mode {
	case "json":
		writeRecordsJSON(out, []record.Record{r})
	default:
		writeRecordsCompact(out, []record.Record{r})
	}
}
