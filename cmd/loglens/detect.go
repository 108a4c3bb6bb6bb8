package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/api"
)

func newDetectCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "detect [FILES...]",
		Short: "Detect the format of one or more log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fail("detect requires at least one file")
			}
			out := cmd.OutOrStdout()
			for _, path := range args {
				if len(args) > 1 {
					fmt.Fprintf(out, "%s:\n", path)
				}
				if all {
					results, err := api.DetectAllFormats(path)
					if err != nil {
						return fail("detecting %s: %v", path, err)
					}
					for _, r := range results {
						fmt.Fprintf(out, "  %-20s score=%.2f confidence=%.2f %s\n", r.Name, r.Score, r.Confidence, confidenceBar(r.Confidence))
					}
					continue
				}
				name, confidence, err := api.DetectFormat(path)
				if err != nil {
					return fail("detecting %s: %v", path, err)
				}
				fmt.Fprintf(out, "  %-20s confidence=%.2f %s\n", name, confidence, confidenceBar(confidence))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print the ranked list of every signature's score")
	return cmd
}

func confidenceBar(confidence float64) string {
	width := 20
	filled := int(confidence * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
