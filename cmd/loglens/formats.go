package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/api"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List registered parsers and their format aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range api.DefaultRegistry.ListParsers() {
				p, _ := api.DefaultRegistry.GetParser(name)
				fmt.Fprintf(out, "%-16s %v\n", name, p.SupportedFormats())
			}
			return nil
		},
	}
}
