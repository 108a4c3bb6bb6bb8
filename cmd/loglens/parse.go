package main

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/api"
	"github.com/loglens/loglens/internal/errs"
	"github.com/loglens/loglens/internal/record"
	"github.com/loglens/loglens/internal/safety"
	"github.com/loglens/loglens/internal/source"
)

func newParseCmd() *cobra.Command {
	var (
		format    string
		output    string
		levelStr  string
		limit     int
		grep      string
		normalize bool
	)

	cmd := &cobra.Command{
		Use:   "parse [FILES...]",
		Short: "Parse one or more log files (or stdin) into normalized records",
		RunE: func(cmd *cobra.Command, args []string) error {
			minLevel := record.Unknown
			if levelStr != "" {
				minLevel = record.ParseLevel(levelStr)
				if minLevel == record.Unknown {
					return fail("unknown level: %s", levelStr)
				}
			}

			var grepRE *regexp.Regexp
			if grep != "" {
				re, err := safety.CompileRegex(grep, 0)
				if err != nil {
					return fail("invalid grep pattern: %v", err)
				}
				grepRE = re
			}

			var all []record.Record
			if len(args) == 0 {
				records, err := parseStdin(format, normalize)
				if err != nil {
					return fail("%v", err)
				}
				all = records
			}
			for _, path := range args {
				records, err := api.Parse(path, api.ParseOptions{Format: format, Normalize: normalize})
				if err != nil {
					return fail("parsing %s: %v", path, err)
				}
				all = append(all, records...)
			}

			filtered := make([]record.Record, 0, len(all))
			for _, r := range all {
				if minLevel != record.Unknown && r.Level < minLevel {
					continue
				}
				if grepRE != nil && !grepRE.MatchString(r.Message) {
					continue
				}
				filtered = append(filtered, r)
				if limit > 0 && len(filtered) >= limit {
					break
				}
			}

			return writeRecords(cmd.OutOrStdout(), filtered, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "parser format (auto-detected when omitted)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output mode: table|json|csv|compact")
	cmd.Flags().StringVarP(&levelStr, "level", "l", "", "minimum level: debug|info|warning|error|critical")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of records to emit (0 = unlimited)")
	cmd.Flags().StringVarP(&grep, "grep", "g", "", "only emit records whose message matches this pattern")
	cmd.Flags().BoolVar(&normalize, "normalize", true, "apply the default normalization pipeline (--normalize=false to disable)")
	return cmd
}

// parseStdin reads and parses stdin, peeking a sample to auto-detect
// format when none was given explicitly.
func parseStdin(format string, normalize bool) ([]record.Record, error) {
	peek := source.NewPeekStdin(os.Stdin)
	if format == "" {
		sample, err := peek.Peek()
		if err != nil {
			return nil, err
		}
		name, _ := api.DefaultDetector.Detect(sample)
		format = name
	}
	p, ok := api.DefaultRegistry.GetParser(format)
	if !ok {
		p, ok = api.DefaultRegistry.Generic()
		if !ok {
			return nil, errs.NewConfigurationError("unknown format: " + format)
		}
	}

	var lines []string
	for {
		line, ok, err := peek.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}

	records := make([]record.Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := p.ParseLine(line)
		if r.FormatDetected == "" {
			r.FormatDetected = format
		}
		r.Source.Hostname = "stdin"
		records = append(records, r)
	}

	if normalize {
		out, err := api.DefaultPipeline().Process(records)
		if err != nil {
			return nil, err
		}
		records = out
	}
	return records, nil
}
