package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/applog"
	"github.com/loglens/loglens/internal/correlate"
	"github.com/loglens/loglens/internal/source"
)

// version is reported by --version at the root command.
const version = "0.1.0"

var quiet bool

// diag is the CLI's console diagnostic channel. The orphan/session
// overflow warnings (internal/correlate) and the symlink warning
// (internal/source) are wired to it, so they reach stderr as colorized
// console log lines that --quiet suppresses.
var diag = applog.NewConsole(os.Stderr)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loglens",
		Short:         "Parse, detect, and correlate heterogeneous log streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				diag.SetLevel(applog.Off)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential diagnostics")

	correlate.DiagWarn = func(msg string) { diag.Warnf("%s", msg) }
	source.DiagWarn = func(msg string) { diag.Warnf("%s", msg) }

	root.AddCommand(newParseCmd())
	root.AddCommand(newCorrelateCmd())
	root.AddCommand(newStreamCmd())
	root.AddCommand(newDetectCmd())
	root.AddCommand(newFormatsCmd())
	return root
}

// cliError marks an error already rendered to the diagnostic channel, so
// main does not print it a second time.
type cliError struct{ msg string }

func (e *cliError) Error() string { return e.msg }

// fail prints a single red diagnostic line to stderr and returns the exit
// code 1 user-error contract documented for the CLI.
func fail(format string, args ...any) error {
	if !quiet {
		color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
	}
	return &cliError{msg: fmt.Sprintf(format, args...)}
}
