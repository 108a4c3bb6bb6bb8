// Command loglens is a thin cobra front end over internal/api: it wires
// the detect/parse/stream/correlate contracts to subcommands and performs
// no parsing or correlation logic of its own.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var rendered *cliError
		if !errors.As(err, &rendered) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
