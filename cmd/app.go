// Package cmd implements the CLI application around the balancelog engine.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// Commands lists the subcommands in registration order. A main package
// ranges over it and calls Register.
var Commands = []subcommands.Command{
	&parseCmd{},
	&summaryCmd{},
	&symbolsCmd{},
	&swapsCmd{},
	&narrativeCmd{},
	&auditCmd{},
	&selftestCmd{},
	&topicCmd{},
}

// readLog reads the pasted log from the first positional argument, or from
// stdin when the argument is missing or "-".
func readLog(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("cannot read log file: %w", err)
	}
	return string(data), nil
}

// printDiagnostics writes the per-line skip reasons to stderr so they
// never mix with the report on stdout.
func printDiagnostics(diags []string) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d)
	}
}

// joinNonEmpty concatenates markdown fragments with blank lines between.
func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
