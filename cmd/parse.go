package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
	"github.com/GorkemTikic/balance-log-sub000/renderer"
	"github.com/google/subcommands"
)

type parseCmd struct {
	plain bool
	json  bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse a pasted balance log into rows and diagnostics" }
func (*parseCmd) Usage() string {
	return `blg parse [-plain|-json] [<file>|-]

  Parses the balance log and prints the rows it understood, followed by
  one diagnostic per line it had to skip.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown without terminal rendering")
	f.BoolVar(&c.json, "json", false, "print rows and diagnostics as JSON")
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text, err := readLog(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res := balancelog.ParseLog(text)
	if c.json {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}

	doc := renderer.RowsMarkdown(res)
	if c.plain {
		fmt.Print(doc)
	} else {
		printMarkdown(doc)
	}
	return subcommands.ExitSuccess
}
