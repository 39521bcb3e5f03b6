package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
	"github.com/GorkemTikic/balance-log-sub000/renderer"
	"github.com/google/subcommands"
)

type symbolsCmd struct{}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "futures activity summed per trading pair" }
func (*symbolsCmd) Usage() string {
	return `blg symbols [<file>|-]

  Groups the log by trading symbol and sums realized P&L, funding,
  commission and insurance per pair. Pairs with no actual trading
  activity are omitted.
`
}

func (*symbolsCmd) SetFlags(*flag.FlagSet) {}

func (c *symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text, err := readLog(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res := balancelog.ParseLog(text)
	printDiagnostics(res.Diagnostics)

	symbols := balancelog.BySymbolSummary(res.Rows)
	if len(symbols) == 0 {
		fmt.Println("no symbol activity in this log")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SymbolsMarkdown(symbols))
	return subcommands.ExitSuccess
}
