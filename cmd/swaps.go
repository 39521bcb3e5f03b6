package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
	"github.com/google/subcommands"
)

type swapsCmd struct{}

func (*swapsCmd) Name() string     { return "swaps" }
func (*swapsCmd) Synopsis() string { return "pair coin-swap and auto-exchange legs into conversions" }
func (*swapsCmd) Usage() string {
	return `blg swaps [<file>|-]

  Re-pairs the independent withdraw/deposit legs of coin swaps and
  auto-exchanges into one line per atomic conversion, sorted by time.
`
}

func (*swapsCmd) SetFlags(*flag.FlagSet) {}

func (c *swapsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text, err := readLog(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res := balancelog.ParseLog(text)
	printDiagnostics(res.Diagnostics)

	swaps := balancelog.GroupSwaps(res.Rows, balancelog.KindCoinSwapDeposit)
	auto := balancelog.GroupSwaps(res.Rows, balancelog.KindAutoExchange)
	if len(swaps)+len(auto) == 0 {
		fmt.Println("no coin swaps or auto-exchanges in this log")
		return subcommands.ExitSuccess
	}
	for _, g := range swaps {
		fmt.Printf("coin swap      %s\n", g)
	}
	for _, g := range auto {
		fmt.Printf("auto-exchange  %s\n", g)
	}
	return subcommands.ExitSuccess
}
