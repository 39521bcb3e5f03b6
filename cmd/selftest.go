package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
	"github.com/google/subcommands"
)

type selftestCmd struct{}

func (*selftestCmd) Name() string     { return "selftest" }
func (*selftestCmd) Synopsis() string { return "run the built-in end-to-end check" }
func (*selftestCmd) Usage() string {
	return `blg selftest

  Parses the embedded fixture log through the whole pipeline and verifies
  the expected rows, pairings and totals come out.
`
}

func (*selftestCmd) SetFlags(*flag.FlagSet) {}

func (c *selftestCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := balancelog.SelfTest(); err != nil {
		fmt.Fprintf(os.Stderr, "selftest failed: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("selftest ok")
	return subcommands.ExitSuccess
}
