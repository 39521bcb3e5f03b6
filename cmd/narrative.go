package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
	"github.com/GorkemTikic/balance-log-sub000/renderer"
	"github.com/google/subcommands"
)

type narrativeCmd struct{}

func (*narrativeCmd) Name() string     { return "narrative" }
func (*narrativeCmd) Synopsis() string { return "full human-readable report of the log" }
func (*narrativeCmd) Usage() string {
	return `blg narrative [<file>|-]

  Composes the ordered narrative: one section per transaction kind with
  activity, the reconstructed conversions, the overall effect, and the
  final balances. Suitable for direct copy-paste.
`
}

func (*narrativeCmd) SetFlags(*flag.FlagSet) {}

func (c *narrativeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text, err := readLog(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res := balancelog.ParseLog(text)
	printDiagnostics(res.Diagnostics)

	var b strings.Builder
	renderer.Narrative(&b, balancelog.NewNarrative(res.Rows))
	fmt.Print(b.String())
	return subcommands.ExitSuccess
}
