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

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "per-asset and per-kind totals of the log" }
func (*summaryCmd) Usage() string {
	return `blg summary [<file>|-]

  Sums the parsed rows per asset, then per canonical transaction kind.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	text, err := readLog(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res := balancelog.ParseLog(text)
	printDiagnostics(res.Diagnostics)

	kinds := balancelog.SumByKind(res.Rows)
	parts := []string{renderer.TotalsMarkdown("Totals by Asset", balancelog.SumByAsset(res.Rows))}
	for _, section := range kinds.Sections() {
		parts = append(parts, renderer.TotalsMarkdown(section.Title, section.Totals))
	}
	for _, label := range kinds.OtherLabels() {
		parts = append(parts, renderer.TotalsMarkdown("Other: "+label, kinds.Other[label]))
	}
	printMarkdown(joinNonEmpty(parts...))
	return subcommands.ExitSuccess
}
