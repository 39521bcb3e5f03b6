// Package renderer turns the structured reports of the balancelog engine
// into plain text and markdown. It never recomputes: every number it
// prints comes from a report struct, so one computation can feed several
// output formats.
package renderer

import (
	"fmt"
	"io"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
)

// Narrative writes the full human-readable report: one section per
// canonical kind with activity, the reconstructed conversions, the
// open-ended buckets, and the overall effect with final balances. Dust
// suppression applies to the final-balances display only; the underlying
// numbers are printed nowhere rounded and never altered.
func Narrative(w io.Writer, n *balancelog.Narrative) {
	for _, section := range n.Sections {
		writeTotalsSection(w, section.Title, section.Totals)
	}

	writeSwapSection(w, "Coin Swaps", n.Swaps)
	writeSwapSection(w, "Auto-Exchanges", n.AutoExchanges)

	for _, label := range n.OtherLabels() {
		writeTotalsSection(w, "Other: "+label, n.Other[label])
	}

	if len(n.Overall) > 0 {
		fmt.Fprintln(w, "Overall Effect")
		for _, asset := range n.Overall.Assets() {
			t := n.Overall[asset]
			fmt.Fprintf(w, "  %s: +%s / -%s, net %s\n", asset, t.Pos, t.Neg, t.Net.SignedString())
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "Final Balances (net of this log)")
		for _, asset := range n.Overall.Assets() {
			final := n.Final[asset]
			if hiddenAsDust(asset, final) {
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", asset, final.Display(asset))
		}
	}
}

func writeTotalsSection(w io.Writer, title string, m balancelog.TotalsMap) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, asset := range m.Assets() {
		t := m[asset]
		fmt.Fprintf(w, "  %s: +%s / -%s, net %s\n", asset, t.Pos, t.Neg, t.Net.SignedString())
	}
	fmt.Fprintln(w)
}

func writeSwapSection(w io.Writer, title string, groups []balancelog.SwapGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, g := range groups {
		fmt.Fprintf(w, "  %s\n", g)
	}
	fmt.Fprintln(w)
}
