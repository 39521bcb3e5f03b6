package renderer

import (
	"fmt"
	"io"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
)

// Audit writes the baseline roll-forward report.
func Audit(w io.Writer, a *balancelog.Audit) {
	window := "open end"
	if a.End.Valid() {
		window = a.End.Text()
	}
	fmt.Fprintf(w, "Audit from %s to %s (%d rows in window)\n\n", a.Anchor, window, a.RowCount)

	if a.Transfer != nil {
		verb := "deposit"
		if a.Transfer.Amount.IsNegative() {
			verb = "withdrawal"
		}
		fmt.Fprintf(w, "Anchor transfer: %s %s %s\n\n", a.Transfer.Amount.SignedString(), a.Transfer.Asset, verb)
	}

	fmt.Fprintln(w, "Asset      Baseline          Change            Final")
	for _, asset := range a.Assets() {
		start := a.Start[asset]
		var change balancelog.Amount
		if t, ok := a.Deltas[asset]; ok {
			change = t.Net
		}
		final := a.Final[asset]
		if hiddenAsDust(asset, final) && start.IsZero() {
			continue
		}
		fmt.Fprintf(w, "%-10s %-17s %-17s %s\n", asset, start, change.SignedString(), final)
	}
}
