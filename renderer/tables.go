package renderer

import (
	"bytes"
	"fmt"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
	md "github.com/nao1215/markdown"
)

// TotalsMarkdown renders one totals map as a markdown table, or "" when
// the map holds nothing.
func TotalsMarkdown(title string, m balancelog.TotalsMap) string {
	if len(m) == 0 {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(title)
	table := md.TableSet{
		Header: []string{"Asset", "Credits", "Debits", "Net"},
	}
	for _, asset := range m.Assets() {
		t := m[asset]
		table.Rows = append(table.Rows, []string{
			asset, t.Pos.String(), t.Neg.String(), t.Net.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// SymbolsMarkdown renders the per-symbol futures summary as a markdown
// table, one row per trading pair.
func SymbolsMarkdown(symbols []balancelog.SymbolSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Per-Symbol Summary")
	table := md.TableSet{
		Header: []string{"Symbol", "Realized P&L", "Funding", "Commission", "Insurance"},
	}
	for _, s := range symbols {
		table.Rows = append(table.Rows, []string{
			s.Symbol,
			s.Realized.Net.SignedString(),
			s.Funding.Net.SignedString(),
			s.Commission.Net.SignedString(),
			s.Insurance.Net.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// RowsMarkdown renders parsed rows and, below them, the diagnostics of the
// run.
func RowsMarkdown(res *balancelog.ParseResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("Parsed Rows (%d)", len(res.Rows)))
	table := md.TableSet{
		Header: []string{"Time", "Type", "Asset", "Amount", "Symbol"},
	}
	for _, r := range res.Rows {
		table.Rows = append(table.Rows, []string{
			r.Time.Text(), r.Type, r.Asset, r.Amount.String(), r.Symbol,
		})
	}
	doc.Table(table)

	if len(res.Diagnostics) > 0 {
		doc.H2(fmt.Sprintf("Diagnostics (%d)", len(res.Diagnostics)))
		doc.BulletList(res.Diagnostics...)
	}

	return doc.String()
}
