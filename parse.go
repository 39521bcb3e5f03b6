package balancelog

import (
	"fmt"
	"strings"
)

// minColumns is the minimum usable column count for one data line. Exports
// with fewer cells cannot carry id, asset, type, amount and time at once.
const minColumns = 6

// excerptLen caps the slice of the offending line quoted in a diagnostic.
const excerptLen = 48

// ParseResult is the outcome of one parse run: the rows that survived, in
// input order, one diagnostic per rejected line, and the schema the
// detector settled on.
type ParseResult struct {
	Rows        []Row    `json:"rows"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Schema      Schema   `json:"-"`
}

// ParseLog parses a pasted balance-log text blob. It never fails: unusable
// lines become diagnostics and an empty result carries actionable tips
// instead of rows.
func ParseLog(text string) *ParseResult {
	res := &ParseResult{}

	lines := splitLines(text)
	if len(lines) == 0 {
		res.Diagnostics = append(res.Diagnostics, emptyTips()...)
		return res
	}

	res.Schema = DetectSchema(lines)
	norm := NewNormalizer()

	data := lines
	if res.Schema.HasHeader {
		data = lines[1:]
	}
	for _, line := range data {
		row, reason := parseRow(line, res.Schema, norm)
		if reason != "" {
			res.Diagnostics = append(res.Diagnostics, reason)
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	if len(res.Rows) == 0 {
		res.Diagnostics = append(res.Diagnostics, emptyTips()...)
	}
	return res
}

// parseRow turns one non-empty line into a Row, or a non-empty skip reason.
func parseRow(line string, schema Schema, norm *Normalizer) (Row, string) {
	cells := splitFields(line, schema.Delimiter)
	if len(cells) < minColumns {
		return Row{}, fmt.Sprintf("skipped (too few columns, %d < %d): %q", len(cells), minColumns, excerpt(line))
	}

	ts, ok := NormalizeTime(strings.TrimSpace(cell(cells, schema.Columns.Time)))
	if !ok {
		// The time column may be misresolved; a date anywhere on the line
		// still makes the row usable.
		ts, ok = FindTime(line)
	}
	if !ok {
		return Row{}, fmt.Sprintf("skipped (no time): %q", excerpt(line))
	}

	amount, err := ParseAmount(cell(cells, schema.Columns.Amount))
	if err != nil {
		return Row{}, fmt.Sprintf("skipped (amount not numeric): %q", excerpt(line))
	}

	symbol := strings.ToUpper(strings.TrimSpace(cell(cells, schema.Columns.Symbol)))
	if !IsSymbol(symbol) {
		symbol = ""
	}

	extra := strings.TrimSpace(cell(cells, schema.Columns.Extra))
	if schema.Columns.Extra >= 0 && schema.Columns.Extra < len(cells)-1 {
		// Residual trailing columns all belong to extra.
		rest := append([]string{extra}, trimAll(cells[schema.Columns.Extra+1:])...)
		extra = strings.TrimSpace(strings.Join(rest, " "))
	}

	rawType := strings.TrimSpace(cell(cells, schema.Columns.Type))
	return Row{
		ID:     strings.TrimSpace(cell(cells, schema.Columns.ID)),
		UID:    strings.TrimSpace(cell(cells, schema.Columns.UID)),
		Asset:  strings.ToUpper(strings.TrimSpace(cell(cells, schema.Columns.Asset))),
		Type:   norm.Normalize(rawType, extra),
		Amount: amount,
		Time:   ts,
		Symbol: symbol,
		Extra:  extra,
		Raw:    line,
	}, ""
}

// splitLines normalizes odd whitespace and returns the non-empty lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, odd := range []string{" ", " ", " "} {
		text = strings.ReplaceAll(text, odd, " ")
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

func trimAll(cells []string) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		if t := strings.TrimSpace(c); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func excerpt(line string) string {
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if len(runes) <= excerptLen {
		return line
	}
	return string(runes[:excerptLen]) + "…"
}

func emptyTips() []string {
	return []string{
		"no rows parsed",
		"tip: paste the balance log with one entry per line, using a single delimiter (tab, comma, semicolon or pipe)",
		"tip: every line needs a date like 2024-05-01 8:15:00, a type label, an asset and a numeric amount",
	}
}
