package balancelog

import "strings"

// ColumnMapping resolves semantic fields to physical column positions.
// A value of -1 means the field has no column.
type ColumnMapping struct {
	ID     int
	UID    int
	Asset  int
	Type   int
	Amount int
	Time   int
	Symbol int
	Extra  int
}

// Schema is the result of inspecting the first lines of a paste: the field
// delimiter, whether the first line is a header, and where each semantic
// field lives.
type Schema struct {
	Delimiter rune
	HasHeader bool
	Columns   ColumnMapping
}

// sampleLines caps how many leading non-empty lines the detector inspects.
const sampleLines = 40

// fixedMapping is the known common export layout, used both as the forced
// positional mapping and as the fallback when scoring is inconclusive:
// id, uid, asset, type, amount, time, symbol, extra.
var fixedMapping = ColumnMapping{ID: 0, UID: 1, Asset: 2, Type: 3, Amount: 4, Time: 5, Symbol: 6, Extra: 7}

// DetectDelimiter scores tab, comma, semicolon and pipe over the first
// sample lines and returns the most frequent. Ties and all-zero scores
// resolve to tab, the typical spreadsheet-paste delimiter.
func DetectDelimiter(lines []string) rune {
	candidates := []rune{'\t', ',', ';', '|'}
	scores := make(map[rune]int, len(candidates))
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, c := range candidates {
			scores[c] += strings.Count(line, string(c))
		}
		if n++; n >= sampleLines {
			break
		}
	}
	best := '\t'
	for _, c := range candidates {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return best
}

// headerSynonyms maps normalized header-cell names to column-mapping
// setters. Normalization lowers the case and drops spaces and underscores.
var headerSynonyms = map[string]func(*ColumnMapping, int){
	"id": func(m *ColumnMapping, i int) { m.ID = i }, "tranid": func(m *ColumnMapping, i int) { m.ID = i },
	"txid": func(m *ColumnMapping, i int) { m.ID = i },
	"uid":  func(m *ColumnMapping, i int) { m.UID = i }, "userid": func(m *ColumnMapping, i int) { m.UID = i },
	"account": func(m *ColumnMapping, i int) { m.UID = i },
	"asset":   func(m *ColumnMapping, i int) { m.Asset = i }, "coin": func(m *ColumnMapping, i int) { m.Asset = i },
	"currency": func(m *ColumnMapping, i int) { m.Asset = i }, "token": func(m *ColumnMapping, i int) { m.Asset = i },
	"type": func(m *ColumnMapping, i int) { m.Type = i }, "incometype": func(m *ColumnMapping, i int) { m.Type = i },
	"transactiontype": func(m *ColumnMapping, i int) { m.Type = i },
	"amount":          func(m *ColumnMapping, i int) { m.Amount = i }, "change": func(m *ColumnMapping, i int) { m.Amount = i },
	"value": func(m *ColumnMapping, i int) { m.Amount = i }, "qty": func(m *ColumnMapping, i int) { m.Amount = i },
	"quantity": func(m *ColumnMapping, i int) { m.Amount = i },
	"time":     func(m *ColumnMapping, i int) { m.Time = i }, "timestamp": func(m *ColumnMapping, i int) { m.Time = i },
	"date": func(m *ColumnMapping, i int) { m.Time = i }, "datetime": func(m *ColumnMapping, i int) { m.Time = i },
	"symbol": func(m *ColumnMapping, i int) { m.Symbol = i }, "pair": func(m *ColumnMapping, i int) { m.Symbol = i },
	"market": func(m *ColumnMapping, i int) { m.Symbol = i },
	"extra":  func(m *ColumnMapping, i int) { m.Extra = i }, "info": func(m *ColumnMapping, i int) { m.Extra = i },
	"remark": func(m *ColumnMapping, i int) { m.Extra = i }, "remarks": func(m *ColumnMapping, i int) { m.Extra = i },
	"note": func(m *ColumnMapping, i int) { m.Extra = i },
}

func normalizeHeaderCell(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.ReplaceAll(cell, " ", "")
	return strings.ReplaceAll(cell, "_", "")
}

// looksLikeHeader reports whether any cell of the first line matches a
// known field-name synonym.
func looksLikeHeader(cells []string) bool {
	for _, cell := range cells {
		if _, ok := headerSynonyms[normalizeHeaderCell(cell)]; ok {
			return true
		}
	}
	return false
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{ID: -1, UID: -1, Asset: -1, Type: -1, Amount: -1, Time: -1, Symbol: -1, Extra: -1}
}

// DetectSchema infers the delimiter, header presence and column mapping
// from the leading lines of a paste. It is a pure function over its sample
// so it can be tested independently of line-by-line parsing.
func DetectSchema(lines []string) Schema {
	s := Schema{Delimiter: '\t', Columns: fixedMapping}
	if len(lines) == 0 {
		return s
	}
	s.Delimiter = DetectDelimiter(lines)

	first := splitFields(lines[0], s.Delimiter)
	if looksLikeHeader(first) {
		s.HasHeader = true
		m := emptyMapping()
		for i, cell := range first {
			if set, ok := headerSynonyms[normalizeHeaderCell(cell)]; ok {
				set(&m, i)
			}
		}
		s.Columns = m
		if m.Time < 0 || m.Amount < 0 {
			// Header named some fields but not the essential ones; let the
			// data rows fill the gaps.
			if scored, ok := scoreDataLines(lines[1:], s.Delimiter); ok {
				if m.Time < 0 {
					m.Time = scored.Time
				}
				if m.Amount < 0 {
					m.Amount = scored.Amount
				}
				s.Columns = m
			}
		}
		return s
	}

	sample := make([][]string, 0, sampleLines)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, splitFields(line, s.Delimiter))
		if len(sample) >= sampleLines {
			break
		}
	}

	// The known 7+-column export layout takes precedence over scoring:
	// summing an identifier column because it happens to look numeric is
	// the one mistake the detector must not make.
	if probeFixedLayout(sample) {
		s.Columns = fixedMapping
		return s
	}

	if m, ok := scoreColumns(sample); ok {
		s.Columns = m
		return s
	}
	s.Columns = fixedMapping
	return s
}

// scoreDataLines runs content scoring over raw data lines.
func scoreDataLines(lines []string, delim rune) (ColumnMapping, bool) {
	sample := make([][]string, 0, sampleLines)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, splitFields(line, delim))
		if len(sample) >= sampleLines {
			break
		}
	}
	return scoreColumns(sample)
}

// probeFixedLayout checks the exact positional signature of the common
// export: time-like in column 5, a type keyword in column 3, an asset-like
// cell in column 2 and a numeric amount in column 4, on a majority of the
// sampled rows.
func probeFixedLayout(sample [][]string) bool {
	n := NewNormalizer()
	hits, total := 0, 0
	for _, cells := range sample {
		if len(cells) < 7 {
			continue
		}
		total++
		_, timeOK := NormalizeTime(strings.TrimSpace(cells[5]))
		_, typeOK := n.match(cells[3])
		_, amountErr := ParseAmount(cells[4])
		if timeOK && typeOK && amountErr == nil && looksLikeAsset(cells[2]) {
			hits++
		}
	}
	return total > 0 && hits*2 > total
}

func looksLikeAsset(cell string) bool {
	cell = strings.ToUpper(strings.TrimSpace(cell))
	if IsKnownAsset(cell) {
		return true
	}
	if len(cell) < 2 || len(cell) > 10 {
		return false
	}
	for _, r := range cell {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// scoreColumns accumulates per-column points for looking like each field
// over the sample and keeps the best column per field. It reports ok=false
// when the evidence is too thin (no time or no amount column found).
func scoreColumns(sample [][]string) (ColumnMapping, bool) {
	type fieldScores map[int]int // column index -> points
	timeS, amountS, typeS, assetS, symbolS := fieldScores{}, fieldScores{}, fieldScores{}, fieldScores{}, fieldScores{}
	n := NewNormalizer()

	for _, cells := range sample {
		for i, raw := range cells {
			cell := strings.TrimSpace(raw)
			if cell == "" {
				continue
			}
			if _, ok := NormalizeTime(cell); ok {
				timeS[i] += 3
			}
			if _, err := ParseAmount(cell); err == nil {
				// A bare integer could as well be an identifier; decimal
				// points and signs are what make an amount column.
				if strings.ContainsAny(cell, ".-+(") {
					amountS[i] += 2
				} else {
					amountS[i]++
				}
			}
			if _, ok := n.match(cell); ok {
				typeS[i] += 2
			}
			if IsKnownAsset(cell) {
				assetS[i] += 2
			}
			if IsSymbol(cell) {
				symbolS[i] += 2
			}
		}
	}

	best := func(s fieldScores, taken map[int]bool) (int, bool) {
		col, max := -1, 0
		for i, pts := range s {
			if taken[i] {
				continue
			}
			if pts > max || (pts == max && col >= 0 && i < col) {
				col, max = i, pts
			}
		}
		return col, col >= 0
	}

	taken := map[int]bool{}
	m := emptyMapping()
	// Resolve in confidence order; each field consumes its column.
	if col, ok := best(timeS, taken); ok {
		m.Time = col
		taken[col] = true
	}
	if col, ok := best(typeS, taken); ok {
		m.Type = col
		taken[col] = true
	}
	if col, ok := best(symbolS, taken); ok {
		m.Symbol = col
		taken[col] = true
	}
	if col, ok := best(assetS, taken); ok {
		m.Asset = col
		taken[col] = true
	}
	if col, ok := best(amountS, taken); ok {
		m.Amount = col
		taken[col] = true
	}
	if m.Time < 0 || m.Amount < 0 {
		return m, false
	}
	return m, true
}

// splitFields splits one logical line on the delimiter, honoring CSV-style
// double quotes so quoted cells may embed the delimiter itself.
func splitFields(line string, delim rune) []string {
	var fields []string
	var cell strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"') // escaped quote
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delim && !inQuotes:
			fields = append(fields, cell.String())
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	fields = append(fields, cell.String())
	return fields
}
