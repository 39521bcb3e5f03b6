package balancelog

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// AuditSpec describes a baseline roll-forward request: the anchor instant
// the baseline balances were taken at, an optional single transfer applied
// at that moment, and an optional end of the window.
type AuditSpec struct {
	Anchor   Timestamp
	End      Timestamp // zero means open-ended
	Baseline map[string]Amount
	Transfer *AssetAmountSigned
}

// AssetAmountSigned is a signed amount of one asset, used for the anchor
// transfer: positive models a deposit, negative a withdrawal.
type AssetAmountSigned struct {
	Asset  string
	Amount Amount
}

// Audit is the structured result of a baseline roll-forward. Rendering it
// to text is the renderer package's job.
type Audit struct {
	Anchor   Timestamp
	End      Timestamp
	Start    map[string]Amount // baseline after the anchor transfer
	Deltas   TotalsMap         // per-asset activity inside the window
	Final    map[string]Amount // Start + Deltas.Net, per asset
	Transfer *AssetAmountSigned
	RowCount int // rows that fell inside the window
}

// NewAudit rolls a baseline forward over all rows inside [anchor, end].
// A missing anchor is the one precondition: the returned error carries an
// explanatory message the caller shows in place of the audit body.
func NewAudit(rows []Row, spec AuditSpec) (*Audit, error) {
	if !spec.Anchor.Valid() {
		return nil, fmt.Errorf("audit needs an anchor time: the instant the baseline balances were taken, like 2024-05-01 08:00:00")
	}

	start := map[string]Amount{}
	for asset, amount := range spec.Baseline {
		start[strings.ToUpper(strings.TrimSpace(asset))] = amount
	}
	if spec.Transfer != nil {
		asset := strings.ToUpper(strings.TrimSpace(spec.Transfer.Asset))
		start[asset] = start[asset].Add(spec.Transfer.Amount)
	}

	a := &Audit{
		Anchor:   spec.Anchor,
		End:      spec.End,
		Start:    start,
		Deltas:   TotalsMap{},
		Final:    map[string]Amount{},
		Transfer: spec.Transfer,
	}
	for _, r := range rows {
		if r.Time.UnixMilli() < spec.Anchor.UnixMilli() {
			continue
		}
		if spec.End.Valid() && r.Time.UnixMilli() > spec.End.UnixMilli() {
			continue
		}
		a.Deltas.Add(r.Asset, r.Amount)
		a.RowCount++
	}

	for asset, amount := range start {
		a.Final[asset] = amount
	}
	for asset, t := range a.Deltas {
		a.Final[asset] = a.Final[asset].Add(t.Net)
	}
	return a, nil
}

// Assets returns every asset present in either the baseline or the deltas,
// sorted.
func (a *Audit) Assets() []string {
	return slices.Sorted(maps.Keys(a.Final))
}

// ParseBaseline reads user-supplied per-asset balances, one per line, as
// "ASSET amount" (colon and equals separators are tolerated, and the
// amount accepts the full tolerant grammar of ParseAmount). It is a
// boundary input, so malformed lines are reported as an error for the
// calling layer to display.
func ParseBaseline(text string) (map[string]Amount, error) {
	out := map[string]Amount{}
	for _, line := range splitLines(text) {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ':' || r == '='
		})
		fields = trimAll(fields)
		if len(fields) != 2 {
			return nil, fmt.Errorf("baseline line %q: want \"ASSET amount\"", excerpt(line))
		}
		asset, cell := fields[0], fields[1]
		// "12.5 USDT" order is accepted too.
		if _, err := ParseAmount(asset); err == nil {
			asset, cell = cell, asset
		}
		amount, err := ParseAmount(cell)
		if err != nil {
			return nil, fmt.Errorf("baseline line %q: %w", excerpt(line), err)
		}
		out[strings.ToUpper(asset)] = out[strings.ToUpper(asset)].Add(amount)
	}
	return out, nil
}

// ParseTransfer reads the anchor transfer notation "ASSET:amount", e.g.
// "USDT:-250" for a withdrawal at the anchor instant.
func ParseTransfer(s string) (*AssetAmountSigned, error) {
	asset, cell, found := strings.Cut(s, ":")
	if !found {
		return nil, fmt.Errorf("transfer %q: want \"ASSET:amount\"", s)
	}
	amount, err := ParseAmount(cell)
	if err != nil {
		return nil, fmt.Errorf("transfer %q: %w", s, err)
	}
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		return nil, fmt.Errorf("transfer %q: missing asset", s)
	}
	return &AssetAmountSigned{Asset: asset, Amount: amount}, nil
}
