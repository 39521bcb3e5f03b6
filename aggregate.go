package balancelog

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// Totals accumulates the credits, debits and net of one asset.
// Pos is the sum of non-negative amounts, Neg the sum of absolute values of
// negative amounts, so Net == Pos - Neg holds exactly.
type Totals struct {
	Pos Amount
	Neg Amount
	Net Amount
}

func (t *Totals) add(a Amount) {
	if a.IsNegative() {
		t.Neg = t.Neg.Add(a.Abs())
	} else {
		t.Pos = t.Pos.Add(a)
	}
	t.Net = t.Net.Add(a)
}

// IsZero reports whether nothing was accumulated, credits and debits alike.
func (t *Totals) IsZero() bool { return t.Pos.IsZero() && t.Neg.IsZero() }

// magnitude is the combined activity size, credits plus debits.
func (t *Totals) magnitude() Amount { return t.Pos.Add(t.Neg) }

// TotalsMap sums amounts per asset. Built fresh per aggregation call and
// read-only after return.
type TotalsMap map[string]*Totals

// Add accumulates one amount for one asset.
func (m TotalsMap) Add(asset string, a Amount) {
	t, ok := m[asset]
	if !ok {
		t = &Totals{}
		m[asset] = t
	}
	t.add(a)
}

// Assets returns the asset keys in lexicographic order.
func (m TotalsMap) Assets() []string {
	return slices.Sorted(maps.Keys(m))
}

// SumByAsset sums all rows into per-asset totals in a single pass. The sum
// is commutative, so the result does not depend on input row order.
func SumByAsset(rows []Row) TotalsMap {
	m := TotalsMap{}
	for _, r := range rows {
		m.Add(r.Asset, r.Amount)
	}
	return m
}

// KindTotals partitions rows into one TotalsMap per canonical kind. A row
// contributes to exactly one bucket. Unrecognized labels land in Other,
// keyed by the literal label, except for unknown event-prefixed labels,
// which belong to the separate event product family and are left out.
type KindTotals struct {
	Realized     TotalsMap
	Commission   TotalsMap
	Funding      TotalsMap
	Insurance    TotalsMap
	Referral     TotalsMap
	Transfer     TotalsMap
	Strategy     TotalsMap
	SwapDeposit  TotalsMap
	SwapWithdraw TotalsMap
	AutoExchange TotalsMap
	EventOrder   TotalsMap
	EventPayout  TotalsMap
	Other        map[string]TotalsMap
}

// SumByKind partitions rows into the fixed kind buckets.
func SumByKind(rows []Row) *KindTotals {
	k := &KindTotals{
		Realized: TotalsMap{}, Commission: TotalsMap{}, Funding: TotalsMap{},
		Insurance: TotalsMap{}, Referral: TotalsMap{}, Transfer: TotalsMap{},
		Strategy: TotalsMap{}, SwapDeposit: TotalsMap{}, SwapWithdraw: TotalsMap{},
		AutoExchange: TotalsMap{}, EventOrder: TotalsMap{}, EventPayout: TotalsMap{},
		Other: map[string]TotalsMap{},
	}
	for _, r := range rows {
		switch r.Kind() {
		case KindRealizedPNL:
			k.Realized.Add(r.Asset, r.Amount)
		case KindCommission:
			k.Commission.Add(r.Asset, r.Amount)
		case KindFundingFee:
			k.Funding.Add(r.Asset, r.Amount)
		case KindInsuranceClear:
			k.Insurance.Add(r.Asset, r.Amount)
		case KindReferralKickback:
			k.Referral.Add(r.Asset, r.Amount)
		case KindTransfer:
			k.Transfer.Add(r.Asset, r.Amount)
		case KindStrategyTransfer:
			k.Strategy.Add(r.Asset, r.Amount)
		case KindCoinSwapDeposit:
			k.SwapDeposit.Add(r.Asset, r.Amount)
		case KindCoinSwapWithdraw:
			k.SwapWithdraw.Add(r.Asset, r.Amount)
		case KindAutoExchange:
			k.AutoExchange.Add(r.Asset, r.Amount)
		case KindEventOrder:
			k.EventOrder.Add(r.Asset, r.Amount)
		case KindEventPayout:
			k.EventPayout.Add(r.Asset, r.Amount)
		default:
			if r.IsEvent() {
				continue
			}
			m, ok := k.Other[r.Type]
			if !ok {
				m = TotalsMap{}
				k.Other[r.Type] = m
			}
			m.Add(r.Asset, r.Amount)
		}
	}
	return k
}

// SymbolSummary is the futures activity of one trading pair.
type SymbolSummary struct {
	Symbol     string
	Realized   Totals
	Funding    Totals
	Commission Totals
	Insurance  Totals
}

// BySymbolSummary groups non-event rows by symbol and sums realized P&L,
// funding, commission and insurance per pair. A symbol whose only activity
// is insurance is excluded: with no realized, funding or commission
// movement there was no actual trading on it. Output is sorted by symbol.
func BySymbolSummary(rows []Row) []SymbolSummary {
	bySymbol := map[string]*SymbolSummary{}
	for _, r := range rows {
		if r.Symbol == "" || r.IsEvent() {
			continue
		}
		var pick func(*SymbolSummary) *Totals
		switch r.Kind() {
		case KindRealizedPNL:
			pick = func(s *SymbolSummary) *Totals { return &s.Realized }
		case KindFundingFee:
			pick = func(s *SymbolSummary) *Totals { return &s.Funding }
		case KindCommission:
			pick = func(s *SymbolSummary) *Totals { return &s.Commission }
		case KindInsuranceClear:
			pick = func(s *SymbolSummary) *Totals { return &s.Insurance }
		default:
			continue
		}
		s, ok := bySymbol[r.Symbol]
		if !ok {
			s = &SymbolSummary{Symbol: r.Symbol}
			bySymbol[r.Symbol] = s
		}
		pick(s).add(r.Amount)
	}

	out := make([]SymbolSummary, 0, len(bySymbol))
	for _, s := range bySymbol {
		traded := s.Realized.magnitude().Add(s.Funding.magnitude()).Add(s.Commission.magnitude())
		if traded.IsZero() {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// AssetAmount is one leg of a swap: an asset and its absolute amount.
type AssetAmount struct {
	Asset  string
	Amount Amount
}

// SwapGroup is one atomic conversion reconstructed from the independent
// ledger legs recorded at the same instant with the same extra hint.
type SwapGroup struct {
	Time Timestamp
	Hint string
	Out  []AssetAmount // assets that left, amounts positive
	In   []AssetAmount // assets that arrived
}

// String formats the group as a single human-readable line.
func (g SwapGroup) String() string {
	leg := func(aa []AssetAmount) string {
		parts := make([]string, 0, len(aa))
		for _, l := range aa {
			parts = append(parts, l.Amount.String()+" "+l.Asset)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s  Out: %s → In: %s", g.Time, leg(g.Out), leg(g.In))
}

// GroupSwaps pairs the legs of atomic conversions. With kind
// KindAutoExchange it collects auto-exchange rows; with either coin-swap
// kind it collects both deposit and withdraw legs. Legs are grouped by
// (time, extra hint before '@'), netted per asset, and partitioned into
// out (negative net) and in (positive net). Groups come back sorted by
// timestamp, one per conversion.
func GroupSwaps(rows []Row, kind Kind) []SwapGroup {
	include := func(r Row) bool {
		if kind == KindAutoExchange {
			return r.Kind() == KindAutoExchange
		}
		return r.Kind() == KindCoinSwapDeposit || r.Kind() == KindCoinSwapWithdraw
	}

	type key struct {
		text string
		hint string
	}
	nets := map[key]TotalsMap{}
	times := map[key]Timestamp{}
	for _, r := range rows {
		if !include(r) {
			continue
		}
		k := key{text: r.Time.Text(), hint: r.swapHint()}
		m, ok := nets[k]
		if !ok {
			m = TotalsMap{}
			nets[k] = m
			times[k] = r.Time
		}
		m.Add(r.Asset, r.Amount)
	}

	groups := make([]SwapGroup, 0, len(nets))
	for k, m := range nets {
		g := SwapGroup{Time: times[k], Hint: k.hint}
		for _, asset := range m.Assets() {
			net := m[asset].Net
			switch {
			case net.IsNegative():
				g.Out = append(g.Out, AssetAmount{Asset: asset, Amount: net.Abs()})
			case net.IsPositive():
				g.In = append(g.In, AssetAmount{Asset: asset, Amount: net})
			}
		}
		if len(g.Out) == 0 && len(g.In) == 0 {
			continue
		}
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Time.UnixMilli() != groups[j].Time.UnixMilli() {
			return groups[i].Time.Before(groups[j].Time)
		}
		return groups[i].Hint < groups[j].Hint
	})
	return groups
}
