package balancelog

import (
	"maps"
	"slices"
)

// NarrativeSection is the totals of one canonical kind, with the heading
// the renderer should use.
type NarrativeSection struct {
	Kind   Kind
	Title  string
	Totals TotalsMap
}

// Narrative is the structured form of the human-readable report: ordered
// per-kind sections (only kinds with activity appear), the reconstructed
// swap and auto-exchange conversions, the open-ended other buckets, and
// the overall per-asset effect.
type Narrative struct {
	Sections      []NarrativeSection
	Swaps         []SwapGroup
	AutoExchanges []SwapGroup
	Other         map[string]TotalsMap
	Overall       TotalsMap
	Final         map[string]Amount // Overall nets, per asset
}

// narrativeOrder fixes the section order of the report.
var narrativeOrder = []struct {
	kind  Kind
	title string
	pick  func(*KindTotals) TotalsMap
}{
	{KindRealizedPNL, "Realized P&L", func(k *KindTotals) TotalsMap { return k.Realized }},
	{KindFundingFee, "Funding Fees", func(k *KindTotals) TotalsMap { return k.Funding }},
	{KindCommission, "Trading Commissions", func(k *KindTotals) TotalsMap { return k.Commission }},
	{KindInsuranceClear, "Insurance Clearance / Liquidation", func(k *KindTotals) TotalsMap { return k.Insurance }},
	{KindReferralKickback, "Referral Kickbacks", func(k *KindTotals) TotalsMap { return k.Referral }},
	{KindTransfer, "Transfers", func(k *KindTotals) TotalsMap { return k.Transfer }},
	{KindStrategyTransfer, "Strategy / Bot Transfers", func(k *KindTotals) TotalsMap { return k.Strategy }},
	{KindEventOrder, "Event Contract Orders", func(k *KindTotals) TotalsMap { return k.EventOrder }},
	{KindEventPayout, "Event Contract Payouts", func(k *KindTotals) TotalsMap { return k.EventPayout }},
}

// Sections returns every non-empty kind bucket as a titled section: the
// narrative-ordered kinds first, then the conversion legs the narrative
// shows paired instead. The summary command renders one table per section.
func (k *KindTotals) Sections() []NarrativeSection {
	var sections []NarrativeSection
	add := func(kind Kind, title string, m TotalsMap) {
		if len(m) == 0 {
			return
		}
		sections = append(sections, NarrativeSection{Kind: kind, Title: title, Totals: m})
	}
	for _, section := range narrativeOrder {
		add(section.kind, section.title, section.pick(k))
	}
	add(KindCoinSwapWithdraw, "Coin Swap Withdrawals", k.SwapWithdraw)
	add(KindCoinSwapDeposit, "Coin Swap Deposits", k.SwapDeposit)
	add(KindAutoExchange, "Auto-Exchange Legs", k.AutoExchange)
	return sections
}

// OtherLabels returns the open-ended bucket keys in a stable order.
func (k *KindTotals) OtherLabels() []string {
	return slices.Sorted(maps.Keys(k.Other))
}

// NewNarrative composes the structured narrative report from parsed rows.
// It is a pure transform; rendering to text lives in the renderer package.
func NewNarrative(rows []Row) *Narrative {
	kinds := SumByKind(rows)
	n := &Narrative{
		Swaps:         GroupSwaps(rows, KindCoinSwapDeposit),
		AutoExchanges: GroupSwaps(rows, KindAutoExchange),
		Other:         kinds.Other,
		Overall:       SumByAsset(rows),
		Final:         map[string]Amount{},
	}
	for _, section := range narrativeOrder {
		m := section.pick(kinds)
		if len(m) == 0 {
			continue
		}
		n.Sections = append(n.Sections, NarrativeSection{Kind: section.kind, Title: section.title, Totals: m})
	}
	for asset, t := range n.Overall {
		n.Final[asset] = t.Net
	}
	return n
}

// OtherLabels returns the open-ended bucket keys in a stable order.
func (n *Narrative) OtherLabels() []string {
	return slices.Sorted(maps.Keys(n.Other))
}
