package balancelog

import "strings"

// Kind is a typed string for the canonical transaction kinds of a balance
// log. A Row whose Type is none of these constants carries its original
// label verbatim and is aggregated into the open-ended "other" bucket.
type Kind string

// Canonical transaction kinds.
const (
	KindRealizedPNL      Kind = "REALIZED_PNL"
	KindCommission       Kind = "COMMISSION"
	KindFundingFee       Kind = "FUNDING_FEE"
	KindInsuranceClear   Kind = "INSURANCE_CLEAR"
	KindReferralKickback Kind = "REFERRAL_KICKBACK"
	KindTransfer         Kind = "TRANSFER"
	KindStrategyTransfer Kind = "STRATEGY_UMFUTURES_TRANSFER"
	KindCoinSwapDeposit  Kind = "COIN_SWAP_DEPOSIT"
	KindCoinSwapWithdraw Kind = "COIN_SWAP_WITHDRAW"
	KindAutoExchange     Kind = "AUTO_EXCHANGE"
	KindEventOrder       Kind = "EVENT_CONTRACTS_ORDER"
	KindEventPayout      Kind = "EVENT_CONTRACTS_PAYOUT"
)

// eventPrefix marks the separate event-contract product family. Unknown
// labels carrying it never fall into the "other" bucket.
const eventPrefix = "EVENT_"

// kindRule matches a lower-cased label against keyword families. A rule
// fires when every string in all and at least one in any (when non-empty)
// is present, and none of the strings in none is.
type kindRule struct {
	kind Kind
	any  []string
	all  []string
	none []string
}

func (r kindRule) matches(label string) bool {
	for _, kw := range r.all {
		if !strings.Contains(label, kw) {
			return false
		}
	}
	for _, kw := range r.none {
		if strings.Contains(label, kw) {
			return false
		}
	}
	if len(r.any) == 0 {
		return len(r.all) > 0
	}
	for _, kw := range r.any {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// Normalizer maps raw transaction-type labels to canonical kinds. The rule
// table is ordered: earlier rules win, so "funding fee" is resolved before
// the generic fee rule can claim it. Construct with NewNormalizer; the
// table is never mutated after construction.
type Normalizer struct {
	rules []kindRule
}

// NewNormalizer returns a Normalizer with the default rule cascade.
func NewNormalizer() *Normalizer {
	return &Normalizer{rules: []kindRule{
		{kind: KindRealizedPNL, any: []string{"realized", "realised", "realize_pnl"}},
		{kind: KindFundingFee, any: []string{"funding"}},
		{kind: KindCommission, any: []string{"commission", "trading fee", "trading_fee", "fee"},
			none: []string{"funding", "insurance", "liquidat"}},
		{kind: KindReferralKickback, any: []string{"referral", "kickback", "rebate"}},
		{kind: KindInsuranceClear, any: []string{"insurance", "liquidation", "clearance"}},
		{kind: KindAutoExchange, any: []string{"auto_exchange", "auto-exchange", "auto exchange", "autoexchange", "convert"}},
		{kind: KindCoinSwapDeposit, all: []string{"swap", "deposit"}},
		{kind: KindCoinSwapWithdraw, all: []string{"swap", "withdraw"}},
		{kind: KindStrategyTransfer, any: []string{"strategy", "grid", "bot"}},
		{kind: KindTransfer, any: []string{"transfer"}},
		{kind: KindEventOrder, all: []string{"event", "order"}},
		{kind: KindEventPayout, all: []string{"event", "payout"}},
	}}
}

// Normalize resolves a raw type label to its canonical kind. When the type
// cell itself is empty, the extra column is scanned with the same keyword
// families. An unrecognized label is returned verbatim so no information is
// silently dropped.
func (n *Normalizer) Normalize(rawType, extra string) string {
	raw := strings.TrimSpace(rawType)
	if k, ok := n.match(raw); ok {
		return string(k)
	}
	if raw == "" {
		if k, ok := n.match(strings.TrimSpace(extra)); ok {
			return string(k)
		}
	}
	return raw
}

func (n *Normalizer) match(label string) (Kind, bool) {
	if label == "" {
		return "", false
	}
	lower := strings.ToLower(label)
	for _, rule := range n.rules {
		if rule.matches(lower) {
			return rule.kind, true
		}
	}
	return "", false
}
