package balancelog

import "strings"

// Row is one parsed balance-log entry. Rows are built only by ParseLog and
// are immutable afterwards: aggregation and report builders read them, they
// never write.
type Row struct {
	ID     string    `json:"id,omitempty"`     // opaque transaction identifier, may be empty
	UID    string    `json:"uid,omitempty"`    // opaque account identifier, may be empty
	Asset  string    `json:"asset"`            // ticker, e.g. "USDT"
	Type   string    `json:"type"`             // canonical Kind value, or the raw label when unrecognized
	Amount Amount    `json:"amount"`           // signed; positive credits, negative debits
	Time   Timestamp `json:"time"`             // normalized UTC instant
	Symbol string    `json:"symbol,omitempty"` // trading pair, e.g. "BTCUSDT", or ""
	Extra  string    `json:"extra,omitempty"`  // residual trailing columns, may hold a swap-group hint before '@'
	Raw    string    `json:"raw"`              // the source line, verbatim, for audit display
}

// Kind returns the row type as a Kind. For unrecognized labels this is not
// one of the canonical constants.
func (r Row) Kind() Kind { return Kind(r.Type) }

// IsEvent reports whether the row belongs to the event-contract product
// family.
func (r Row) IsEvent() bool { return strings.HasPrefix(r.Type, eventPrefix) }

// swapHint returns the grouping hint encoded in the extra column before the
// first '@', used to pair the two legs of one swap.
func (r Row) swapHint() string {
	hint, _, _ := strings.Cut(r.Extra, "@")
	return strings.TrimSpace(hint)
}
