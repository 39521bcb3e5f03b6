package renderer

import balancelog "github.com/GorkemTikic/balance-log-sub000"

// dustThresholds hides near-zero final balances of low-value wrapped
// assets from the narrative display. This is looser than the exact
// zero-suppression used in aggregation and it is display-only: the
// numeric balances are never changed.
var dustThresholds = map[string]balancelog.Amount{
	"LDUSDT": balancelog.A(0.001),
	"BFUSD":  balancelog.A(0.001),
	"SHIB":   balancelog.A(1),
	"PEPE":   balancelog.A(1),
}

func hiddenAsDust(asset string, final balancelog.Amount) bool {
	threshold, ok := dustThresholds[asset]
	if !ok {
		return false
	}
	return final.Abs().LessThan(threshold)
}
