package balancelog

import (
	"strings"
	"sync"

	money "github.com/Rhymond/go-money"
)

// knownAssets is a closed reference set of tickers commonly seen in balance
// logs. It is a convenience for column scoring and display, not a
// validation gate: rows may carry any asset string.
var knownAssets = map[string]struct{}{
	"USDT": {}, "USDC": {}, "BUSD": {}, "FDUSD": {}, "TUSD": {}, "DAI": {},
	"BTC": {}, "ETH": {}, "BNB": {}, "SOL": {}, "XRP": {}, "ADA": {},
	"DOGE": {}, "TRX": {}, "DOT": {}, "MATIC": {}, "POL": {}, "LTC": {},
	"AVAX": {}, "LINK": {}, "ATOM": {}, "UNI": {}, "APT": {}, "ARB": {},
	"OP": {}, "SUI": {}, "PEPE": {}, "SHIB": {}, "NEAR": {}, "FIL": {},
	"ETC": {}, "BCH": {}, "EUR": {}, "TRY": {}, "BRL": {}, "LDUSDT": {},
	"BFUSD": {},
}

// quoteAssets are the pair suffixes accepted when deciding whether a cell
// is a trading symbol. Longest first so "BTCUSDT" resolves against USDT,
// not USD.
var quoteAssets = []string{
	"FDUSD", "USDT", "USDC", "BUSD", "TUSD",
	"USD", "BTC", "ETH", "BNB", "EUR", "TRY", "BRL",
}

// IsKnownAsset reports whether ticker belongs to the reference set.
func IsKnownAsset(ticker string) bool {
	_, ok := knownAssets[strings.ToUpper(strings.TrimSpace(ticker))]
	return ok
}

// IsSymbol reports whether s has the shape of a trading pair: an
// alphanumeric base followed by a known quote asset. The row parser leaves
// the symbol empty rather than guess when this fails.
func IsSymbol(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 5 || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	for _, quote := range quoteAssets {
		if base, found := strings.CutSuffix(s, quote); found && base != "" {
			return true
		}
	}
	return false
}

// displayFractions drives narrative formatting only; stored amounts always
// keep their full precision.
var displayFractions = map[string]int{
	"USDT": 8, "USDC": 8, "BUSD": 8, "FDUSD": 8, "TUSD": 8, "DAI": 8,
	"BTC": 8, "ETH": 8, "BNB": 8, "LDUSDT": 8, "BFUSD": 8,
}

var registerCurrencies sync.Once

// Display formats an amount for one asset using the go-money currency
// registry: crypto tickers are registered as custom currencies so the
// formatter knows their display fraction and grapheme. Assets outside the
// registry format with the plain decimal representation.
func (a Amount) Display(asset string) string {
	registerCurrencies.Do(func() {
		for code, fraction := range displayFractions {
			money.AddCurrency(code, code, "1 $", ".", ",", fraction)
		}
	})
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if _, ok := displayFractions[asset]; !ok {
		return a.String() + " " + asset
	}
	cur := *money.New(0, asset).Currency()
	minor := a.value.Shift(int32(cur.Fraction))
	if !minor.Equal(minor.Truncate(0)) {
		// More precision than the display fraction; never truncate.
		return a.String() + " " + asset
	}
	return cur.Formatter().Format(minor.IntPart())
}
