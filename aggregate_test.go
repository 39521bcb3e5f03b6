package balancelog

import "testing"

func TestTotalsInvariant(t *testing.T) {
	var total Totals
	for _, v := range []float64{0.1, 0.1, 0.1, -0.2, 5, -1.5} {
		total.add(A(v))
	}
	if !total.Pos.Equal(A(5.3)) {
		t.Errorf("Pos = %s, want 5.3", total.Pos)
	}
	if !total.Neg.Equal(A(1.7)) {
		t.Errorf("Neg = %s, want 1.7", total.Neg)
	}
	if !total.Net.Equal(total.Pos.Sub(total.Neg)) {
		t.Errorf("Net = %s, want Pos-Neg = %s", total.Net, total.Pos.Sub(total.Neg))
	}
	if total.Net.String() != "3.6" {
		t.Errorf("Net = %s, want exactly 3.6", total.Net)
	}
}

func TestSumByAssetOrderIndependent(t *testing.T) {
	rows := []Row{
		row(t, KindRealizedPNL, "USDT", 1.5, "2024-05-01 1:00:00"),
		row(t, KindCommission, "USDT", -0.25, "2024-05-01 2:00:00"),
		row(t, KindFundingFee, "BNB", 0.003, "2024-05-01 3:00:00"),
		row(t, KindTransfer, "USDT", 100, "2024-05-01 4:00:00"),
	}
	reversed := make([]Row, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}

	a, b := SumByAsset(rows), SumByAsset(reversed)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("asset counts = %d/%d, want 2", len(a), len(b))
	}
	for _, asset := range a.Assets() {
		x, y := a[asset], b[asset]
		if !x.Pos.Equal(y.Pos) || !x.Neg.Equal(y.Neg) || !x.Net.Equal(y.Net) {
			t.Errorf("%s: totals differ across input orders: %+v vs %+v", asset, x, y)
		}
	}
	if net := a["USDT"].Net; !net.Equal(A(101.25)) {
		t.Errorf("USDT net = %s, want 101.25", net)
	}
}

func TestSumByKind(t *testing.T) {
	rows := []Row{
		row(t, KindRealizedPNL, "USDT", 2, "2024-05-01 1:00:00"),
		row(t, KindRealizedPNL, "USDT", -0.5, "2024-05-01 2:00:00"),
		row(t, KindCommission, "USDT", -0.1, "2024-05-01 3:00:00"),
		row(t, "CASH_COUPON", "USDT", 10, "2024-05-01 4:00:00"),
		row(t, "WELCOME_BONUS", "BUSD", 5, "2024-05-01 5:00:00"),
		row(t, "EVENT_FANCY_NEW_THING", "USDT", -3, "2024-05-01 6:00:00"),
		row(t, KindEventOrder, "USDT", -50, "2024-05-01 7:00:00"),
	}
	k := SumByKind(rows)

	if net := k.Realized["USDT"].Net; !net.Equal(A(1.5)) {
		t.Errorf("realized USDT net = %s, want 1.5", net)
	}
	if net := k.Commission["USDT"].Net; !net.Equal(A(-0.1)) {
		t.Errorf("commission USDT net = %s, want -0.1", net)
	}
	if net := k.EventOrder["USDT"].Net; !net.Equal(A(-50)) {
		t.Errorf("event order USDT net = %s, want -50", net)
	}

	// Unrecognized labels keep their literal spelling as the bucket key.
	if len(k.Other) != 2 {
		t.Fatalf("other buckets = %v, want CASH_COUPON and WELCOME_BONUS", k.Other)
	}
	if net := k.Other["CASH_COUPON"]["USDT"].Net; !net.Equal(A(10)) {
		t.Errorf("CASH_COUPON USDT net = %s, want 10", net)
	}
	// Unknown event-family labels belong to neither a kind bucket nor other.
	if _, ok := k.Other["EVENT_FANCY_NEW_THING"]; ok {
		t.Error("unknown event-prefixed label leaked into the other bucket")
	}
}

func TestKindTotalsSections(t *testing.T) {
	rows := []Row{
		row(t, KindRealizedPNL, "USDT", 2, "2024-05-01 1:00:00"),
		row(t, KindReferralKickback, "USDT", 0.005, "2024-05-01 2:00:00"),
		row(t, KindInsuranceClear, "USDT", -1, "2024-05-01 3:00:00"),
		row(t, KindStrategyTransfer, "USDT", 50, "2024-05-01 4:00:00"),
		row(t, KindCoinSwapWithdraw, "USDT", -10, "2024-05-01 5:00:00"),
		row(t, KindCoinSwapDeposit, "BNB", 0.015, "2024-05-01 5:00:00"),
		row(t, KindAutoExchange, "USDC", 9, "2024-05-01 6:00:00"),
		row(t, "CASH_COUPON", "USDT", 10, "2024-05-01 7:00:00"),
	}
	k := SumByKind(rows)

	got := make([]Kind, 0, 12)
	for _, s := range k.Sections() {
		if s.Title == "" {
			t.Errorf("section %s has no title", s.Kind)
		}
		if len(s.Totals) == 0 {
			t.Errorf("section %s is empty", s.Kind)
		}
		got = append(got, s.Kind)
	}
	// Every kind with activity gets a section, conversion legs included;
	// kinds without activity are absent.
	want := []Kind{KindRealizedPNL, KindInsuranceClear, KindReferralKickback,
		KindStrategyTransfer, KindCoinSwapWithdraw, KindCoinSwapDeposit, KindAutoExchange}
	if len(got) != len(want) {
		t.Fatalf("sections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sections = %v, want %v", got, want)
		}
	}

	if labels := k.OtherLabels(); len(labels) != 1 || labels[0] != "CASH_COUPON" {
		t.Errorf("other labels = %v, want [CASH_COUPON]", labels)
	}
}

func TestBySymbolSummary(t *testing.T) {
	eth := row(t, KindRealizedPNL, "USDT", 3, "2024-05-01 1:00:00")
	eth.Symbol = "ETHUSDT"
	ethFee := row(t, KindCommission, "USDT", -0.2, "2024-05-01 1:00:00")
	ethFee.Symbol = "ETHUSDT"
	btc := row(t, KindFundingFee, "USDT", 0.01, "2024-05-01 2:00:00")
	btc.Symbol = "BTCUSDT"
	insOnly := row(t, KindInsuranceClear, "USDT", -1, "2024-05-01 3:00:00")
	insOnly.Symbol = "XRPUSDT"
	noSymbol := row(t, KindRealizedPNL, "USDT", 9, "2024-05-01 4:00:00")

	out := BySymbolSummary([]Row{eth, ethFee, btc, insOnly, noSymbol})
	if len(out) != 2 {
		t.Fatalf("summaries = %+v, want BTCUSDT and ETHUSDT only", out)
	}
	if out[0].Symbol != "BTCUSDT" || out[1].Symbol != "ETHUSDT" {
		t.Errorf("order = %s, %s; want sorted by symbol", out[0].Symbol, out[1].Symbol)
	}
	if !out[1].Realized.Net.Equal(A(3)) || !out[1].Commission.Net.Equal(A(-0.2)) {
		t.Errorf("ETHUSDT = %+v", out[1])
	}
}

func TestBySymbolSummarySkipsInsuranceOnly(t *testing.T) {
	ins := row(t, KindInsuranceClear, "USDT", -12.5, "2024-05-01 1:00:00")
	ins.Symbol = "DOGEUSDT"
	if out := BySymbolSummary([]Row{ins}); len(out) != 0 {
		t.Errorf("insurance-only symbol surfaced: %+v", out)
	}
	// The same symbol with any traded activity is kept, insurance included.
	pnl := row(t, KindRealizedPNL, "USDT", 0.5, "2024-05-01 2:00:00")
	pnl.Symbol = "DOGEUSDT"
	out := BySymbolSummary([]Row{ins, pnl})
	if len(out) != 1 || !out[0].Insurance.Net.Equal(A(-12.5)) {
		t.Errorf("traded symbol lost its insurance totals: %+v", out)
	}
}

func TestGroupSwapsPairsLegs(t *testing.T) {
	out := row(t, KindCoinSwapWithdraw, "USDT", -10, "2024-05-01 8:15:00")
	out.Extra = "swap123@cs"
	in := row(t, KindCoinSwapDeposit, "BNB", 0.01511633, "2024-05-01 8:15:00")
	in.Extra = "swap123@cs"
	other := row(t, KindCoinSwapWithdraw, "USDC", -4, "2024-05-01 8:15:00")
	other.Extra = "swap999@cs"

	groups := GroupSwaps([]Row{in, out, other}, KindCoinSwapDeposit)
	if len(groups) != 2 {
		t.Fatalf("groups = %v, want 2", groups)
	}
	g := groups[0]
	if len(g.Out) != 1 || g.Out[0].Asset != "USDT" || !g.Out[0].Amount.Equal(A(10)) {
		t.Errorf("out leg = %+v", g.Out)
	}
	if len(g.In) != 1 || g.In[0].Asset != "BNB" || !g.In[0].Amount.Equal(A(0.01511633)) {
		t.Errorf("in leg = %+v", g.In)
	}
	if g.String() != "2024-05-01 08:15:00  Out: 10 USDT → In: 0.01511633 BNB" {
		t.Errorf("String() = %q", g.String())
	}
	if len(groups[1].Out) != 1 || groups[1].Out[0].Asset != "USDC" {
		t.Errorf("second group = %+v", groups[1])
	}
}

func TestGroupSwapsKindFilter(t *testing.T) {
	swap := row(t, KindCoinSwapWithdraw, "USDT", -10, "2024-05-01 8:15:00")
	swap.Extra = "s1@cs"
	auto := row(t, KindAutoExchange, "USDT", -9, "2024-05-02 1:00:00")
	auto.Extra = "ae77@x"
	autoIn := row(t, KindAutoExchange, "USDC", 8.97164406, "2024-05-02 1:00:00")
	autoIn.Extra = "ae77@x"

	rows := []Row{swap, auto, autoIn}
	if got := GroupSwaps(rows, KindAutoExchange); len(got) != 1 || len(got[0].In) != 1 || got[0].In[0].Asset != "USDC" {
		t.Errorf("auto-exchange groups = %v", got)
	}
	if got := GroupSwaps(rows, KindCoinSwapWithdraw); len(got) != 1 || got[0].Out[0].Asset != "USDT" {
		t.Errorf("coin-swap groups = %v", got)
	}
}
