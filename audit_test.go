package balancelog

import (
	"strings"
	"testing"
)

func anchor(t *testing.T, s string) Timestamp {
	t.Helper()
	ts, err := ParseAnchor(s)
	if err != nil {
		t.Fatalf("bad test anchor %q: %v", s, err)
	}
	return ts
}

func TestNewAuditRollsForward(t *testing.T) {
	rows := []Row{
		row(t, KindRealizedPNL, "USDT", -1, "2024-04-30 23:00:00"), // before anchor
		row(t, KindRealizedPNL, "USDT", 2.5, "2024-05-01 1:00:00"),
		row(t, KindCommission, "USDT", -0.5, "2024-05-01 2:00:00"),
		row(t, KindFundingFee, "BNB", 0.01, "2024-05-01 3:00:00"),
		row(t, KindTransfer, "USDT", 40, "2024-05-02 9:00:00"), // after end
	}
	spec := AuditSpec{
		Anchor:   anchor(t, "2024-05-01"),
		End:      anchor(t, "2024-05-01 23:59:59"),
		Baseline: map[string]Amount{"USDT": A(100), "BNB": A(1)},
		Transfer: &AssetAmountSigned{Asset: "USDT", Amount: A(-20)},
	}
	a, err := NewAudit(rows, spec)
	if err != nil {
		t.Fatal(err)
	}
	if a.RowCount != 3 {
		t.Errorf("rows in window = %d, want 3", a.RowCount)
	}
	if !a.Start["USDT"].Equal(A(80)) {
		t.Errorf("start USDT = %s, want 100-20", a.Start["USDT"])
	}
	if !a.Final["USDT"].Equal(A(82)) {
		t.Errorf("final USDT = %s, want 80+2.5-0.5", a.Final["USDT"])
	}
	if !a.Final["BNB"].Equal(A(1.01)) {
		t.Errorf("final BNB = %s, want 1.01", a.Final["BNB"])
	}
	if got := a.Assets(); len(got) != 2 || got[0] != "BNB" || got[1] != "USDT" {
		t.Errorf("assets = %v", got)
	}
}

func TestNewAuditWindowIsInclusive(t *testing.T) {
	rows := []Row{
		row(t, KindTransfer, "USDT", 1, "2024-05-01 0:00:00"),
		row(t, KindTransfer, "USDT", 2, "2024-05-01 12:00:00"),
	}
	spec := AuditSpec{
		Anchor: anchor(t, "2024-05-01 0:00:00"),
		End:    anchor(t, "2024-05-01 12:00:00"),
	}
	a, err := NewAudit(rows, spec)
	if err != nil {
		t.Fatal(err)
	}
	if a.RowCount != 2 || !a.Final["USDT"].Equal(A(3)) {
		t.Errorf("boundary rows dropped: count=%d final=%s", a.RowCount, a.Final["USDT"])
	}
}

func TestNewAuditNeedsAnchor(t *testing.T) {
	_, err := NewAudit(nil, AuditSpec{})
	if err == nil {
		t.Fatal("want an error without an anchor")
	}
	if !strings.Contains(err.Error(), "anchor") {
		t.Errorf("error %q should explain the missing anchor", err)
	}
}

func TestNewAuditDiscoversAssets(t *testing.T) {
	// An asset with window activity but no baseline line still appears,
	// starting from zero.
	rows := []Row{row(t, KindFundingFee, "ETH", 0.25, "2024-05-01 1:00:00")}
	a, err := NewAudit(rows, AuditSpec{Anchor: anchor(t, "2024-05-01")})
	if err != nil {
		t.Fatal(err)
	}
	if !a.Final["ETH"].Equal(A(0.25)) {
		t.Errorf("final ETH = %s, want 0.25", a.Final["ETH"])
	}
}

func TestParseBaseline(t *testing.T) {
	tests := []struct {
		in    string
		asset string
		want  float64
	}{
		{"USDT 1250.5", "USDT", 1250.5},
		{"usdt: 10", "USDT", 10},
		{"BNB=0.25", "BNB", 0.25},
		{"12.5 USDT", "USDT", 12.5},
	}
	for _, tt := range tests {
		got, err := ParseBaseline(tt.in)
		if err != nil {
			t.Errorf("ParseBaseline(%q): %v", tt.in, err)
			continue
		}
		if !got[tt.asset].Equal(A(tt.want)) {
			t.Errorf("ParseBaseline(%q) = %v, want %s %v", tt.in, got, tt.asset, tt.want)
		}
	}
}

func TestParseBaselineAccumulatesAndRejects(t *testing.T) {
	got, err := ParseBaseline("USDT 10\nUSDT 5\nBNB 1")
	if err != nil {
		t.Fatal(err)
	}
	if !got["USDT"].Equal(A(15)) {
		t.Errorf("duplicate asset lines = %s, want 15", got["USDT"])
	}
	if _, err := ParseBaseline("USDT"); err == nil {
		t.Error("line without an amount must fail")
	}
	if _, err := ParseBaseline("USDT abc"); err == nil {
		t.Error("non-numeric amount must fail")
	}
}

func TestParseTransfer(t *testing.T) {
	tr, err := ParseTransfer("usdt:-250")
	if err != nil {
		t.Fatal(err)
	}
	if tr.Asset != "USDT" || !tr.Amount.Equal(A(-250)) {
		t.Errorf("transfer = %+v", tr)
	}
	for _, bad := range []string{"USDT", ":5", "USDT:abc"} {
		if _, err := ParseTransfer(bad); err == nil {
			t.Errorf("ParseTransfer(%q) must fail", bad)
		}
	}
}

func TestNewNarrative(t *testing.T) {
	res := ParseLog(SelfTestLog)
	n := NewNarrative(res.Rows)

	order := make([]Kind, 0, len(n.Sections))
	for _, s := range n.Sections {
		order = append(order, s.Kind)
	}
	want := []Kind{KindRealizedPNL, KindFundingFee, KindCommission,
		KindReferralKickback, KindTransfer, KindEventOrder, KindEventPayout}
	if len(order) != len(want) {
		t.Fatalf("sections = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("sections = %v, want %v", order, want)
		}
	}

	if len(n.Swaps) != 1 || len(n.AutoExchanges) != 1 {
		t.Errorf("conversions = %d swaps, %d auto-exchanges; want 1 each", len(n.Swaps), len(n.AutoExchanges))
	}
	if len(n.Other) != 0 {
		t.Errorf("other buckets = %v, want none for the fixture", n.Other)
	}
	if !n.Final["USDT"].Equal(n.Overall["USDT"].Net) {
		t.Error("final balances must equal the overall nets")
	}
}

func TestSelfTest(t *testing.T) {
	if err := SelfTest(); err != nil {
		t.Fatal(err)
	}
}
