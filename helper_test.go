package balancelog

import "testing"

// row is a helper for tests to build a Row from constants.
func row(t *testing.T, kind Kind, asset string, amount float64, at string) Row {
	t.Helper()
	ts, ok := NormalizeTime(at)
	if !ok {
		t.Fatalf("bad test time %q", at)
	}
	return Row{
		Asset:  asset,
		Type:   string(kind),
		Amount: A(amount),
		Time:   ts,
	}
}
