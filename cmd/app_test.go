package cmd

import (
	"os"
	"path/filepath"
	"testing"

	balancelog "github.com/GorkemTikic/balance-log-sub000"
)

func TestReadLogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.tsv")
	if err := os.WriteFile(path, []byte(balancelog.SelfTestLog), 0o600); err != nil {
		t.Fatal(err)
	}
	text, err := readLog([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if text != balancelog.SelfTestLog {
		t.Error("file content altered on read")
	}
	if _, err := readLog([]string{filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("missing file must fail")
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty("a", "", "  \n", "b"); got != "a\nb" {
		t.Errorf("joinNonEmpty = %q", got)
	}
	if got := joinNonEmpty("", "   "); got != "" {
		t.Errorf("joinNonEmpty of blanks = %q", got)
	}
}

func TestCommandsWired(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		name := c.Name()
		if seen[name] {
			t.Errorf("duplicate command %q", name)
		}
		seen[name] = true
		if c.Synopsis() == "" || c.Usage() == "" {
			t.Errorf("command %q lacks help text", name)
		}
	}
	for _, want := range []string{"parse", "summary", "symbols", "swaps", "narrative", "audit", "selftest", "topic"} {
		if !seen[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}
