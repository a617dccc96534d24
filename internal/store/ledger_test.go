package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLedger(t *testing.T, contents string) (*Ledger, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "balance.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write balance file: %v", err)
	}
	return LoadLedger(path)
}

func TestLoadLedger(t *testing.T) {
	l, err := newTestLedger(t, "250\n")
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}
	if l.Balance() != 250 {
		t.Errorf("balance = %d, want 250", l.Balance())
	}
}

func TestLoadLedgerCorrupt(t *testing.T) {
	_, err := newTestLedger(t, "not a number")
	var corrupt *CorruptDataError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptDataError, got %v", err)
	}
}

func TestCreditPersists(t *testing.T) {
	l, err := newTestLedger(t, "0")
	if err != nil {
		t.Fatalf("LoadLedger failed: %v", err)
	}

	if err := l.Credit(300); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}
	if l.Balance() != 300 {
		t.Errorf("balance = %d, want 300", l.Balance())
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		t.Fatalf("read balance file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "300" {
		t.Errorf("persisted balance = %q, want 300", strings.TrimSpace(string(data)))
	}

	reloaded, err := LoadLedger(l.path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Balance() != 300 {
		t.Errorf("reloaded balance = %d, want 300", reloaded.Balance())
	}
}
