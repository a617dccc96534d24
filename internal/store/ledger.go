package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Ledger is the running total of fees collected, independent of any single
// student's fee state. It persists as a plain integer file.
type Ledger struct {
	path    string
	balance int
}

// LoadLedger parses the persisted balance file. A file that does not hold
// a single integer fails with CorruptDataError.
func LoadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open balance file: %w", err)
	}

	balance, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, &CorruptDataError{Detail: "balance file is not an integer", Err: err}
	}

	return &Ledger{path: path, balance: balance}, nil
}

// Balance returns the current collected total.
func (l *Ledger) Balance() int {
	return l.balance
}

// Credit adds amount to the balance and persists it. The in-memory balance
// only moves once the file write has succeeded.
func (l *Ledger) Credit(amount int) error {
	next := l.balance + amount
	if err := l.write(next); err != nil {
		return err
	}
	l.balance = next
	return nil
}

func (l *Ledger) write(balance int) error {
	tmp := fmt.Sprintf("%s.%s.tmp", l.path, uuid.NewString())
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(balance)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write balance file: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace balance file: %w", err)
	}
	return nil
}
