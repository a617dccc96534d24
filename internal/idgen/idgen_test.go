package idgen

import (
	"fmt"
	"regexp"
	"testing"
)

var fiveDigits = regexp.MustCompile(`^[0-9]{5}$`)

func TestGenerateFormatAndUniqueness(t *testing.T) {
	taken := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		id, err := Generate(taken)
		if err != nil {
			t.Fatalf("Generate failed on iteration %d: %v", i, err)
		}
		if !fiveDigits.MatchString(id) {
			t.Fatalf("expected 5-digit id, got %q", id)
		}
		if _, dup := taken[id]; dup {
			t.Fatalf("id %q generated twice", id)
		}
		taken[id] = struct{}{}
	}
}

func TestGenerateNearCapacity(t *testing.T) {
	// Every id taken except one: random draws alone would almost never hit
	// it, the scan fallback must.
	taken := make(map[string]struct{}, idSpace)
	for i := 0; i < idSpace; i++ {
		taken[fmt.Sprintf("%05d", i)] = struct{}{}
	}
	delete(taken, "54321")
	delete(taken, "00000") // stay below the capacity check

	id, err := Generate(taken)
	if err != nil {
		t.Fatalf("Generate failed with free ids remaining: %v", err)
	}
	if id != "54321" && id != "00000" {
		t.Fatalf("expected a free id, got %q", id)
	}
}

func TestGenerateAtCapacity(t *testing.T) {
	taken := make(map[string]struct{}, MaxStudents)
	for i := 0; i < MaxStudents; i++ {
		taken[fmt.Sprintf("%05d", i)] = struct{}{}
	}

	if _, err := Generate(taken); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}
