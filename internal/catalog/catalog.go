// Package catalog loads the read-only course catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultCourses seeds the catalog file on first run.
var DefaultCourses = []string{"Math", "English", "Science", "History", "Art", "Computer"}

// Load reads the catalog file, a JSON array of course names.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open course catalog: %w", err)
	}

	var courses []string
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parse course catalog: %w", err)
	}
	return courses, nil
}

// Remaining returns the catalog courses the student is not yet enrolled in,
// preserving catalog order.
func Remaining(all, enrolled []string) []string {
	held := make(map[string]struct{}, len(enrolled))
	for _, c := range enrolled {
		held[c] = struct{}{}
	}

	var remaining []string
	for _, c := range all {
		if _, ok := held[c]; !ok {
			remaining = append(remaining, c)
		}
	}
	return remaining
}
