// Package idgen assigns unique 5-digit student identifiers.
package idgen

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// idSpace is the number of distinct identifiers: 00000 through 99999.
	idSpace = 100000

	// MaxStudents is the hard cap on stored records. A store at this size
	// must refuse further additions.
	MaxStudents = 99999

	// randomAttempts bounds the pure-random draw phase before falling back
	// to a scan. Near capacity random draws collide almost every time.
	randomAttempts = 64
)

// ErrCapacityExceeded signals that the identifier space is exhausted and no
// more students can be registered.
var ErrCapacityExceeded = errors.New("student capacity exceeded")

// Generate returns a zero-padded 5-digit identifier not present in taken.
// It draws uniformly at random and retries on collision; after the retry
// budget it scans from a random offset, so a free identifier is always
// found when one exists. Fails with ErrCapacityExceeded only when the
// store already holds MaxStudents records.
func Generate(taken map[string]struct{}) (string, error) {
	if len(taken) >= MaxStudents {
		return "", ErrCapacityExceeded
	}

	for i := 0; i < randomAttempts; i++ {
		id := fmt.Sprintf("%05d", rand.Intn(idSpace))
		if _, exists := taken[id]; !exists {
			return id, nil
		}
	}

	start := rand.Intn(idSpace)
	for i := 0; i < idSpace; i++ {
		id := fmt.Sprintf("%05d", (start+i)%idSpace)
		if _, exists := taken[id]; !exists {
			return id, nil
		}
	}

	return "", ErrCapacityExceeded
}
