package store

import (
	"fmt"
	"sort"
	"strings"
)

// CorruptDataError reports persisted state that cannot be parsed into a
// valid record mapping. Loading never falls back to an empty store: the
// caller must surface this before any command runs.
type CorruptDataError struct {
	Detail string
	Err    error
}

func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt data: %s: %v", e.Detail, e.Err)
	}
	return "corrupt data: " + e.Detail
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a lookup for an identifier absent from the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "student " + e.ID + " not found"
}

// ValidationError reports rejected input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + joinFields(e.Fields)
}

// joinFields renders a field→message map deterministically.
func joinFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}
