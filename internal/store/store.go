// Package store owns the persisted student records and the fee balance.
// It is the single source of truth: every mutating operation writes the
// file back before returning, using write-then-rename so a crash mid-write
// never leaves a truncated file.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"slices"

	"github.com/google/uuid"
	"github.com/schoolhq/registrar/internal/idgen"
	"github.com/schoolhq/registrar/internal/model"
	"github.com/schoolhq/registrar/internal/validator"
)

// idPattern matches valid student identifiers.
var idPattern = regexp.MustCompile(`^[0-9]{5}$`)

// Entry pairs a student with their identifier.
type Entry struct {
	ID      string
	Student model.Student
}

// Store is the in-memory mapping of identifier → student record, kept in
// insertion order. It is the exclusive owner of all records for the
// process lifetime.
type Store struct {
	path    string
	records map[string]model.Student
	order   []string
}

// Load parses the persisted students file into a Store. The persisted form
// is a JSON object keyed by identifier; key order in the file is the store
// order. Malformed JSON, invalid identifiers, or records that fail field
// validation all fail with CorruptDataError.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open students file: %w", err)
	}
	defer f.Close()

	s := &Store{
		path:    path,
		records: make(map[string]model.Student),
	}

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return nil, &CorruptDataError{Detail: "students file is not a JSON object", Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &CorruptDataError{Detail: "students file is not a JSON object"}
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &CorruptDataError{Detail: "unreadable student id", Err: err}
		}
		id, _ := keyTok.(string)
		if !idPattern.MatchString(id) {
			return nil, &CorruptDataError{Detail: fmt.Sprintf("invalid student id %q", id)}
		}
		if _, dup := s.records[id]; dup {
			return nil, &CorruptDataError{Detail: fmt.Sprintf("duplicate student id %q", id)}
		}

		var rec model.Student
		if err := dec.Decode(&rec); err != nil {
			return nil, &CorruptDataError{Detail: fmt.Sprintf("student %s", id), Err: err}
		}
		if err := validateRecord(id, rec); err != nil {
			return nil, err
		}
		if rec.Courses == nil {
			rec.Courses = []string{}
		}

		s.records[id] = rec
		s.order = append(s.order, id)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &CorruptDataError{Detail: "students file is truncated", Err: err}
	}

	return s, nil
}

// validateRecord applies the same field rules as Add plus the fee
// invariant, so an edited or damaged file cannot smuggle in a bad record.
func validateRecord(id string, rec model.Student) error {
	probe := model.AddStudentRequest{
		Name:    rec.Name,
		Class:   rec.Class,
		RollNo:  rec.RollNo,
		Courses: rec.Courses,
	}
	if fields := validator.Struct(probe); fields != nil {
		return &CorruptDataError{Detail: fmt.Sprintf("student %s: %s", id, joinFields(fields))}
	}
	if rec.Fees != model.CourseFees(len(rec.Courses)) {
		return &CorruptDataError{
			Detail: fmt.Sprintf("student %s: fees %d do not match %d enrolled courses", id, rec.Fees, len(rec.Courses)),
		}
	}
	return nil
}

// Add validates the request, assigns a fresh identifier, inserts the new
// record, and persists the store. Fees start at the per-course rate times
// the enrolled course count, with fees unpaid.
func (s *Store) Add(req model.AddStudentRequest) (string, error) {
	if fields := validator.Struct(req); fields != nil {
		return "", &ValidationError{Fields: fields}
	}
	if len(s.records) >= idgen.MaxStudents {
		return "", idgen.ErrCapacityExceeded
	}

	taken := make(map[string]struct{}, len(s.records))
	for id := range s.records {
		taken[id] = struct{}{}
	}
	id, err := idgen.Generate(taken)
	if err != nil {
		return "", err
	}

	courses := slices.Clone(req.Courses)
	if courses == nil {
		courses = []string{}
	}

	s.records[id] = model.Student{
		Name:    req.Name,
		Class:   req.Class,
		RollNo:  req.RollNo,
		Courses: courses,
		Fees:    model.CourseFees(len(courses)),
		FeePaid: false,
	}
	s.order = append(s.order, id)

	if err := s.Save(); err != nil {
		delete(s.records, id)
		s.order = s.order[:len(s.order)-1]
		return "", err
	}
	return id, nil
}

// Get returns a copy of the record for id. The copy owns its course slice,
// so callers can build an updated record without aliasing store state.
func (s *Store) Get(id string) (model.Student, error) {
	rec, ok := s.records[id]
	if !ok {
		return model.Student{}, &NotFoundError{ID: id}
	}
	rec.Courses = slices.Clone(rec.Courses)
	return rec, nil
}

// Update replaces the record for an existing id and persists the store.
// On a write failure the previous record is restored, keeping memory and
// disk reconciled.
func (s *Store) Update(id string, rec model.Student) error {
	prev, ok := s.records[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	if rec.Courses == nil {
		rec.Courses = []string{}
	}

	s.records[id] = rec
	if err := s.Save(); err != nil {
		s.records[id] = prev
		return err
	}
	return nil
}

// List returns all records in insertion order.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		rec.Courses = slices.Clone(rec.Courses)
		entries = append(entries, Entry{ID: id, Student: rec})
	}
	return entries
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Save serializes the full mapping atomically: the encoded state goes to a
// uniquely named temp file which then replaces the students file in one
// rename. The temp file is removed if the rename fails.
func (s *Store) Save() error {
	data, err := s.encode()
	if err != nil {
		return fmt.Errorf("encode students: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write students file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace students file: %w", err)
	}
	return nil
}

// encode writes the mapping as a JSON object whose key order is the store
// order. encoding/json sorts map keys, which would shuffle records on every
// reload, so the object is assembled by hand.
func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		rec, err := json.Marshal(s.records[id])
		if err != nil {
			return nil, err
		}
		buf.Write(rec)
	}
	buf.WriteByte('}')
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
