package service

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/schoolhq/registrar/internal/model"
	"github.com/schoolhq/registrar/internal/store"
)

var (
	// ErrNothingToEnroll signals that every requested course is already on
	// the student's record.
	ErrNothingToEnroll = errors.New("no courses left to enroll")

	// ErrAlreadyPaid signals a repeated payment attempt. Rejecting it keeps
	// the ledger from being double-credited.
	ErrAlreadyPaid = errors.New("fees already paid")
)

// RegistryService handles registration, enrollment, and fee collection on
// top of the record store and ledger. The mutex serializes each
// read-modify-persist sequence, so the service stays safe even if a future
// caller issues commands from more than one goroutine.
type RegistryService struct {
	mu     sync.Mutex
	store  *store.Store
	ledger *store.Ledger
	log    zerolog.Logger
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(st *store.Store, ledger *store.Ledger, log zerolog.Logger) *RegistryService {
	return &RegistryService{store: st, ledger: ledger, log: log}
}

// AddStudent registers a new student and returns the assigned identifier.
func (s *RegistryService) AddStudent(req model.AddStudentRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.Add(req)
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("id", id).
		Str("name", req.Name).
		Int("courses", len(req.Courses)).
		Msg("student registered")
	return id, nil
}

// Enroll adds the requested courses the student does not already hold, in
// the caller-supplied order after the existing ones. Fees are recomputed
// and the fee status reset to unpaid: new charges supersede any earlier
// payment. Fails with ErrNothingToEnroll when no requested course is new.
func (s *RegistryService) Enroll(id string, courses []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Get(id)
	if err != nil {
		return err
	}

	eligible := eligibleCourses(rec.Courses, courses)
	if len(eligible) == 0 {
		return ErrNothingToEnroll
	}

	next := rec
	next.Courses = append(slices.Clone(rec.Courses), eligible...)
	next.Fees = model.CourseFees(len(next.Courses))
	next.FeePaid = false

	if err := s.store.Update(id, next); err != nil {
		return err
	}

	s.log.Info().
		Str("id", id).
		Strs("courses", eligible).
		Int("fees", next.Fees).
		Msg("student enrolled")
	return nil
}

// PayFees marks the student's fees paid, credits the ledger with the
// record's fee amount, and returns the new balance.
func (s *RegistryService) PayFees(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.store.Get(id)
	if err != nil {
		return 0, err
	}
	if rec.FeePaid {
		return 0, ErrAlreadyPaid
	}

	next := rec
	next.FeePaid = true
	if err := s.store.Update(id, next); err != nil {
		return 0, err
	}

	if err := s.ledger.Credit(rec.Fees); err != nil {
		// Put the record back so fee status and ledger stay consistent.
		if rbErr := s.store.Update(id, rec); rbErr != nil {
			s.log.Error().Err(rbErr).Str("id", id).Msg("rollback after ledger write failure")
		}
		return 0, err
	}

	s.log.Info().
		Str("id", id).
		Int("amount", rec.Fees).
		Int("balance", s.ledger.Balance()).
		Msg("fees collected")
	return s.ledger.Balance(), nil
}

// ListStudents returns all records in store order.
func (s *RegistryService) ListStudents() []store.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// UnpaidStudents returns the records with outstanding fees, in store order.
func (s *RegistryService) UnpaidStudents() []store.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var unpaid []store.Entry
	for _, e := range s.store.List() {
		if !e.Student.FeePaid {
			unpaid = append(unpaid, e)
		}
	}
	return unpaid
}

// Balance returns the collected fee total.
func (s *RegistryService) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balance()
}

// Count returns the number of registered students.
func (s *RegistryService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// eligibleCourses returns the requested courses not already held, in
// request order, with repeats within the request dropped.
func eligibleCourses(current, requested []string) []string {
	seen := make(map[string]struct{}, len(current))
	for _, c := range current {
		seen[c] = struct{}{}
	}

	var eligible []string
	for _, c := range requested {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		eligible = append(eligible, c)
	}
	return eligible
}
