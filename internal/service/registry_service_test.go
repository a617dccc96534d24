package service

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/schoolhq/registrar/internal/model"
	"github.com/schoolhq/registrar/internal/store"
)

func newTestService(t *testing.T) *RegistryService {
	t.Helper()

	dir := t.TempDir()
	studentsPath := filepath.Join(dir, "students.json")
	balancePath := filepath.Join(dir, "balance.json")

	if err := os.WriteFile(studentsPath, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write students file: %v", err)
	}
	if err := os.WriteFile(balancePath, []byte("0\n"), 0o644); err != nil {
		t.Fatalf("write balance file: %v", err)
	}

	st, err := store.Load(studentsPath)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	ledger, err := store.LoadLedger(balancePath)
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}

	return NewRegistryService(st, ledger, zerolog.Nop())
}

func addAnn(t *testing.T, svc *RegistryService) string {
	t.Helper()

	id, err := svc.AddStudent(model.AddStudentRequest{
		Name:    "Ann",
		Class:   "10",
		RollNo:  "12345",
		Courses: []string{"Math"},
	})
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	return id
}

func mustGet(t *testing.T, svc *RegistryService, id string) model.Student {
	t.Helper()

	for _, e := range svc.ListStudents() {
		if e.ID == id {
			return e.Student
		}
	}
	t.Fatalf("student %s not listed", id)
	return model.Student{}
}

// TestRegistrationAndBilling walks one student through the full lifecycle:
// register, enroll in an extra course, pay, then try to pay again.
func TestRegistrationAndBilling(t *testing.T) {
	svc := newTestService(t)

	id := addAnn(t, svc)
	rec := mustGet(t, svc, id)
	if rec.Fees != 100 {
		t.Errorf("fees after add = %d, want 100", rec.Fees)
	}
	if rec.FeePaid {
		t.Error("feePaid must start false")
	}

	if err := svc.Enroll(id, []string{"Math", "Art"}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	rec = mustGet(t, svc, id)
	if !reflect.DeepEqual(rec.Courses, []string{"Math", "Art"}) {
		t.Errorf("courses = %v, want [Math Art]", rec.Courses)
	}
	if rec.Fees != 200 {
		t.Errorf("fees after enroll = %d, want 200", rec.Fees)
	}
	if rec.FeePaid {
		t.Error("enrollment must reset feePaid")
	}

	balance, err := svc.PayFees(id)
	if err != nil {
		t.Fatalf("PayFees failed: %v", err)
	}
	if balance != 200 {
		t.Errorf("balance after payment = %d, want 200", balance)
	}
	if !mustGet(t, svc, id).FeePaid {
		t.Error("feePaid must be true after payment")
	}

	if _, err := svc.PayFees(id); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("second payment: expected ErrAlreadyPaid, got %v", err)
	}
	if svc.Balance() != 200 {
		t.Errorf("balance after rejected payment = %d, want 200", svc.Balance())
	}
}

func TestEnrollNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Enroll("00042", []string{"Math"})
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestEnrollNothingToEnroll(t *testing.T) {
	svc := newTestService(t)
	id := addAnn(t, svc)

	before := mustGet(t, svc, id)
	err := svc.Enroll(id, []string{"Math"})
	if !errors.Is(err, ErrNothingToEnroll) {
		t.Fatalf("expected ErrNothingToEnroll, got %v", err)
	}

	after := mustGet(t, svc, id)
	if after.Fees != before.Fees || after.FeePaid != before.FeePaid {
		t.Errorf("failed enroll mutated record: before %+v, after %+v", before, after)
	}
}

func TestEnrollResetsFeePaid(t *testing.T) {
	svc := newTestService(t)
	id := addAnn(t, svc)

	if _, err := svc.PayFees(id); err != nil {
		t.Fatalf("PayFees failed: %v", err)
	}
	if err := svc.Enroll(id, []string{"Art"}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}
	if mustGet(t, svc, id).FeePaid {
		t.Error("enroll after payment must reset feePaid to false")
	}
}

func TestEnrollSkipsHeldAndRepeatedCourses(t *testing.T) {
	svc := newTestService(t)
	id := addAnn(t, svc)

	if err := svc.Enroll(id, []string{"Math", "Art", "Art", "Science"}); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	rec := mustGet(t, svc, id)
	want := []string{"Math", "Art", "Science"}
	if !reflect.DeepEqual(rec.Courses, want) {
		t.Errorf("courses = %v, want %v", rec.Courses, want)
	}
	if rec.Fees != model.CourseFees(len(want)) {
		t.Errorf("fees = %d, want %d", rec.Fees, model.CourseFees(len(want)))
	}
}

func TestPayFeesNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.PayFees("00042")
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if svc.Balance() != 0 {
		t.Errorf("balance moved on failed payment: %d", svc.Balance())
	}
}

func TestUnpaidStudents(t *testing.T) {
	svc := newTestService(t)

	annID := addAnn(t, svc)
	bobID, err := svc.AddStudent(model.AddStudentRequest{
		Name:    "Bob",
		Class:   "11",
		RollNo:  "54321",
		Courses: []string{"Science"},
	})
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}

	if _, err := svc.PayFees(annID); err != nil {
		t.Fatalf("PayFees failed: %v", err)
	}

	unpaid := svc.UnpaidStudents()
	if len(unpaid) != 1 || unpaid[0].ID != bobID {
		t.Errorf("unpaid = %v, want only %s", unpaid, bobID)
	}
}
