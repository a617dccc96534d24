package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schoolhq/registrar/internal/idgen"
	"github.com/schoolhq/registrar/internal/service"
	"github.com/schoolhq/registrar/internal/store"
)

// errMessage maps core errors to the messages shown in the menu.
func errMessage(err error) string {
	var (
		invalid  *store.ValidationError
		notFound *store.NotFoundError
		corrupt  *store.CorruptDataError
	)

	switch {
	case errors.As(err, &invalid):
		return "Please check your input: " + strings.TrimPrefix(invalid.Error(), "invalid input: ")
	case errors.Is(err, idgen.ErrCapacityExceeded):
		return "The register has reached its limit. Cannot add more students"
	case errors.As(err, &notFound):
		return fmt.Sprintf("No student found with id %s", notFound.ID)
	case errors.Is(err, service.ErrNothingToEnroll):
		return "No courses left to enroll to"
	case errors.Is(err, service.ErrAlreadyPaid):
		return "Fees are already paid for this student"
	case errors.As(err, &corrupt):
		return "Stored data is unreadable: " + corrupt.Detail
	default:
		return err.Error()
	}
}
