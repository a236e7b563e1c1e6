package lifecycle

import (
	"errors"
	"fmt"

	"vet-clinic-server/internal/models"
)

var (
	// ErrInvalidTransition is returned when the appointment's current status
	// does not permit the requested action.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrPersistenceFailure marks errors coming from the Persister.
	ErrPersistenceFailure = errors.New("persistence failure")
	// ErrMissingFindings is returned by Complete when the diagnosis or the
	// treatment is empty after trimming.
	ErrMissingFindings = errors.New("diagnosis and treatment are required to complete an appointment")
	// ErrUnknownAction is returned by Machine.Apply for an unrecognised action name.
	ErrUnknownAction = errors.New("unknown action")
)

// TransitionError describes a rejected transition. It matches ErrInvalidTransition.
type TransitionError struct {
	From   models.AppointmentStatus
	Action Action
}

func (e *TransitionError) Error() string {
	from := string(e.From)
	if from == "" {
		from = "<none>"
	}
	return fmt.Sprintf("invalid transition: cannot %s an appointment in status %s", e.Action, from)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PersistenceError wraps a failed write. It matches both ErrPersistenceFailure
// and the underlying error.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersistenceFailure, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailure, e.Err}
}
