package lifecycle

import (
	"context"
	"time"

	"vet-clinic-server/internal/models"
)

// Action names a transition.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionConfirm    Action = "confirm"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionReject     Action = "reject"
	ActionReschedule Action = "reschedule"
)

// Actions lists every transition in a stable order.
var Actions = []Action{
	ActionApprove,
	ActionConfirm,
	ActionComplete,
	ActionCancel,
	ActionReject,
	ActionReschedule,
}

// Persister durably saves a mutated appointment.
type Persister interface {
	Persist(ctx context.Context, appt *models.Appointment) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, appt *models.Appointment) error

func (f PersisterFunc) Persist(ctx context.Context, appt *models.Appointment) error {
	return f(ctx, appt)
}

// ApproveInput carries the optional data set on approval. Nil fields fall
// back to a zero fee and empty notes.
type ApproveInput struct {
	ConsultationFee   *float64
	VeterinarianNotes *string
}

// CompleteInput carries the clinical findings recorded on completion.
type CompleteInput struct {
	Diagnosis         string
	Treatment         string
	FollowUpRequired  *bool
	VeterinarianNotes string
}

// RescheduleInput carries the new slot and an optional reason.
type RescheduleInput struct {
	Date   time.Time
	Time   string
	Reason string
}

// State is the behaviour of an appointment in one status. Methods that are not
// legal from that status return a *TransitionError. On success the bound
// appointment has been mutated and persisted and is returned.
type State interface {
	Status() models.AppointmentStatus
	Approve(ctx context.Context, in ApproveInput) (*models.Appointment, error)
	Confirm(ctx context.Context) (*models.Appointment, error)
	Complete(ctx context.Context, in CompleteInput) (*models.Appointment, error)
	Cancel(ctx context.Context, reason string) (*models.Appointment, error)
	Reject(ctx context.Context, reason string) (*models.Appointment, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*models.Appointment, error)
}

// record binds a state to the caller's appointment and its collaborators.
type record struct {
	appt    *models.Appointment
	persist Persister
	now     func() time.Time
}

// commit applies mutate to a copy of the appointment and persists the copy.
// The caller's appointment is only overwritten once the write succeeded.
func (r record) commit(ctx context.Context, mutate func(a *models.Appointment)) (*models.Appointment, error) {
	next := *r.appt
	mutate(&next)

	if err := r.persist.Persist(ctx, &next); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	*r.appt = next
	return r.appt, nil
}

// baseState rejects every transition. Variants embed it and override the
// methods legal from their status.
type baseState struct {
	record
	status models.AppointmentStatus
}

func (s *baseState) Status() models.AppointmentStatus {
	return s.status
}

func (s *baseState) invalid(action Action) error {
	return &TransitionError{From: s.appt.Status, Action: action}
}

func (s *baseState) Approve(context.Context, ApproveInput) (*models.Appointment, error) {
	return nil, s.invalid(ActionApprove)
}

func (s *baseState) Confirm(context.Context) (*models.Appointment, error) {
	return nil, s.invalid(ActionConfirm)
}

func (s *baseState) Complete(context.Context, CompleteInput) (*models.Appointment, error) {
	return nil, s.invalid(ActionComplete)
}

func (s *baseState) Cancel(context.Context, string) (*models.Appointment, error) {
	return nil, s.invalid(ActionCancel)
}

func (s *baseState) Reject(context.Context, string) (*models.Appointment, error) {
	return nil, s.invalid(ActionReject)
}

func (s *baseState) Reschedule(context.Context, RescheduleInput) (*models.Appointment, error) {
	return nil, s.invalid(ActionReschedule)
}
