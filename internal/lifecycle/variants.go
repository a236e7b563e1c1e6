package lifecycle

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"vet-clinic-server/internal/models"
)

type pendingState struct{ baseState }

func (s *pendingState) Approve(ctx context.Context, in ApproveInput) (*models.Appointment, error) {
	return s.commit(ctx, func(a *models.Appointment) {
		a.Status = models.StatusApproved
		a.ConsultationFee = 0
		if in.ConsultationFee != nil {
			a.ConsultationFee = *in.ConsultationFee
		}
		a.VeterinarianNotes = ""
		if in.VeterinarianNotes != nil {
			a.VeterinarianNotes = *in.VeterinarianNotes
		}
	})
}

// Reschedule moves the slot and leaves the status as stored.
func (s *pendingState) Reschedule(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	return s.commit(ctx, func(a *models.Appointment) {
		moveSlot(a, in)
	})
}

type approvedState struct{ baseState }

func (s *approvedState) Confirm(ctx context.Context) (*models.Appointment, error) {
	return s.commit(ctx, func(a *models.Appointment) {
		a.Status = models.StatusConfirmed
	})
}

func (s *approvedState) Cancel(ctx context.Context, reason string) (*models.Appointment, error) {
	return s.cancel(ctx, reason)
}

func (s *approvedState) Reschedule(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	return s.reschedule(ctx, in)
}

// Complete is legal straight from approved; confirmation is optional.
func (s *approvedState) Complete(ctx context.Context, in CompleteInput) (*models.Appointment, error) {
	return s.complete(ctx, in)
}

type confirmedState struct{ baseState }

func (s *confirmedState) Complete(ctx context.Context, in CompleteInput) (*models.Appointment, error) {
	return s.complete(ctx, in)
}

func (s *confirmedState) Cancel(ctx context.Context, reason string) (*models.Appointment, error) {
	return s.cancel(ctx, reason)
}

func (s *confirmedState) Reschedule(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	return s.reschedule(ctx, in)
}

// Terminal statuses keep every default.
type (
	completedState struct{ baseState }
	cancelledState struct{ baseState }
	rejectedState  struct{ baseState }
)

func (r record) cancel(ctx context.Context, reason string) (*models.Appointment, error) {
	return r.commit(ctx, func(a *models.Appointment) {
		a.Status = models.StatusCancelled
		if reason != "" {
			a.VeterinarianNotes = "Cancelled: " + reason
		}
	})
}

// reschedule sends an approved or confirmed appointment back to PENDING:
// a moved appointment has to be approved again.
func (r record) reschedule(ctx context.Context, in RescheduleInput) (*models.Appointment, error) {
	return r.commit(ctx, func(a *models.Appointment) {
		moveSlot(a, in)
		a.Status = models.StatusPending
	})
}

func moveSlot(a *models.Appointment, in RescheduleInput) {
	a.Date = datatypes.Date(in.Date)
	a.Time = in.Time
	if in.Reason != "" {
		a.VeterinarianNotes = "Rescheduled: " + in.Reason
	}
}

func (r record) complete(ctx context.Context, in CompleteInput) (*models.Appointment, error) {
	diagnosis := strings.TrimSpace(in.Diagnosis)
	treatment := strings.TrimSpace(in.Treatment)
	if diagnosis == "" || treatment == "" {
		return nil, ErrMissingFindings
	}

	completedAt := r.now()
	return r.commit(ctx, func(a *models.Appointment) {
		a.Status = models.StatusCompleted
		a.Diagnosis = diagnosis
		a.Treatment = treatment
		a.FollowUpRequired = in.FollowUpRequired != nil && *in.FollowUpRequired
		if notes := strings.TrimSpace(in.VeterinarianNotes); notes != "" {
			a.VeterinarianNotes = notes
		}
		a.CompletedAt = &completedAt
	})
}
