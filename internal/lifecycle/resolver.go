package lifecycle

import (
	"log/slog"
	"time"

	"vet-clinic-server/internal/models"
)

var variants = map[models.AppointmentStatus]func(b baseState) State{
	models.StatusPending:   func(b baseState) State { return &pendingState{b} },
	models.StatusApproved:  func(b baseState) State { return &approvedState{b} },
	models.StatusConfirmed: func(b baseState) State { return &confirmedState{b} },
	models.StatusCompleted: func(b baseState) State { return &completedState{b} },
	models.StatusCancelled: func(b baseState) State { return &cancelledState{b} },
	models.StatusRejected:  func(b baseState) State { return &rejectedState{b} },
}

// Resolve returns the state for appt's current status, bound to appt itself.
// An unknown or empty status resolves to the pending state.
func Resolve(appt *models.Appointment, p Persister) State {
	return resolve(record{appt: appt, persist: p, now: time.Now}, slog.Default())
}

func resolve(r record, logger *slog.Logger) State {
	status := r.appt.Status
	newState, ok := variants[status]
	if !ok {
		// TODO: confirm with the clinic whether an unknown status should be rejected instead.
		logger.Warn("unknown appointment status, treating as pending",
			"appointment_id", r.appt.ID,
			"status", string(status))

		status = models.StatusPending
		newState = variants[status]
	}

	return newState(baseState{record: r, status: status})
}

var allowed = map[models.AppointmentStatus][]Action{
	models.StatusPending:   {ActionApprove, ActionReschedule},
	models.StatusApproved:  {ActionConfirm, ActionComplete, ActionCancel, ActionReschedule},
	models.StatusConfirmed: {ActionComplete, ActionCancel, ActionReschedule},
}

// AllowedActions lists the transitions the state for status accepts.
// Terminal statuses return an empty list.
func AllowedActions(status models.AppointmentStatus) []Action {
	if _, ok := variants[status]; !ok {
		status = models.StatusPending
	}

	actions := make([]Action, 0, len(allowed[status]))
	return append(actions, allowed[status]...)
}
