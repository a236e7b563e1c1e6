package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vet-clinic-server/internal/models"
)

// Request is one transition to apply. Only the fields relevant to Action are read.
type Request struct {
	Action     Action
	Approve    ApproveInput
	Complete   CompleteInput
	Reschedule RescheduleInput
	// Reason is used by cancel and reject.
	Reason string
}

// Machine dispatches transition requests onto the state of an appointment.
// It holds no per-appointment data; the caller owns the record for the
// duration of Apply.
type Machine struct {
	persister Persister
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the time source used for CompletedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// NewMachine creates a Machine that saves appointments through p.
func NewMachine(p Persister, opts ...Option) *Machine {
	m := &Machine{
		persister: p,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve returns the state for appt bound to this machine's collaborators.
func (m *Machine) Resolve(appt *models.Appointment) State {
	return resolve(record{appt: appt, persist: m.persister, now: m.now}, m.logger)
}

// Apply resolves the state of appt and runs the requested transition on it.
func (m *Machine) Apply(ctx context.Context, appt *models.Appointment, req Request) (*models.Appointment, error) {
	from := appt.Status
	state := m.Resolve(appt)

	var (
		updated *models.Appointment
		err     error
	)
	switch req.Action {
	case ActionApprove:
		updated, err = state.Approve(ctx, req.Approve)
	case ActionConfirm:
		updated, err = state.Confirm(ctx)
	case ActionComplete:
		updated, err = state.Complete(ctx, req.Complete)
	case ActionCancel:
		updated, err = state.Cancel(ctx, req.Reason)
	case ActionReject:
		updated, err = state.Reject(ctx, req.Reason)
	case ActionReschedule:
		updated, err = state.Reschedule(ctx, req.Reschedule)
	default:
		return nil, ErrUnknownAction
	}

	log := m.logger.With(
		"appointment_id", appt.ID,
		"action", string(req.Action),
		"from", string(from))

	switch {
	case err == nil:
		transitionsTotal.WithLabelValues(string(req.Action), string(from), outcomeApplied).Inc()
		log.Info("appointment transition applied", "to", string(updated.Status))
	case errors.Is(err, ErrInvalidTransition):
		transitionsTotal.WithLabelValues(string(req.Action), string(from), outcomeInvalid).Inc()
		log.Debug("appointment transition rejected", "error", err)
	case errors.Is(err, ErrPersistenceFailure):
		transitionsTotal.WithLabelValues(string(req.Action), string(from), outcomePersistFailed).Inc()
		log.Error("failed to persist appointment transition", "error", err)
	default:
		transitionsTotal.WithLabelValues(string(req.Action), string(from), outcomeBadInput).Inc()
		log.Debug("appointment transition input rejected", "error", err)
	}

	return updated, err
}
