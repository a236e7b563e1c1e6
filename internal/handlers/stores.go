package handlers

import (
	"context"

	"vet-clinic-server/internal/lifecycle"
	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/repository"
)

// AppointmentStore is the persistence the appointment handlers need.
// *repository.Appointments implements it.
type AppointmentStore interface {
	lifecycle.Persister
	Create(ctx context.Context, appt *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error)
}

// UserStore is the account persistence the handlers need.
// *repository.Users implements it.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

var (
	_ AppointmentStore = (*repository.Appointments)(nil)
	_ UserStore        = (*repository.Users)(nil)
)
