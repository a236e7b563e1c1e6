package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vet-clinic-server/internal/models"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrStaleAppointment means the row changed since it was read.
	ErrStaleAppointment = errors.New("appointment was modified concurrently")
)

// AppointmentFilter narrows List. Empty fields are ignored.
type AppointmentFilter struct {
	OwnerID        string
	VeterinarianID string
	Status         models.AppointmentStatus
}

// Appointments stores appointments with gorm.
type Appointments struct {
	DB *gorm.DB
}

// NewAppointments creates an Appointments repository.
func NewAppointments(db *gorm.DB) *Appointments {
	return &Appointments{DB: db}
}

// Create inserts a new appointment.
func (r *Appointments) Create(ctx context.Context, appt *models.Appointment) error {
	if err := r.DB.WithContext(ctx).Omit("Owner", "Veterinarian").Create(appt).Error; err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// FindByID loads one appointment.
func (r *Appointments) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.DB.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return &appt, nil
}

// List returns the appointments matching filter ordered by slot.
func (r *Appointments) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := listQuery(r.DB.WithContext(ctx), filter).Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

func listQuery(tx *gorm.DB, filter AppointmentFilter) *gorm.DB {
	query := tx.Order("date asc, time asc")
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.VeterinarianID != "" {
		query = query.Where("veterinarian_id = ?", filter.VeterinarianID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

// Persist writes the lifecycle fields of appt if the stored version still
// matches appt.Version, then bumps the version on appt.
func (r *Appointments) Persist(ctx context.Context, appt *models.Appointment) error {
	result := persistQuery(r.DB.WithContext(ctx), appt)
	if result.Error != nil {
		return fmt.Errorf("update appointment %s: %w", appt.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleAppointment
	}

	appt.Version++
	return nil
}

func persistQuery(tx *gorm.DB, appt *models.Appointment) *gorm.DB {
	return tx.Model(&models.Appointment{}).
		Where("id = ? AND version = ?", appt.ID, appt.Version).
		Updates(map[string]interface{}{
			"status":             appt.Status,
			"date":               appt.Date,
			"time":               appt.Time,
			"consultation_fee":   appt.ConsultationFee,
			"veterinarian_notes": appt.VeterinarianNotes,
			"diagnosis":          appt.Diagnosis,
			"treatment":          appt.Treatment,
			"follow_up_required": appt.FollowUpRequired,
			"completed_at":       appt.CompletedAt,
			"version":            gorm.Expr("version + 1"),
		})
}
