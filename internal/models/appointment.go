package models

import (
	"time"

	"gorm.io/datatypes"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusApproved  AppointmentStatus = "APPROVED"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusRejected  AppointmentStatus = "REJECTED"
)

// IsTerminal reports whether no further transitions are possible from s.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// Appointment represents a booked visit of a pet to a veterinarian.
// Status, Date, Time and the clinical fields are only changed through the
// lifecycle package.
type Appointment struct {
	BaseModel
	OwnerID        string `gorm:"size:36;index" json:"ownerId"`
	VeterinarianID string `gorm:"size:36;index" json:"veterinarianId"`
	PetName        string `gorm:"size:100" json:"petName"`
	Reason         string `gorm:"size:255" json:"reason"`

	Status            AppointmentStatus `gorm:"size:20;default:'PENDING';index" json:"status"`
	Date              datatypes.Date    `json:"date"`
	Time              string            `gorm:"size:5" json:"time"`
	ConsultationFee   float64           `gorm:"default:0" json:"consultationFee"`
	VeterinarianNotes string            `gorm:"type:text" json:"veterinarianNotes"`
	Diagnosis         string            `gorm:"type:text" json:"diagnosis"`
	Treatment         string            `gorm:"type:text" json:"treatment"`
	FollowUpRequired  bool              `gorm:"default:false" json:"followUpRequired"`
	CompletedAt       *time.Time        `json:"completedAt,omitempty"`

	// Version is bumped on every persisted transition and guards against lost updates.
	Version int `gorm:"not null;default:0" json:"version"`

	// Relations
	Owner        User `gorm:"foreignKey:OwnerID" json:"-"`
	Veterinarian User `gorm:"foreignKey:VeterinarianID" json:"-"`
}

// IsParticipant reports whether the user is the owner or the assigned veterinarian.
func (a *Appointment) IsParticipant(userID string) bool {
	return userID != "" && (userID == a.OwnerID || userID == a.VeterinarianID)
}
