package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"vet-clinic-server/internal/lifecycle"
	"vet-clinic-server/internal/middleware"
	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/repository"
	"vet-clinic-server/internal/utils"
)

const dateLayout = "2006-01-02"

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments AppointmentStore
	Users        UserStore
	Machine      *lifecycle.Machine
	// Now is used to reject bookings in the past.
	Now func() time.Time
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments AppointmentStore, users UserStore, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		Appointments: appointments,
		Users:        users,
		Machine:      lifecycle.NewMachine(appointments, lifecycle.WithLogger(logger)),
		Now:          time.Now,
	}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	VeterinarianID string `json:"veterinarianId" binding:"required,uuid"`
	// OwnerID is only honoured for admins booking on behalf of an owner.
	OwnerID string `json:"ownerId" binding:"omitempty,uuid"`
	PetName string `json:"petName" binding:"required,max=100"`
	Reason  string `json:"reason" binding:"max=255"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	Time    string `json:"time" binding:"required,datetime=15:04"`
}

// CreateAppointment books a new appointment in PENDING status.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	ownerID := userID
	if userRole == models.RoleAdmin {
		if req.OwnerID == "" {
			utils.BadRequest(c, "ownerId is required when booking as an admin")
			return
		}
		ownerID = req.OwnerID
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		utils.BadRequest(c, "Invalid date: "+err.Error())
		return
	}
	today := h.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		utils.BadRequest(c, "Appointment date must not be in the past.")
		return
	}

	vet, err := h.Users.FindByID(c.Request.Context(), req.VeterinarianID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "Veterinarian not found")
		} else {
			utils.InternalServerError(c, "Database error verifying veterinarian: "+err.Error())
		}
		return
	}
	if vet.Role != models.RoleVeterinarian {
		utils.NotFound(c, "Veterinarian not found")
		return
	}

	appointment := models.Appointment{
		OwnerID:        ownerID,
		VeterinarianID: vet.ID,
		PetName:        strings.TrimSpace(req.PetName),
		Reason:         req.Reason,
		Date:           datatypes.Date(date),
		Time:           req.Time,
		Status:         models.StatusPending,
	}

	if err := h.Appointments.Create(c.Request.Context(), &appointment); err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser returns the appointments visible to the caller.
// Owners see their own bookings, veterinarians their assigned ones, admins all.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var filter repository.AppointmentFilter
	switch userRole {
	case models.RoleOwner:
		filter.OwnerID = userID
	case models.RoleVeterinarian:
		filter.VeterinarianID = userID
	case models.RoleAdmin:
	default:
		utils.Forbidden(c, "User role not permitted to view appointments. Role: "+string(userRole))
		return
	}

	if status := c.Query("status"); status != "" {
		filter.Status = models.AppointmentStatus(strings.ToUpper(status))
		if !isKnownStatus(filter.Status) {
			utils.BadRequest(c, "Unknown status filter: "+status)
			return
		}
	}

	appointments, err := h.Appointments.List(c.Request.Context(), filter)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID returns one appointment to a participant or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointment, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && !appointment.IsParticipant(userID) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// ApproveRequest is the body of POST /appointments/:id/approve.
type ApproveRequest struct {
	ConsultationFee   *float64 `json:"consultationFee" binding:"omitempty,gte=0"`
	VeterinarianNotes *string  `json:"veterinarianNotes"`
}

// CompleteRequest is the body of POST /appointments/:id/complete.
type CompleteRequest struct {
	Diagnosis         string `json:"diagnosis"`
	Treatment         string `json:"treatment"`
	FollowUpRequired  *bool  `json:"followUpRequired"`
	VeterinarianNotes string `json:"veterinarianNotes"`
}

// ReasonRequest is the optional body of cancel and reject.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// RescheduleRequest is the body of POST /appointments/:id/reschedule.
type RescheduleRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string `json:"time" binding:"required,datetime=15:04"`
	Reason string `json:"reason" binding:"max=500"`
}

// Transition returns the handler for one lifecycle action.
func (h *AppointmentHandler) Transition(action lifecycle.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		appointment, ok := h.loadAppointment(c)
		if !ok {
			return
		}

		userID, _ := middleware.GetUserIDFromContext(c)
		userRole, _ := middleware.GetUserRoleFromContext(c)
		if !canPerform(action, appointment, userID, userRole) {
			utils.Forbidden(c, "You are not authorized to "+string(action)+" this appointment")
			return
		}

		req, ok := bindTransition(c, action)
		if !ok {
			return
		}

		updated, err := h.Machine.Apply(c.Request.Context(), appointment, req)
		if err != nil {
			respondTransitionError(c, appointment, err)
			return
		}

		utils.Success(c, "Appointment "+pastTense[action]+" successfully", updated)
	}
}

func (h *AppointmentHandler) loadAppointment(c *gin.Context) (*models.Appointment, bool) {
	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return nil, false
	}

	appointment, err := h.Appointments.FindByID(c.Request.Context(), appointmentID.String())
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return appointment, true
}

// canPerform decides who may drive each transition. Admins may do everything.
func canPerform(action lifecycle.Action, appt *models.Appointment, userID string, role models.Role) bool {
	if role == models.RoleAdmin {
		return true
	}

	isOwner := role == models.RoleOwner && userID == appt.OwnerID
	isVet := role == models.RoleVeterinarian && userID == appt.VeterinarianID

	switch action {
	case lifecycle.ActionApprove, lifecycle.ActionComplete, lifecycle.ActionReject:
		return isVet
	case lifecycle.ActionConfirm:
		return isOwner
	case lifecycle.ActionCancel, lifecycle.ActionReschedule:
		return isOwner || isVet
	default:
		return false
	}
}

func bindTransition(c *gin.Context, action lifecycle.Action) (lifecycle.Request, bool) {
	req := lifecycle.Request{Action: action}

	switch action {
	case lifecycle.ActionApprove:
		var body ApproveRequest
		if !bindOptional(c, &body) {
			return req, false
		}
		req.Approve = lifecycle.ApproveInput{
			ConsultationFee:   body.ConsultationFee,
			VeterinarianNotes: body.VeterinarianNotes,
		}
	case lifecycle.ActionComplete:
		var body CompleteRequest
		if !utils.BindAndValidate(c, &body) {
			return req, false
		}
		req.Complete = lifecycle.CompleteInput{
			Diagnosis:         body.Diagnosis,
			Treatment:         body.Treatment,
			FollowUpRequired:  body.FollowUpRequired,
			VeterinarianNotes: body.VeterinarianNotes,
		}
	case lifecycle.ActionCancel, lifecycle.ActionReject:
		var body ReasonRequest
		if !bindOptional(c, &body) {
			return req, false
		}
		req.Reason = strings.TrimSpace(body.Reason)
	case lifecycle.ActionReschedule:
		var body RescheduleRequest
		if !utils.BindAndValidate(c, &body) {
			return req, false
		}
		date, err := time.ParseInLocation(dateLayout, body.Date, time.UTC)
		if err != nil {
			utils.BadRequest(c, "Invalid date: "+err.Error())
			return req, false
		}
		req.Reschedule = lifecycle.RescheduleInput{
			Date:   date,
			Time:   body.Time,
			Reason: strings.TrimSpace(body.Reason),
		}
	}

	return req, true
}

// bindOptional binds a JSON body when one was sent.
func bindOptional(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return utils.BindAndValidate(c, obj)
}

// TransitionConflict is the payload returned with a 409 for an illegal transition.
type TransitionConflict struct {
	Status         models.AppointmentStatus `json:"status"`
	AllowedActions []lifecycle.Action       `json:"allowedActions"`
}

func respondTransitionError(c *gin.Context, appt *models.Appointment, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		utils.ErrorWithData(c, http.StatusConflict, err.Error(), TransitionConflict{
			Status:         appt.Status,
			AllowedActions: lifecycle.AllowedActions(appt.Status),
		})
	case errors.Is(err, lifecycle.ErrMissingFindings):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrStaleAppointment):
		utils.Conflict(c, "Appointment was modified by another request, reload and retry")
	default:
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
	}
}

func isKnownStatus(status models.AppointmentStatus) bool {
	switch status {
	case models.StatusPending, models.StatusApproved, models.StatusConfirmed,
		models.StatusCompleted, models.StatusCancelled, models.StatusRejected:
		return true
	default:
		return false
	}
}

var pastTense = map[lifecycle.Action]string{
	lifecycle.ActionApprove:    "approved",
	lifecycle.ActionConfirm:    "confirmed",
	lifecycle.ActionComplete:   "completed",
	lifecycle.ActionCancel:     "cancelled",
	lifecycle.ActionReject:     "rejected",
	lifecycle.ActionReschedule: "rescheduled",
}
