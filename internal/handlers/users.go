package handlers

import (
	"github.com/gin-gonic/gin"

	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/utils"
)

// UserHandler handles user directory requests.
type UserHandler struct {
	Users UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// GetVeterinarians lists the veterinarians owners can book with.
func (h *UserHandler) GetVeterinarians(c *gin.Context) {
	vets, err := h.Users.ListByRole(c.Request.Context(), models.RoleVeterinarian)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch veterinarians: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(vets))
	for i, v := range vets {
		sanitized[i] = v.Sanitize()
	}

	utils.Success(c, "Veterinarians fetched successfully", sanitized)
}
