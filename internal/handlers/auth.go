package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"vet-clinic-server/internal/config"
	"vet-clinic-server/internal/middleware"
	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/repository"
	"vet-clinic-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Users UserStore
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Cfg: cfg}
}

// RegisterRequest represents the request body for user registration.
// Admin accounts are never self-registered; see EnsureAdmin.
type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=owner veterinarian"`
	PhoneNumber string `json:"phoneNumber"`
	Specialty   string `json:"specialty"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return // Error response handled by BindAndValidate
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	if _, err := h.Users.FindByEmail(c.Request.Context(), email); err == nil {
		utils.Conflict(c, "User with this email already exists")
		return
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		Role:        models.Role(req.Role),
		PhoneNumber: req.PhoneNumber,
		Specialty:   req.Specialty,
	}

	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User registered successfully", user.Sanitize())
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string               `json:"accessToken"`
	User        models.UserSanitized `json:"user"`
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: accessToken,
		User:        user.Sanitize(),
	})
}

// GetProfile returns the authenticated user.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}
