package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"vet-clinic-server/internal/config"
	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/utils"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

var (
	errNoCredentials = errors.New("missing bearer token")
	errBadScheme     = errors.New("authorization must use the Bearer scheme")
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoCredentials
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.Contains(token, " ") {
		return "", errBadScheme
	}
	return token, nil
}

// AuthMiddleware rejects requests without a valid access token and stores
// the caller identity for the handlers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			utils.Unauthorized(c, err.Error())
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "access token rejected: "+err.Error())
			c.Abort()
			return
		}

		SetIdentity(c, claims.UserID, claims.Role)
		c.Next()
	}
}

// RoleAuthMiddleware lets through callers holding one of roles.
// Mount it behind AuthMiddleware.
func RoleAuthMiddleware(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			utils.InternalServerError(c, "caller identity missing from request context")
			c.Abort()
			return
		}

		if !slices.Contains(roles, role) {
			utils.Forbidden(c, "role "+string(role)+" may not use this endpoint")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user ID.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	return id, id != ""
}

// GetUserRoleFromContext returns the authenticated user role.
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	role, ok := c.Get(userRoleKey)
	if !ok {
		return "", false
	}
	r, ok := role.(models.Role)
	return r, ok
}

// SetIdentity stores the caller identity the way AuthMiddleware does.
func SetIdentity(c *gin.Context, userID string, role models.Role) {
	c.Set(userIDKey, userID)
	c.Set(userRoleKey, role)
}
