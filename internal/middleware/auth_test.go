package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-server/internal/config"
	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(cfg *config.Config, roles ...models.Role) *gin.Engine {
	router := gin.New()
	router.GET("/private", AuthMiddleware(cfg), RoleAuthMiddleware(roles...), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		role, _ := GetUserRoleFromContext(c)
		c.String(http.StatusOK, userID+":"+string(role))
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 5}
	vet := &models.User{Role: models.RoleVeterinarian}
	vet.ID = "vet-1"

	token, err := utils.GenerateAccessToken(vet, cfg)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		roles  []models.Role
		status int
		body   string
	}{
		{name: "missing header", roles: []models.Role{models.RoleVeterinarian}, status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", roles: []models.Role{models.RoleVeterinarian}, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", roles: []models.Role{models.RoleVeterinarian}, status: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer " + token, roles: []models.Role{models.RoleAdmin}, status: http.StatusForbidden},
		{name: "allowed", header: "Bearer " + token, roles: []models.Role{models.RoleAdmin, models.RoleVeterinarian}, status: http.StatusOK, body: "vet-1:veterinarian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			newRouter(cfg, tt.roles...).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		token  string
		err    error
	}{
		{header: "", err: errNoCredentials},
		{header: "Bearer", err: errBadScheme},
		{header: "Bearer ", err: errBadScheme},
		{header: "Basic abc", err: errBadScheme},
		{header: "Bearer a b", err: errBadScheme},
		{header: "Bearer abc", token: "abc"},
		{header: "bearer abc", token: "abc"},
	}

	for _, tt := range tests {
		token, err := bearerToken(tt.header)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.token, token)
	}
}
