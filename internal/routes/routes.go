package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vet-clinic-server/internal/config"
	"vet-clinic-server/internal/handlers"
	"vet-clinic-server/internal/lifecycle"
	"vet-clinic-server/internal/middleware"
	"vet-clinic-server/internal/models"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Appointments handlers.AppointmentStore
	Users        handlers.UserStore
	Logger       *slog.Logger
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(deps.Users, cfg)
	userHandler := handlers.NewUserHandler(deps.Users)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments, deps.Users, deps.Logger)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		private.GET("/auth/profile", authHandler.GetProfile)

		private.GET("/users/veterinarians", userHandler.GetVeterinarians)

		appointmentRoutes := private.Group("/appointments")
		{
			// Owners book for themselves, admins on behalf of an owner
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleAdmin), appointmentHandler.CreateAppointment)

			// Scoped by role inside the handler
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Lifecycle transitions; who may drive which one is decided in the handler
			for _, action := range lifecycle.Actions {
				appointmentRoutes.POST("/:id/"+string(action), appointmentHandler.Transition(action))
			}
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
