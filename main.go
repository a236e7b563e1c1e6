package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vet-clinic-server/internal/config"
	"vet-clinic-server/internal/handlers"
	"vet-clinic-server/internal/logger"
	"vet-clinic-server/internal/middleware"
	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/repository"
	"vet-clinic-server/internal/routes"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("error loading .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("error loading config", "error", err)
		os.Exit(1)
	}

	log := logger.Configure(logger.Options{
		JSON:     cfg.Log.JSON,
		MinLevel: cfg.Log.Level,
	})

	db, err := models.InitDB(models.DatabaseConfig{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Error("error connecting to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}

	users := repository.NewUsers(db)
	if cfg.Admin.Email != "" {
		created, err := handlers.EnsureAdmin(context.Background(), users, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Error("error seeding admin account", "email", cfg.Admin.Email, "error", err)
			os.Exit(1)
		}
		if created {
			log.Info("admin account created", "email", cfg.Admin.Email)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Dependencies{
		Appointments: repository.NewAppointments(db),
		Users:        users,
		Logger:       log,
	}, cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("server starting", "addr", serverAddr, "environment", cfg.Environment)
	if err := router.Run(serverAddr); err != nil {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
