package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	JWTSecret            string
	JWTExpirationMinutes int
	Database             DatabaseConfig
	Log                  LogConfig
	Admin                AdminConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	Username     string
	Password     string
	Name         string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// AdminConfig names the administrator account seeded at startup.
// Both fields empty means no seeding.
type AdminConfig struct {
	Email    string
	Password string
}

// LogConfig holds logging options
type LogConfig struct {
	Level slog.Level
	JSON  bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := getEnv("DB_DRIVER", "mysql")

	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultDBPort(driver)),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "vetclinic"),
	}

	// DB_DSN wins over the individual DB_* settings when present.
	dbConfig.DSN = os.Getenv("DB_DSN")
	if dbConfig.DSN == "" {
		dsn, err := buildDSN(dbConfig)
		if err != nil {
			return nil, err
		}
		dbConfig.DSN = dsn
	}

	var err error

	if dbConfig.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if dbConfig.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 25); err != nil {
		return nil, err
	}

	jwtExpMinutes, err := getEnvInt("JWT_EXPIRATION_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	logConfig, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	admin := AdminConfig{
		Email:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	if (admin.Email == "") != (admin.Password == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return &Config{
		Port:                 getEnv("PORT", "3001"),
		Origin:               getEnv("ORIGIN", "http://localhost:4200"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Database:             dbConfig,
		Log:                  logConfig,
		Admin:                admin,
	}, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func loadLogConfig() (LogConfig, error) {
	var cfg LogConfig

	if err := cfg.Level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	jsonOutput, err := strconv.ParseBool(getEnv("LOG_JSON", "false"))
	if err != nil {
		return cfg, fmt.Errorf("invalid LOG_JSON: %w", err)
	}
	cfg.JSON = jsonOutput

	return cfg, nil
}

func defaultDBPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

// buildDSN builds the Data Source Name for the configured driver
func buildDSN(db DatabaseConfig) (string, error) {
	switch strings.ToLower(db.Driver) {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			db.Username, db.Password, db.Host, db.Port, db.Name), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			db.Host, db.Port, db.Username, db.Password, db.Name), nil
	default:
		return "", fmt.Errorf("invalid DB_DRIVER %q: expected mysql or postgres", db.Driver)
	}
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
