package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMySQL(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USERNAME", "root")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "vetclinic")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_JSON", "false")
	t.Setenv("PORT", "3001")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "root:@tcp(localhost:3306)/vetclinic?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadConfigPostgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USERNAME", "clinic")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "vetclinic")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_JSON", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "host=db port=5432 user=clinic password=secret dbname=vetclinic sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadConfigExplicitDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "clinic:pw@tcp(db:3306)/vets")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_JSON", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "clinic:pw@tcp(db:3306)/vets", cfg.Database.DSN)
}

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	db := DatabaseConfig{Host: "db", Port: "5432", Username: "clinic", Password: "secret", Name: "vetclinic"}

	db.Driver = "postgres"
	dsn, err := buildDSN(db)
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=clinic password=secret dbname=vetclinic sslmode=disable", dsn)

	db.Driver = "mysql"
	dsn, err = buildDSN(db)
	require.NoError(t, err)
	assert.Equal(t, "clinic:secret@tcp(db:5432)/vetclinic?charset=utf8mb4&parseTime=True&loc=Local", dsn)

	db.Driver = "sqlite"
	_, err = buildDSN(db)
	require.Error(t, err)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("DB_MAX_IDLE_CONNS", "10")
	t.Setenv("JWT_EXPIRATION_MINUTES", "soon")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "JWT_EXPIRATION_MINUTES")
}

func TestLoadConfigRejectsBadLogLevel(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_EXPIRATION_MINUTES", "60")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "LOG_LEVEL")
}

func TestLoadConfigAdminSeed(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("JWT_EXPIRATION_MINUTES", "60")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_JSON", "false")
	t.Setenv("ADMIN_EMAIL", " Head@Clinic.example ")
	t.Setenv("ADMIN_PASSWORD", "change-me-now")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, AdminConfig{Email: "head@clinic.example", Password: "change-me-now"}, cfg.Admin)

	t.Setenv("ADMIN_PASSWORD", "")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "ADMIN_EMAIL and ADMIN_PASSWORD")
}
