package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Options{JSON: true, MinLevel: slog.LevelInfo, Output: &buf})

	logger.Debug("hidden")
	logger.Info("appointment transition applied", "action", "approve")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "appointment transition applied", entry["msg"])
	assert.Equal(t, "approve", entry["action"])
	assert.Equal(t, "vet-clinic-server", entry["service"])
}

func TestConfigureText(t *testing.T) {
	var buf bytes.Buffer
	logger := Configure(Options{MinLevel: slog.LevelWarn, Output: &buf})

	logger.Info("hidden")
	logger.Warn("unknown appointment status")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `msg="unknown appointment status"`)
}
