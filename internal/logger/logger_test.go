package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temps.log")

	log, err := New(path, "debug")
	require.NoError(t, err)

	log.Info("temperature received", zap.Float64("celsius", 47.2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "temperature received")
	assert.Contains(t, string(data), "INFO")
	// File entries are timestamped (year prefix of the ISO8601 encoder).
	assert.Regexp(t, `^\d{4}-`, string(data))
}

func TestNewAppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temps.log")

	first, err := New(path, "info")
	require.NoError(t, err)
	first.Info("first run")

	second, err := New(path, "info")
	require.NoError(t, err)
	second.Info("second run")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "temps.log")

	log, err := New(path, "error")
	require.NoError(t, err)

	log.Info("quiet")
	log.Error("loud")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNewConsoleOnly(t *testing.T) {
	log, err := New("", "info")
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("console only")
}

func TestNewBadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "temps.log"), "info")
	assert.Error(t, err)
}
