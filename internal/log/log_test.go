package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodreel/moodreel/internal/config"
)

func TestSetupLoggerWritesJSON(t *testing.T) {
	cfg := &config.LoggingConfig{
		File:  filepath.Join(t.TempDir(), "nested", "app.log"),
		Level: "DEBUG",
	}

	logger, err := SetupLogger(cfg)
	require.NoError(t, err)

	logger.Debug("hello", "n", 1)

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}

func TestSetupLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	cfg := &config.LoggingConfig{
		File:  filepath.Join(t.TempDir(), "app.log"),
		Level: "verbose",
	}

	logger, err := SetupLogger(cfg)
	require.NoError(t, err)

	logger.Debug("too quiet")
	logger.Info("loud enough")

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "too quiet")
	assert.Contains(t, string(data), "loud enough")
}

func TestExpandHomeLeavesPlainPaths(t *testing.T) {
	path, err := expandHome("/var/log/app.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/app.log", path)
}

func TestNullLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		NullLogger().Error("nothing to see")
	})
}
