package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "startup")

	logger.Info("profile applied", "profile", "fast.yaml")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "startup", record["component"])
	assert.Equal(t, "interpreter", record["system"])
	assert.Equal(t, "fast.yaml", record["profile"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, "startup")

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "startup").WithComponent("binder")
	logger.Info("bound")
	assert.Contains(t, buf.String(), `"subcomponent":"binder"`)
}

func TestOpenFileAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := OpenFile(dir, slog.LevelInfo, "main")
	require.NoError(t, err)
	logger.Info("first")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "interpreter.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("nonsense"))
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Info("nothing") })
}

func TestLevelVarRaisesVerbosityLater(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := New(&buf, level, "startup")

	logger.Debug("before")
	level.Set(slog.LevelDebug)
	logger.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}
