package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), "input %q", input)
	}
}

func TestLevelBasedMuxHandler_RoutesByLevel(t *testing.T) {
	var stdout, file bytes.Buffer
	log := slog.New(NewLevelBasedMuxHandler(&stdout, &file, slog.LevelDebug))

	log.Debug("debug only on stdout")
	log.Info("info everywhere", slog.String("component", "test"))

	stdoutLines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	fileLines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, stdoutLines, 2)
	require.Len(t, fileLines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(fileLines[0]), &entry))
	assert.Equal(t, "info everywhere", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, slog.SourceKey)
}

func TestLevelBasedMuxHandler_RespectsLevel(t *testing.T) {
	var stdout, file bytes.Buffer
	log := slog.New(NewLevelBasedMuxHandler(&stdout, &file, slog.LevelWarn))

	log.Info("dropped")
	log.Warn("kept")

	assert.NotContains(t, stdout.String(), "dropped")
	assert.NotContains(t, file.String(), "dropped")
	assert.Contains(t, stdout.String(), "kept")
	assert.Contains(t, file.String(), "kept")
}

func TestLevelBasedMuxHandler_WithAttrs(t *testing.T) {
	var stdout, file bytes.Buffer
	log := slog.New(NewLevelBasedMuxHandler(&stdout, &file, slog.LevelInfo)).
		With(slog.String("trace_id", "abc"))

	log.Info("hello")

	assert.Contains(t, stdout.String(), `"trace_id":"abc"`)
	assert.Contains(t, file.String(), `"trace_id":"abc"`)
}
