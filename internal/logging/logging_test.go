package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSetsDefaultLoggers(t *testing.T) {
	Init()

	require.NotNil(t, Structured())
	require.NotNil(t, HumanReadable())
}

func TestSetOutputCapturesStructuredJSON(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)

	Structured().Info("spectrum loaded", "channels", 1024)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "spectrum loaded", entry["msg"])
	assert.EqualValues(t, 1024, entry["channels"])
}

func TestTraceUsesCustomLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level:       LevelTrace,
		ReplaceAttr: replaceLevelNames,
	}))

	logger.Log(context.Background(), LevelTrace, "convolution pass")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "TRACE", entry["level"])
}

func TestTraceFilteredAtDefaultLevel(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)

	Trace("convolution pass")
	assert.Zero(t, structured.Len(), "trace is below the default debug level")
}

func TestForServiceAddsServiceAttribute(t *testing.T) {
	var structured, human bytes.Buffer
	SetOutput(&structured, &human)

	logger := ForService("analysis")
	require.NotNil(t, logger)
	logger.Info("run complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(structured.Bytes(), &entry))
	assert.Equal(t, "analysis", entry["service"])
}

func TestNewFileLoggerWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "analysis.log")

	logger, closeFn, err := NewFileLogger(logPath, "analysis", slog.LevelDebug)
	require.NoError(t, err)
	require.NotNil(t, logger)
	defer func() {
		assert.NoError(t, closeFn())
	}()

	logger.Info("file sink check", "detector", "alphahound")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "file sink check", entry["msg"])
	assert.Equal(t, "analysis", entry["service"])
	assert.Equal(t, "alphahound", entry["detector"])
}
