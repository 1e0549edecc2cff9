package logger

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

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(&Options{LogLevel: "warn", LogFormat: "JSON"}, &buf)
	defer closer()

	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "v", line["k"])
}

func TestNewFallbacks(t *testing.T) {
	var buf bytes.Buffer
	options := &Options{LogLevel: "loud", LogFormat: "xml"}
	logger, closer := newLogger(options, &buf)
	defer closer()

	assert.Empty(t, options.LogLevel)
	assert.Equal(t, "text", options.LogFormat)
	assert.Contains(t, buf.String(), "could not parse logger format")
	assert.Contains(t, buf.String(), "could not parse logger level")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	logger, closer := newLogger(&Options{LogFile: path, LogFormat: "text"}, nil)
	logger.Info("to file")
	require.NoError(t, closer())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=\"to file\"")
}

func TestNewFileUnavailable(t *testing.T) {
	var buf bytes.Buffer
	options := &Options{LogFile: filepath.Join(t.TempDir(), "missing", "service.log"), LogFormat: "text"}
	_, closer := newLogger(options, &buf)
	defer closer()

	assert.Empty(t, options.LogFile)
	assert.Contains(t, buf.String(), "could not open logger file")
}

func TestNewDevNull(t *testing.T) {
	logger, closer := newLogger(&Options{LogFile: os.DevNull}, nil)
	defer closer()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
