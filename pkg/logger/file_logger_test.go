package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewFileLoggerWritesJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "client.log")
	l, err := NewFileLogger(path, "info")
	require.NoError(t, err)

	InfoRequest(l, "api request", "trace-1", "GET", "/book/1", 200, 15*time.Millisecond)
	require.True(t, ErrorRequest(l, errors.New("boom"), "api request failed", "trace-2", "POST", "/book/create", time.Millisecond))
	l.Debug("hidden")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"trace_id":"trace-1"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.NotContains(t, out, "hidden")
}

func TestNewFileLoggerDisabled(t *testing.T) {
	t.Parallel()

	l, err := NewFileLogger("", "info")
	require.NoError(t, err)
	MakeInfo(l, "dropped")
}

func TestNewFileLoggerRejectsLevel(t *testing.T) {
	t.Parallel()

	_, err := NewFileLogger(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.Error(t, err)
}

func TestCheckError(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckError(nil, zap.NewNop(), "unused"))
	assert.True(t, CheckError(errors.New("x"), nil, "no logger"))
}
