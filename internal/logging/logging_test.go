package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetGlobal(t *testing.T) {
	t.Cleanup(func() {
		globalLogger = nil
	})
}

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLIsNopBeforeInit(t *testing.T) {
	resetGlobal(t)
	globalLogger = nil

	assert.NotNil(t, L())
	assert.NotNil(t, S())
	assert.NoError(t, Sync())
}

func TestInitWritesJSONToFile(t *testing.T) {
	resetGlobal(t)
	path := filepath.Join(t.TempDir(), "inboxzero.log")

	require.NoError(t, Init(Config{Level: "info", Format: "json", OutputPath: path}))
	L().Debug("hidden")
	L().Info("moved file", zap.String("from", "/in/a.txt"))
	_ = Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "moved file", entries[0]["msg"])
	assert.Equal(t, "/in/a.txt", entries[0]["from"])
}

func TestSetLevel(t *testing.T) {
	resetGlobal(t)
	path := filepath.Join(t.TempDir(), "inboxzero.log")

	require.NoError(t, Init(Config{Level: "warn", Format: "json", OutputPath: path}))
	L().Info("before")
	SetLevel("debug")
	L().Debug("after")
	SetLevel("not-a-level")
	L().Debug("still debug")
	_ = Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "after", entries[0]["msg"])
	assert.Equal(t, "still debug", entries[1]["msg"])
}

func TestInitFallsBackToInfo(t *testing.T) {
	resetGlobal(t)
	path := filepath.Join(t.TempDir(), "inboxzero.log")

	require.NoError(t, Init(Config{Level: "loud", Format: "json", OutputPath: path}))
	L().Debug("dropped")
	L().Info("kept")
	_ = Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
}

func TestWithRunID(t *testing.T) {
	resetGlobal(t)
	path := filepath.Join(t.TempDir(), "inboxzero.log")
	require.NoError(t, Init(Config{Level: "info", Format: "json", OutputPath: path}))

	ctx := WithRunID(context.Background(), "run-123")
	assert.Equal(t, "run-123", RunID(ctx))
	assert.Equal(t, "", RunID(context.Background()))

	WithContext(ctx).Info("scan finished")
	_ = Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "run-123", entries[0]["run_id"])
}
