package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateLogs_RemovesOldestFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("log-%d.log", i))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		modTime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, modTime, modTime))
	}
	// Not a log file, must survive
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	require.NoError(t, rotateLogs(dir, 3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"log-3.log", "log-4.log", "notes.txt"}, names)
}

func TestRotateLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("x"), 0644))

	require.NoError(t, rotateLogs(dir, 10))

	_, err := os.Stat(filepath.Join(dir, "a.log"))
	assert.NoError(t, err)
}

func TestInitialize_DisabledDiscards(t *testing.T) {
	t.Setenv("COVRUN_DEBUG", "")
	t.Setenv("COVRUN_DEBUG_FILE", "")

	path, err := Initialize(false, "", 1000)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestInitialize_CustomFile(t *testing.T) {
	t.Setenv("COVRUN_DEBUG", "")
	t.Setenv("COVRUN_DEBUG_FILE", "")
	logFile := filepath.Join(t.TempDir(), "nested", "debug.log")

	path, err := Initialize(false, logFile, 1000)
	require.NoError(t, err)
	assert.Equal(t, logFile, path)

	Logger.Info("hello from test")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}
