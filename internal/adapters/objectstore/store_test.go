package objectstore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/config"
)

func TestFileStore_Put(t *testing.T) {
	src := filepath.Join(t.TempDir(), "default.pgo")
	require.NoError(t, os.WriteFile(src, []byte("profile"), 0644))
	root := t.TempDir()

	loc, err := NewFileStore(root).Put(context.Background(), "session-1/default.pgo", src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "session-1", "default.pgo"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "profile", string(data))
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	src := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))
	store := NewFileStore(t.TempDir())

	for _, key := range []string{"../outside", "a/../../outside"} {
		_, err := store.Put(context.Background(), key, src)
		assert.Error(t, err, key)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(t.TempDir()).Put(ctx, "k", "/nope")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyFile_KeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}
	src := filepath.Join(t.TempDir(), "gsa")
	require.NoError(t, os.WriteFile(src, []byte("bin"), 0755))
	dst := filepath.Join(t.TempDir(), "results", "gsa")

	require.NoError(t, CopyFile(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestNewMinIOStore_ValidatesConfig(t *testing.T) {
	_, err := NewMinIOStore(config.ObjectStoreConfig{Endpoint: "localhost:9000"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access key")

	store, err := NewMinIOStore(config.ObjectStoreConfig{
		AccessKey: "key",
		Bucket:    "covrun-artifacts",
		Endpoint:  "localhost:9000",
		Region:    "us-east-1",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "covrun-artifacts", store.bucket)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/octet-stream", contentType("/x/default.pgo"))
	assert.Contains(t, contentType("/x/report.html"), "text/html")
}
