package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/renato0307/covrun/internal/ports"
)

// FileStore copies artifacts into a local directory
type FileStore struct {
	root string
}

// Compile-time interface verification
var _ ports.ArtifactStore = (*FileStore)(nil)

// NewFileStore stores artifacts below root
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Put copies the file at path to root/key and returns the destination path
func (s *FileStore) Put(ctx context.Context, key, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("artifact key %q escapes the store", key)
	}
	dest := filepath.Join(s.root, clean)

	if err := CopyFile(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// CopyFile copies src to dst keeping the source permissions, creating
// parent directories as needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
