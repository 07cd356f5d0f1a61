package scratch

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// Provisioner creates and destroys isolated scratch space on the local filesystem
type Provisioner struct {
	tempRoot string
}

// Compile-time interface verification
var (
	_ ports.PortAllocator      = (*Provisioner)(nil)
	_ ports.ScratchProvisioner = (*Provisioner)(nil)
)

// NewProvisioner returns a provisioner allocating below tempRoot,
// or below the OS temp directory when tempRoot is empty.
func NewProvisioner(tempRoot string) *Provisioner {
	return &Provisioner{tempRoot: tempRoot}
}

// AllocateScratchDir creates a fresh uniquely named directory. Uniqueness
// comes from os.MkdirTemp, so concurrent callers never collide.
func (p *Provisioner) AllocateScratchDir(prefix string) (domain.ScratchEnvironment, error) {
	dir, err := os.MkdirTemp(p.tempRoot, prefix+"*")
	if err != nil {
		return domain.ScratchEnvironment{}, fmt.Errorf("failed to allocate scratch dir: %w", err)
	}
	logging.Logger.Debug("Allocated scratch dir", "path", dir)
	return domain.ScratchEnvironment{
		CreatedAt: time.Now(),
		Root:      dir,
	}, nil
}

// ReleaseScratchDir removes a scratch directory and everything below it
func (p *Provisioner) ReleaseScratchDir(env domain.ScratchEnvironment) error {
	if env.Root == "" {
		return nil
	}
	if err := os.RemoveAll(env.Root); err != nil {
		return fmt.Errorf("failed to remove scratch dir %s: %w", env.Root, err)
	}
	logging.Logger.Debug("Released scratch dir", "path", env.Root, "age", time.Since(env.CreatedAt))
	return nil
}

// LockSession takes the exclusive session lock at path. The returned
// function releases it.
func (p *Provisioner) LockSession(path string) (func() error, error) {
	lock, err := AcquireSessionLock(path)
	if err != nil {
		return nil, err
	}
	return lock.Release, nil
}

// AllocateUnusedPort probes localhost TCP ports from start to end inclusive
// and returns the first one that can be bound. The probe listener is closed
// before returning: the port is not reserved and another process may take it
// before the caller binds it.
func (p *Provisioner) AllocateUnusedPort(start, end int) (int, bool) {
	return AllocateUnusedPort(start, end)
}

// AllocateUnusedPort is the package level form of Provisioner.AllocateUnusedPort
func AllocateUnusedPort(start, end int) (int, bool) {
	for port := start; port <= end; port++ {
		l, err := net.Listen("tcp", net.JoinHostPort("localhost", strconv.Itoa(port)))
		if err != nil {
			continue
		}
		if err := l.Close(); err != nil {
			logging.Logger.Warn("Failed to close port probe", "port", port, "error", err)
		}
		return port, true
	}
	return 0, false
}

// ResetNamedDirectories ensures every path exists and is empty
func (p *Provisioner) ResetNamedDirectories(paths ...string) error {
	return ResetNamedDirectories(paths...)
}

// ResetNamedDirectories is the package level form of Provisioner.ResetNamedDirectories
func ResetNamedDirectories(paths ...string) error {
	for _, path := range paths {
		if err := EnsureDir(path); err != nil {
			return err
		}
		if err := ClearFolder(path); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates path and its parents if needed
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ClearFolder removes every entry inside path. A missing folder is not an error.
func ClearFolder(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	for _, entry := range entries {
		target := filepath.Join(path, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove %s: %w", target, err)
		}
	}

	if len(entries) > 0 {
		logging.Logger.Debug("Cleared directory", "path", path, "removed", len(entries))
	}
	return nil
}

// DirIsEmpty reports whether path has no entries
func DirIsEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
