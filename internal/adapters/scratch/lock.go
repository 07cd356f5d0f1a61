package scratch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renato0307/covrun/internal/logging"
)

// ErrSessionLocked is returned when another session holds the lock
var ErrSessionLocked = errors.New("another covrun session is using the coverage directories")

// SessionLock is an exclusive advisory lock held for a session's lifetime.
// The shared coverage sink is reset once at session start and must not be
// reset by another session until this one finishes.
type SessionLock struct {
	file *os.File
}

// AcquireSessionLock takes the lock at path without waiting
func AcquireSessionLock(path string) (*SessionLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := tryLockFile(file); err != nil {
		file.Close()
		if errors.Is(err, errWouldBlock) {
			return nil, ErrSessionLocked
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	logging.Logger.Debug("Session lock acquired", "path", path)
	return &SessionLock{file: file}, nil
}

// Release drops the lock. Safe to call more than once.
func (l *SessionLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil
	return errors.Join(unlockErr, closeErr)
}
