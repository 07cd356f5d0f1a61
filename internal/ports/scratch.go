package ports

import "github.com/renato0307/covrun/internal/domain"

// ScratchProvisioner hands out isolated filesystem scratch space
type ScratchProvisioner interface {
	AllocateScratchDir(prefix string) (domain.ScratchEnvironment, error)
	LockSession(path string) (release func() error, err error)
	ReleaseScratchDir(env domain.ScratchEnvironment) error
	ResetNamedDirectories(paths ...string) error
}

// PortAllocator finds a currently unused local TCP port
type PortAllocator interface {
	AllocateUnusedPort(start, end int) (int, bool)
}
