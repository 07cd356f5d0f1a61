package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"

	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// BuildService produces instrumented subject binaries
type BuildService struct {
	cfg         *config.Config
	preserve    ports.ArtifactStore
	provisioner ports.ScratchProvisioner
	toolchain   ports.Toolchain
}

// NewBuildService creates a new BuildService. Coverage binaries outliving a
// WithSubject session are handed to preserve, keyed by the binary file name.
func NewBuildService(
	cfg *config.Config,
	toolchain ports.Toolchain,
	provisioner ports.ScratchProvisioner,
	preserve ports.ArtifactStore,
) *BuildService {
	return &BuildService{
		cfg:         cfg,
		preserve:    preserve,
		provisioner: provisioner,
		toolchain:   toolchain,
	}
}

// BinaryFileName returns the subject file name for the current platform
func BinaryFileName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// BinaryFileName returns the configured subject file name for this platform
func (s *BuildService) BinaryFileName() string {
	return BinaryFileName(s.cfg.BinaryName)
}

// Spec returns the build spec for mode. Profile-guided builds pick up the
// merged profile when it exists.
func (s *BuildService) Spec(mode domain.BuildMode) domain.BuildSpec {
	_, err := os.Stat(s.cfg.Paths.MergedProfilePath())
	return s.cfg.BuildSpec(mode, err == nil)
}

// Build compiles the subject. With an empty outputDir the binary goes to a
// fresh scratch directory owned by the returned handle; otherwise it is
// built under a temporary name in outputDir and renamed into place.
func (s *BuildService) Build(ctx context.Context, mode domain.BuildMode, outputDir string) (domain.SubjectHandle, error) {
	spec := s.Spec(mode)
	fileName := s.BinaryFileName()

	if outputDir == "" {
		scratch, err := s.provisioner.AllocateScratchDir(s.cfg.BinaryName + "_")
		if err != nil {
			return domain.SubjectHandle{}, err
		}
		output := filepath.Join(scratch.Root, fileName)
		if err := s.toolchain.Build(ctx, spec, output); err != nil {
			s.release(scratch)
			return domain.SubjectHandle{}, err
		}
		return domain.SubjectHandle{Path: output, Scratch: scratch, Spec: spec}, nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return domain.SubjectHandle{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	output := filepath.Join(outputDir, fileName)
	tmp := filepath.Join(outputDir, "."+fileName+"-"+uuid.NewString())

	if err := s.toolchain.Build(ctx, spec, tmp); err != nil {
		os.Remove(tmp)
		return domain.SubjectHandle{}, err
	}
	if err := os.Rename(tmp, output); err != nil {
		os.Remove(tmp)
		return domain.SubjectHandle{}, fmt.Errorf("failed to move binary into place: %w", err)
	}
	return domain.SubjectHandle{Path: output, Spec: spec}, nil
}

// WithSubject builds a scratch subject, calls fn with it and disposes of it
// whatever fn returns. Coverage binaries are preserved before the scratch
// directory is removed.
func (s *BuildService) WithSubject(ctx context.Context, mode domain.BuildMode, fn func(domain.SubjectHandle) error) (err error) {
	handle, err := s.Build(ctx, mode, "")
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, s.dispose(context.WithoutCancel(ctx), handle))
	}()

	return fn(handle)
}

func (s *BuildService) dispose(ctx context.Context, handle domain.SubjectHandle) error {
	var preserveErr error
	if handle.Spec.PreserveBinary() && s.preserve != nil {
		loc, err := s.preserve.Put(ctx, filepath.Base(handle.Path), handle.Path)
		if err != nil {
			preserveErr = fmt.Errorf("failed to preserve binary: %w", err)
		} else {
			logging.Logger.Info("Preserved coverage binary", "path", loc)
		}
	}
	return errors.Join(preserveErr, s.provisioner.ReleaseScratchDir(handle.Scratch))
}

func (s *BuildService) release(scratch domain.ScratchEnvironment) {
	if err := s.provisioner.ReleaseScratchDir(scratch); err != nil {
		logging.Logger.Warn("Failed to release scratch dir", "path", scratch.Root, "error", err)
	}
}
