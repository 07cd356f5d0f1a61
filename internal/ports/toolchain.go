package ports

import (
	"context"

	"github.com/renato0307/covrun/internal/domain"
)

// Toolchain drives the go command on behalf of the harness
type Toolchain interface {
	// Build compiles spec.Package into output. Failures are *domain.HarnessError
	// values of kind domain.ErrBuildFailure carrying the build output.
	Build(ctx context.Context, spec domain.BuildSpec, output string) error

	// CoverageText converts binary coverage counters from dirs into a text
	// profile written to output.
	CoverageText(ctx context.Context, dirs []string, output string) error

	// MergeProfiles merges pprof files, in order, into one protobuf profile
	MergeProfiles(ctx context.Context, paths []string) ([]byte, error)
}
