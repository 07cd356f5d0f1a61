package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/adapters/objectstore"
	"github.com/renato0307/covrun/internal/adapters/scratch"
	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
	portsmocks "github.com/renato0307/covrun/internal/ports/mocks"
)

// writeBinary makes a toolchain mock produce a fake binary at the output path
func writeBinary(_ context.Context, _ domain.BuildSpec, output string) error {
	return os.WriteFile(output, []byte("binary"), 0755)
}

func newTestBuildService(t *testing.T, cfg *config.Config, tc *portsmocks.MockToolchain) (*BuildService, string) {
	t.Helper()
	tempRoot := t.TempDir()
	svc := NewBuildService(cfg, tc, scratch.NewProvisioner(tempRoot), objectstore.NewFileStore(cfg.Paths.ResultsDir()))
	return svc, tempRoot
}

func TestBuild_IntoScratch(t *testing.T) {
	cfg := newTestConfig(t)
	tc := portsmocks.NewMockToolchain(t)
	svc, tempRoot := newTestBuildService(t, cfg, tc)

	tc.EXPECT().
		Build(mock.Anything, mock.MatchedBy(func(s domain.BuildSpec) bool {
			return s.Mode == domain.ModeCoverage && s.Package == config.DefaultPackage
		}), mock.Anything).
		RunAndReturn(writeBinary)

	handle, err := svc.Build(context.Background(), domain.ModeCoverage, "")
	require.NoError(t, err)

	assert.FileExists(t, handle.Path)
	assert.Equal(t, tempRoot, filepath.Dir(handle.Scratch.Root))
	assert.True(t, strings.HasPrefix(filepath.Base(handle.Scratch.Root), "gsa_"))
	assert.Equal(t, BinaryFileName("gsa"), filepath.Base(handle.Path))
}

func TestBuild_FailureReleasesScratch(t *testing.T) {
	cfg := newTestConfig(t)
	tc := portsmocks.NewMockToolchain(t)
	svc, tempRoot := newTestBuildService(t, cfg, tc)

	buildErr := &domain.HarnessError{Kind: domain.ErrBuildFailure, Op: "build", Output: "syntax error"}
	tc.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).Return(buildErr)

	_, err := svc.Build(context.Background(), domain.ModePlain, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailure)

	empty, err := scratch.DirIsEmpty(tempRoot)
	require.NoError(t, err)
	assert.True(t, empty, "scratch dir must be released after a failed build")
}

func TestBuild_IntoOutputDirReplacesAtomically(t *testing.T) {
	cfg := newTestConfig(t)
	tc := portsmocks.NewMockToolchain(t)
	svc, _ := newTestBuildService(t, cfg, tc)
	outDir := t.TempDir()
	existing := filepath.Join(outDir, BinaryFileName("gsa"))
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0755))

	tc.EXPECT().
		Build(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, spec domain.BuildSpec, output string) error {
			assert.NotEqual(t, existing, output, "must not build in place over the previous binary")
			assert.Equal(t, outDir, filepath.Dir(output))
			return writeBinary(ctx, spec, output)
		})

	handle, err := svc.Build(context.Background(), domain.ModePlain, outDir)
	require.NoError(t, err)
	assert.Equal(t, existing, handle.Path)
	assert.Empty(t, handle.Scratch.Root)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(data))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestSpec_UsesMergedProfileWhenPresent(t *testing.T) {
	cfg := newTestConfig(t)
	svc, _ := newTestBuildService(t, cfg, portsmocks.NewMockToolchain(t))

	assert.Empty(t, svc.Spec(domain.ModeProfileGuided).ProfilePath)

	writeTestFile(t, cfg.Paths.MergedProfilePath(), "pgo")
	assert.Equal(t, cfg.Paths.MergedProfilePath(), svc.Spec(domain.ModeProfileGuided).ProfilePath)
	assert.Empty(t, svc.Spec(domain.ModeCoverage).ProfilePath)
}

func TestWithSubject_Disposal(t *testing.T) {
	tests := []struct {
		name         string
		mode         domain.BuildMode
		fnErr        error
		wantPreserve bool
	}{
		{name: "coverage binary is preserved", mode: domain.ModeCoverage, wantPreserve: true},
		{name: "coverage binary is preserved when the body fails", mode: domain.ModeCoverage, fnErr: errors.New("runs failed"), wantPreserve: true},
		{name: "pgo binary is discarded", mode: domain.ModeProfileGuided},
		{name: "plain binary is discarded", mode: domain.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			tc := portsmocks.NewMockToolchain(t)
			svc, tempRoot := newTestBuildService(t, cfg, tc)
			tc.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(writeBinary)

			var seen string
			err := svc.WithSubject(context.Background(), tt.mode, func(h domain.SubjectHandle) error {
				seen = h.Path
				assert.FileExists(t, h.Path)
				return tt.fnErr
			})

			if tt.fnErr != nil {
				assert.ErrorIs(t, err, tt.fnErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoFileExists(t, seen)
			empty, err := scratch.DirIsEmpty(tempRoot)
			require.NoError(t, err)
			assert.True(t, empty, "scratch dir must always be removed")

			preserved := filepath.Join(cfg.Paths.ResultsDir(), BinaryFileName("gsa"))
			if tt.wantPreserve {
				assert.FileExists(t, preserved)
			} else {
				assert.NoFileExists(t, preserved)
			}
		})
	}
}

func TestWithSubject_BuildFailureSkipsBody(t *testing.T) {
	cfg := newTestConfig(t)
	tc := portsmocks.NewMockToolchain(t)
	svc, _ := newTestBuildService(t, cfg, tc)
	tc.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.HarnessError{Kind: domain.ErrBuildFailure, Op: "build"})

	called := false
	err := svc.WithSubject(context.Background(), domain.ModeCoverage, func(domain.SubjectHandle) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, domain.ErrBuildFailure)
	assert.True(t, domain.IsFatal(err))
	assert.False(t, called)
}
