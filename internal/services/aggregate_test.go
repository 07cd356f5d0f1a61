package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/domain"
	portsmocks "github.com/renato0307/covrun/internal/ports/mocks"
)

func seedResults(t *testing.T, withProfile []string, without []string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "results")
	for _, name := range withProfile {
		writeTestFile(t, filepath.Join(root, name, domain.ProfileRelPath), "profile-"+name)
	}
	for _, name := range without {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0755))
	}
	// The preserved coverage binary sits next to the scenario directories
	writeTestFile(t, filepath.Join(root, "gsa"), "binary")
	return root
}

func TestMergeProfiles_SkipsScenariosWithoutProfile(t *testing.T) {
	root := seedResults(t, []string{"b-svg", "a-html"}, []string{"c-text"})
	// Profiler dir present but no cpu.pprof inside
	require.NoError(t, os.MkdirAll(filepath.Join(root, "d-json", "json", "profiler"), 0755))
	output := filepath.Join(t.TempDir(), "default.pgo")

	tc := portsmocks.NewMockToolchain(t)
	tc.EXPECT().
		MergeProfiles(mock.Anything, []string{
			filepath.Join(root, "a-html", domain.ProfileRelPath),
			filepath.Join(root, "b-svg", domain.ProfileRelPath),
		}).
		Return([]byte("merged"), nil)

	reporter := newRecordingReporter()
	set, err := NewAggregationService(tc, reporter, output).MergeProfiles(context.Background(), root)

	require.NoError(t, err)
	assert.Equal(t, []string{"c-text", "d-json"}, set.Skipped)
	assert.Len(t, set.Entries, 2)
	assert.Equal(t, "a-html", set.Entries[0].Scenario)
	assert.Equal(t, output, set.MergedPath)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "merged", string(data))
	assert.Contains(t, reporter.lines, "Skipping c-text, no profiler output")
}

func TestMergeProfiles_EmptySetDoesNotInvokeTool(t *testing.T) {
	root := seedResults(t, nil, []string{"a", "b"})
	output := filepath.Join(t.TempDir(), "default.pgo")

	set, err := NewAggregationService(portsmocks.NewMockToolchain(t), nil, output).MergeProfiles(context.Background(), root)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMergeFailure)
	assert.Equal(t, []string{"a", "b"}, set.Skipped)
	assert.NoFileExists(t, output)
}

func TestMergeProfiles_ToolFailureIsFatal(t *testing.T) {
	root := seedResults(t, []string{"a"}, nil)
	output := filepath.Join(t.TempDir(), "default.pgo")

	tc := portsmocks.NewMockToolchain(t)
	tc.EXPECT().MergeProfiles(mock.Anything, mock.Anything).
		Return(nil, &domain.HarnessError{Kind: domain.ErrMergeFailure, Op: "merge profiles", Err: errors.New("bad profile")})

	_, err := NewAggregationService(tc, nil, output).MergeProfiles(context.Background(), root)

	require.Error(t, err)
	assert.True(t, domain.IsFatal(err))
	assert.NoFileExists(t, output, "no partial merge output")
}

func TestMergeProfiles_MissingResultsRoot(t *testing.T) {
	_, err := NewAggregationService(portsmocks.NewMockToolchain(t), nil, filepath.Join(t.TempDir(), "default.pgo")).
		MergeProfiles(context.Background(), filepath.Join(t.TempDir(), "nope"))

	assert.ErrorIs(t, err, domain.ErrMergeFailure)
}
