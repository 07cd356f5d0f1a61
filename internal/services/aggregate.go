package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// AggregationService merges per-scenario CPU profiles into one PGO profile
type AggregationService struct {
	outputPath string
	reporter   ports.ProgressReporter
	toolchain  ports.Toolchain
}

// NewAggregationService creates a new AggregationService writing the merged
// profile to outputPath
func NewAggregationService(toolchain ports.Toolchain, reporter ports.ProgressReporter, outputPath string) *AggregationService {
	return &AggregationService{
		outputPath: outputPath,
		reporter:   reporter,
		toolchain:  toolchain,
	}
}

// DiscoverProfiles looks for json/profiler/cpu.pprof in every immediate
// subdirectory of resultsRoot, in name order. Subdirectories without one are
// recorded as skipped.
func (s *AggregationService) DiscoverProfiles(resultsRoot string) (domain.ProfileSet, error) {
	entries, err := os.ReadDir(resultsRoot)
	if err != nil {
		return domain.ProfileSet{}, fmt.Errorf("failed to list results directory: %w", err)
	}

	var set domain.ProfileSet
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		profile := filepath.Join(resultsRoot, entry.Name(), domain.ProfileRelPath)
		info, err := os.Stat(profile)
		if err != nil || info.IsDir() {
			set.Skipped = append(set.Skipped, entry.Name())
			logging.Logger.Info("Skipping results without profile", "scenario", entry.Name(), "path", profile)
			if s.reporter != nil {
				s.reporter.Logf("Skipping %s, no profiler output", entry.Name())
			}
			continue
		}
		set.Entries = append(set.Entries, domain.ProfileEntry{Path: profile, Scenario: entry.Name()})
	}
	return set, nil
}

// MergeProfiles discovers the profiles under resultsRoot and merges them.
// Every failure is a MergeFailure, and nothing is written unless the merge
// succeeded.
func (s *AggregationService) MergeProfiles(ctx context.Context, resultsRoot string) (domain.ProfileSet, error) {
	set, err := s.DiscoverProfiles(resultsRoot)
	if err != nil {
		return set, &domain.HarnessError{Err: err, Kind: domain.ErrMergeFailure, Op: "merge profiles"}
	}
	if len(set.Entries) == 0 {
		return set, &domain.HarnessError{
			Err:  errors.New("no profiles found under " + resultsRoot),
			Kind: domain.ErrMergeFailure,
			Op:   "merge profiles",
		}
	}

	if s.reporter != nil {
		s.reporter.Logf("Merging %d profiles", len(set.Entries))
	}
	merged, err := s.toolchain.MergeProfiles(ctx, set.Paths())
	if err != nil {
		return set, err
	}

	if err := os.WriteFile(s.outputPath, merged, 0644); err != nil {
		return set, &domain.HarnessError{
			Err:  fmt.Errorf("failed to write %s: %w", s.outputPath, err),
			Kind: domain.ErrMergeFailure,
			Op:   "merge profiles",
		}
	}
	set.MergedPath = s.outputPath

	logging.Logger.Info("Merged profiles", "count", len(set.Entries), "skipped", len(set.Skipped), "output", s.outputPath)
	return set, nil
}
