package services

import (
	"context"
	"errors"
	"os"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// ErrNoCoverageData is returned when every coverage directory is empty
var ErrNoCoverageData = errors.New("no coverage data collected")

// CoverageService summarizes the coverage counters collected by a session
type CoverageService struct {
	dirs        []string
	profilePath string
	summarizer  ports.CoverageSummarizer
	toolchain   ports.Toolchain
}

// NewCoverageService creates a new CoverageService reading counters from
// dirs and writing the text profile to profilePath
func NewCoverageService(
	toolchain ports.Toolchain,
	summarizer ports.CoverageSummarizer,
	dirs []string,
	profilePath string,
) *CoverageService {
	return &CoverageService{
		dirs:        dirs,
		profilePath: profilePath,
		summarizer:  summarizer,
		toolchain:   toolchain,
	}
}

// Summarize converts the non-empty coverage directories into a text profile
// and computes per-file coverage from it
func (s *CoverageService) Summarize(ctx context.Context) (domain.CoverageSummary, error) {
	var dirs []string
	for _, dir := range s.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) == 0 {
			logging.Logger.Debug("Skipping empty coverage dir", "path", dir)
			continue
		}
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		return domain.CoverageSummary{}, ErrNoCoverageData
	}

	if err := s.toolchain.CoverageText(ctx, dirs, s.profilePath); err != nil {
		return domain.CoverageSummary{}, err
	}
	return s.summarizer.Summarize(s.profilePath)
}
