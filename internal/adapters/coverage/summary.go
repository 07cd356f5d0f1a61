package coverage

import (
	"fmt"
	"sort"

	"golang.org/x/tools/cover"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/ports"
)

// Summarizer reads text coverage profiles (go tool covdata textfmt output)
type Summarizer struct{}

// Compile-time interface verification
var _ ports.CoverageSummarizer = (*Summarizer)(nil)

// NewSummarizer creates a new Summarizer
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize computes statement coverage per file and in total.
// Files are sorted by name.
func (s *Summarizer) Summarize(profilePath string) (domain.CoverageSummary, error) {
	profiles, err := cover.ParseProfiles(profilePath)
	if err != nil {
		return domain.CoverageSummary{}, fmt.Errorf("failed to parse coverage profile %s: %w", profilePath, err)
	}
	summary := Summarize(profiles)
	summary.ProfilePath = profilePath
	return summary, nil
}

// Summarize folds parsed profiles into a coverage summary
func Summarize(profiles []*cover.Profile) domain.CoverageSummary {
	byFile := make(map[string]*domain.FileCoverage)
	for _, p := range profiles {
		fc, ok := byFile[p.FileName]
		if !ok {
			fc = &domain.FileCoverage{File: p.FileName}
			byFile[p.FileName] = fc
		}
		for _, b := range p.Blocks {
			fc.Statements += b.NumStmt
			if b.Count > 0 {
				fc.Covered += b.NumStmt
			}
		}
	}

	summary := domain.CoverageSummary{Total: domain.FileCoverage{File: "total"}}
	for _, fc := range byFile {
		summary.Files = append(summary.Files, *fc)
		summary.Total.Statements += fc.Statements
		summary.Total.Covered += fc.Covered
	}
	sort.Slice(summary.Files, func(i, j int) bool {
		return summary.Files[i].File < summary.Files[j].File
	})
	return summary
}
