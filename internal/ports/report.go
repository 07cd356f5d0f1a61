package ports

import "github.com/renato0307/covrun/internal/domain"

// ReportValidator checks the structured payload of a generated report
type ReportValidator interface {
	ValidateReportFile(path, member string) (domain.ReportPayload, error)
}

// CoverageSummarizer turns a text coverage profile into per-file totals
type CoverageSummarizer interface {
	Summarize(profilePath string) (domain.CoverageSummary, error)
}
