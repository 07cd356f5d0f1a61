package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/covrun/internal/domain"
)

// Main styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	ScenarioStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)
)

// Outcome styles
var (
	FailedStyle = lipgloss.NewStyle().
			Foreground(ColorFailed).
			Bold(true)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorOK).
		Bold(true)

	SkippedStyle = lipgloss.NewStyle().
			Foreground(ColorSkipped)

	TimeoutStyle = lipgloss.NewStyle().
			Foreground(ColorTimeout).
			Bold(true)
)

// Version styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// OutcomeStyle returns the style used to print a run outcome
func OutcomeStyle(outcome domain.RunOutcome) lipgloss.Style {
	switch outcome {
	case domain.OutcomeOK:
		return OKStyle
	case domain.OutcomeTimeout:
		return TimeoutStyle
	case domain.OutcomeCancelled:
		return SkippedStyle
	default:
		return FailedStyle
	}
}

// SessionStatusStyle returns the style used to print a session status
func SessionStatusStyle(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.SessionPassed:
		return OKStyle
	case domain.SessionRunning:
		return SkippedStyle
	case domain.SessionAborted:
		return TimeoutStyle
	default:
		return FailedStyle
	}
}

// CoverageStyle colors a coverage percentage
func CoverageStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 80:
		return lipgloss.NewStyle().Foreground(ColorCoverageHigh)
	case percent >= 50:
		return lipgloss.NewStyle().Foreground(ColorCoverageMid)
	default:
		return lipgloss.NewStyle().Foreground(ColorCoverageLow)
	}
}
