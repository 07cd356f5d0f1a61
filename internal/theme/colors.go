package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, headings
	ColorSecondary Color = "86" // Cyan - scenario names
)

// Outcome colors
const (
	ColorFailed  Color = "1" // Red - run or validation failure
	ColorOK      Color = "2" // Green - passed
	ColorSkipped Color = "8" // Gray - skipped, no profile
	ColorTimeout Color = "3" // Yellow - killed after timeout
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels, timestamps
	ColorVersion   Color = "240" // Dark gray
)

// Coverage thresholds colors
const (
	ColorCoverageHigh Color = "46"  // Bright green
	ColorCoverageLow  Color = "196" // Bright red
	ColorCoverageMid  Color = "214" // Orange
)
