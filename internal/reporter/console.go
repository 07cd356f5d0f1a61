package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/ports"
	"github.com/renato0307/covrun/internal/theme"
)

// Console prints progress lines prefixed with the session elapsed time
type Console struct {
	clock *Clock
	mu    sync.Mutex
	out   io.Writer
}

// Compile-time interface verification
var _ ports.ProgressReporter = (*Console)(nil)

// NewConsole writes to out, timestamping with clock
func NewConsole(out io.Writer, clock *Clock) *Console {
	return &Console{clock: clock, out: out}
}

// Logf prints one "[12.34s] message" line. Safe for concurrent use.
func (c *Console) Logf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	stamp := theme.TimestampStyle.Render("[" + FormatElapsed(c.clock.Elapsed()) + "]")

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", stamp, msg)
}

// Outcome prints the classified result of a scenario
func (c *Console) Outcome(res domain.ScenarioResult) {
	outcome := res.Outcome()
	c.Logf("%s %s (%s)",
		theme.OutcomeStyle(outcome).Render(string(outcome)),
		theme.ScenarioStyle.Render(res.Scenario),
		FormatElapsed(res.Run.Elapsed),
	)
}

// Failure prints the full diagnostic of a failed step
func (c *Console) Failure(err error) {
	if he, ok := err.(interface{ Diagnostic() string }); ok {
		c.Logf("%s", theme.ErrorStyle.Render(he.Diagnostic()))
		return
	}
	c.Logf("%s", theme.ErrorStyle.Render(err.Error()))
}

// Skipped prints a tolerated, skipped item
func (c *Console) Skipped(format string, args ...any) {
	c.Logf("%s %s", theme.SkippedStyle.Render("skipped"), fmt.Sprintf(format, args...))
}
