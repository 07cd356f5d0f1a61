package ports

import "github.com/renato0307/covrun/internal/domain"

// ProgressReporter receives human facing progress lines for the operator
type ProgressReporter interface {
	Failure(err error)
	Logf(format string, args ...any)
	Outcome(res domain.ScenarioResult)
}
