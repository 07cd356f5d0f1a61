package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Concrete failures are *HarnessError values that match one of
// these through errors.Is.
var (
	ErrBuildFailure     = errors.New("build failure")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMemberNotFound   = errors.New("member not found")
	ErrMergeFailure     = errors.New("merge failure")
	ErrPayloadNotFound  = errors.New("payload not found")
	ErrRunFailure       = errors.New("run failure")
	ErrSchemaViolation  = errors.New("schema violation")
	ErrTimeout          = errors.New("timeout")
)

// HarnessError carries the diagnostic context of a failed harness step
type HarnessError struct {
	Args   []string // Command line that was invoked, if any
	Err    error    // Underlying cause, may be nil
	Key    string   // Missing or invalid payload key, archive member name
	Kind   error    // One of the Err* kinds above
	Op     string   // Step that failed, e.g. "build", "run gsa-html"
	Output string   // Captured process output
}

func (e *HarnessError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Key != "" {
		fmt.Fprintf(&b, " %q", e.Key)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As
func (e *HarnessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Diagnostic renders the error with its arguments and captured output,
// suitable for printing to an operator.
func (e *HarnessError) Diagnostic() string {
	var b strings.Builder
	b.WriteString(e.Error())
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, "\nArgs: %q", e.Args)
	}
	if e.Output != "" {
		fmt.Fprintf(&b, "\nOutput: %s", e.Output)
	}
	return b.String()
}

// KindOf returns the error kind of err, or nil if err is not a harness failure
func KindOf(err error) error {
	for _, kind := range []error{
		ErrBuildFailure,
		ErrTimeout,
		ErrRunFailure,
		ErrPayloadNotFound,
		ErrMalformedPayload,
		ErrSchemaViolation,
		ErrMemberNotFound,
		ErrMergeFailure,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsFatal reports whether err must abort the whole session.
// Build and merge failures are deterministic given the same inputs.
func IsFatal(err error) bool {
	return errors.Is(err, ErrBuildFailure) || errors.Is(err, ErrMergeFailure)
}
