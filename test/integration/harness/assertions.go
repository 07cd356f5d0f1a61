package harness

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccess verifies covrun exited 0 within its timeout
func AssertSuccess(tb testing.TB, result CommandResult) {
	tb.Helper()
	require.False(tb, result.TimedOut, "command timed out:\n%s", result)
	assert.Zero(tb, result.ExitCode, "expected success:\n%s", result)
}

// AssertFailure verifies covrun exited non-zero on its own, without being
// killed for running too long.
func AssertFailure(tb testing.TB, result CommandResult) {
	tb.Helper()
	require.False(tb, result.TimedOut, "command timed out:\n%s", result)
	assert.NotZero(tb, result.ExitCode, "expected failure:\n%s", result)
}

// AssertHarnessError verifies covrun failed with a harness error of kind.
// A non-empty key must be named in the error, as in `schema violation "size"`.
func AssertHarnessError(tb testing.TB, result CommandResult, kind error, key string) {
	tb.Helper()
	AssertFailure(tb, result)

	want := kind.Error()
	if key != "" {
		want = fmt.Sprintf("%s %q", want, key)
	}
	require.True(tb, strings.HasPrefix(result.Stderr, "Error: "), "expected an error line:\n%s", result)
	assert.Contains(tb, result.Stderr, want, "expected %s:\n%s", want, result)
}

// AssertLabeledOutput verifies text carries a labeled output section (the
// "stdout:" or "stderr:" form of captured subject output) with a line
// containing want. Trailing padding from styled output is ignored.
func AssertLabeledOutput(tb testing.TB, text, label, want string) {
	tb.Helper()

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != label+":" {
			continue
		}
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "stdout:" || trimmed == "stderr:" {
				break
			}
			if strings.Contains(next, want) {
				return
			}
		}
	}
	assert.Fail(tb, "labeled output not found",
		"expected a %q section containing %q in:\n%s", label+":", want, text)
}

// AssertStdoutContains verifies stdout contains expected
func AssertStdoutContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stdout, expected, "unexpected stdout:\n%s", result)
}

// AssertStderrContains verifies stderr contains expected
func AssertStderrContains(tb testing.TB, result CommandResult, expected string) {
	tb.Helper()
	assert.Contains(tb, result.Stderr, expected, "unexpected stderr:\n%s", result)
}

// AssertStdoutEmpty verifies nothing but whitespace went to stdout
func AssertStdoutEmpty(tb testing.TB, result CommandResult) {
	tb.Helper()
	assert.Empty(tb, strings.TrimSpace(result.Stdout), "expected no stdout:\n%s", result)
}

// DecodeJSON unmarshals the --format json output of a command into target
func DecodeJSON(tb testing.TB, result CommandResult, target any) {
	tb.Helper()
	require.NoError(tb, json.Unmarshal([]byte(result.Stdout), target), "expected JSON output:\n%s", result)
}
