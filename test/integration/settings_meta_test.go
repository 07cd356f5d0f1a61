package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/covrun/test/integration/harness"
)

func TestSettingsMeta(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult)
	}{
		{
			name: "table format (default)",
			args: []string{"settings", "meta"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				harness.AssertStdoutContains(t, result, "Settings file:")
				harness.AssertStdoutContains(t, result, "binary_name")
				harness.AssertStdoutContains(t, result, "run_timeout_seconds")
			},
		},
		{
			name: "json format",
			args: []string{"settings", "meta", "--format", "json"},
			validate: func(t *testing.T, env *harness.TestEnvironment, result harness.CommandResult) {
				var output map[string]any
				harness.DecodeJSON(t, result, &output)
				assert.Contains(t, output["settings_file"], env.ProjectRoot)
				assert.Contains(t, output, "format")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := harness.NewTestEnvironment(t)

			result := harness.RunCommand(t, env, tt.args...)

			harness.AssertSuccess(t, result)
			tt.validate(t, env, result)
		})
	}
}

func TestSettingsInit(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "settings", "init")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "settings.json")

	result = harness.RunCommand(t, env, "settings", "init")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "already exists")

	result = harness.RunCommand(t, env, "settings", "init", "--force")
	harness.AssertSuccess(t, result)
}
