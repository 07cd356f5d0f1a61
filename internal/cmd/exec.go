package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/covrun/internal/domain"
)

// ExecCmd runs a binary the way a scenario would, without validation
type ExecCmd struct {
	Binary      string            `arg:"" help:"Binary to run" type:"path"`
	Args        []string          `arg:"" optional:"" passthrough:"" help:"Arguments passed to the binary"`
	Env         map[string]string `help:"Extra environment variables (KEY=VALUE)" mapsep:","`
	Name        string            `help:"Name used in diagnostics"`
	ProfilerDir string            `help:"Directory exported as OUTPUT_DIR" type:"path"`
	Timeout     time.Duration     `help:"Kill the run after this long (0 = settings)" default:"0s"`
}

// Run executes the exec command
func (e *ExecCmd) Run(ctx context.Context, cli *CLI) error {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = cli.Container.Config.RunTimeout
	}

	result, err := cli.Container.RunService.Execute(ctx, domain.RunRequest{
		Args:        e.Args,
		Binary:      e.Binary,
		Env:         e.Env,
		Name:        e.Name,
		ProfilerDir: e.ProfilerDir,
		Timeout:     timeout,
	})
	cli.Container.Reporter.Outcome(domain.ScenarioResult{Err: err, Run: result, Scenario: result.Name})
	if err != nil {
		cli.Container.Reporter.Failure(err)
		return err
	}

	if result.Output != "" {
		fmt.Println(result.Output)
	}
	return nil
}
