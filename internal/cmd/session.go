package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/services"
)

// ScenarioFlags selects and tunes the scenarios of a session
type ScenarioFlags struct {
	Only      []string      `help:"Run only the named scenarios" sep:","`
	Parallel  int           `help:"Scenarios to run concurrently (0 = settings)" default:"0"`
	Scenarios string        `help:"Scenario manifest (default: settings, then scenarios.yaml)" type:"path"`
	Timeout   time.Duration `help:"Per-run timeout (0 = settings)" default:"0s"`
}

// load reads the manifest and applies the --only filter
func (f *ScenarioFlags) load(cfg *config.Config) ([]domain.Scenario, error) {
	path := f.Scenarios
	if path == "" {
		path = cfg.Paths.Resolve(cfg.ScenariosFile)
	}

	scenarios, err := config.LoadScenarios(path)
	if err != nil {
		return nil, err
	}
	return filterScenarios(scenarios, f.Only)
}

// apply pushes the per-invocation overrides into the session service
func (f *ScenarioFlags) apply(cli *CLI) int {
	if f.Timeout > 0 {
		cli.Container.SessionService.RunTimeout = f.Timeout
	}
	if f.Parallel > 0 {
		return f.Parallel
	}
	return cli.Container.Config.Parallel
}

// filterScenarios keeps the named scenarios in manifest order
func filterScenarios(scenarios []domain.Scenario, only []string) ([]domain.Scenario, error) {
	if len(only) == 0 {
		return scenarios, nil
	}

	known := make(map[string]bool, len(scenarios))
	for _, sc := range scenarios {
		known[sc.Name] = true
	}
	wanted := make(map[string]bool, len(only))
	for _, name := range only {
		if !known[name] {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
		wanted[name] = true
	}

	var selected []domain.Scenario
	for _, sc := range scenarios {
		if wanted[sc.Name] {
			selected = append(selected, sc)
		}
	}
	return selected, nil
}

// SessionCmd runs one harness session
type SessionCmd struct {
	ScenarioFlags `embed:""`

	Mode      string `help:"Build mode: coverage, pgo or plain" default:"coverage" enum:"coverage,pgo,plain"`
	NoMerge   bool   `help:"Skip merging profiles even when scenarios collect them"`
	NoPublish bool   `help:"Skip publishing artifacts"`
}

// Run executes the session command
func (s *SessionCmd) Run(ctx context.Context, cli *CLI) error {
	mode, err := domain.ParseBuildMode(s.Mode)
	if err != nil {
		return err
	}

	scenarios, err := s.load(cli.Container.Config)
	if err != nil {
		return err
	}

	opts := services.SessionOptions{
		Merge:     !s.NoMerge && anyProfiles(scenarios),
		Mode:      mode,
		Parallel:  s.apply(cli),
		Publish:   !s.NoPublish,
		Scenarios: scenarios,
	}

	logging.Logger.Info("Starting session", "mode", mode, "scenarios", len(scenarios), "merge", opts.Merge)
	report, err := cli.Container.SessionService.Run(ctx, opts)
	renderSessionReport(report)
	if err != nil {
		return err
	}
	return sessionError(report)
}

// PGOCmd collects CPU profiles from the profiling scenarios, merges them and
// builds the profile-guided binary
type PGOCmd struct {
	ScenarioFlags `embed:""`

	Collect string `help:"Build mode used while collecting profiles" default:"pgo" enum:"coverage,pgo"`
	Output  string `help:"Directory receiving the profile-guided binary" default:"." type:"path"`
}

// Run executes the pgo command
func (p *PGOCmd) Run(ctx context.Context, cli *CLI) error {
	mode, err := collectionMode(p.Collect)
	if err != nil {
		return err
	}

	all, err := p.load(cli.Container.Config)
	if err != nil {
		return err
	}
	var scenarios []domain.Scenario
	for _, sc := range all {
		if sc.Profile {
			scenarios = append(scenarios, sc)
		}
	}
	if len(scenarios) == 0 {
		return errors.New("no selected scenario collects a profile")
	}

	report, err := cli.Container.SessionService.Run(ctx, services.SessionOptions{
		Merge:     true,
		Mode:      mode,
		Parallel:  p.apply(cli),
		Scenarios: scenarios,
	})
	renderSessionReport(report)
	if err != nil {
		return err
	}
	if err := sessionError(report); err != nil {
		return err
	}

	cli.Container.Reporter.Logf("Building profile-guided binary")
	handle, err := cli.Container.BuildService.Build(ctx, domain.ModeProfileGuided, p.Output)
	if err != nil {
		cli.Container.Reporter.Failure(err)
		return err
	}
	cli.Container.Reporter.Logf("Built %s with %s", handle.Path, handle.Spec.ProfilePath)
	return nil
}

// collectionMode parses the build mode used to collect profiles and rejects
// modes whose subjects never write one
func collectionMode(name string) (domain.BuildMode, error) {
	mode, err := domain.ParseBuildMode(name)
	if err != nil {
		return "", err
	}
	if !mode.CollectsProfiles() {
		return "", fmt.Errorf("build mode %s does not write CPU profiles", mode)
	}
	return mode, nil
}

func anyProfiles(scenarios []domain.Scenario) bool {
	for _, sc := range scenarios {
		if sc.Profile {
			return true
		}
	}
	return false
}

// sessionError turns failed scenarios into a non-zero exit
func sessionError(report *domain.SessionReport) error {
	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d scenarios failed", len(failed), len(report.Results))
	}
	return nil
}
