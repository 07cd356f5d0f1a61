package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
)

// SessionOptions controls one harness session
type SessionOptions struct {
	Merge     bool // Merge scenario profiles into the PGO profile after the runs
	Mode      domain.BuildMode
	Parallel  int
	Publish   bool
	Scenarios []domain.Scenario
}

// SessionDeps wires the collaborators of a SessionService
type SessionDeps struct {
	Aggregation *AggregationService
	Artifacts   ports.ArtifactStore // Optional
	Builds      *BuildService
	Coverage    *CoverageService
	Ledger      ports.RunLedgerWriter // Optional
	Paths       config.Paths
	Ports       ports.PortAllocator
	Provisioner ports.ScratchProvisioner
	Reporter    ports.ProgressReporter
	Runs        *RunService
	RunTimeout  time.Duration
	Validator   ports.ReportValidator
}

// SessionService runs the provision, build, run, validate and aggregate
// sequence over a set of scenarios
type SessionService struct {
	SessionDeps
}

// NewSessionService creates a new SessionService
func NewSessionService(deps SessionDeps) *SessionService {
	return &SessionService{SessionDeps: deps}
}

// Run executes one session. The returned report is never nil, even when the
// session aborts. Build and merge failures abort the session and are
// returned; scenario failures are recorded in the report only.
func (s *SessionService) Run(ctx context.Context, opts SessionOptions) (*domain.SessionReport, error) {
	report := &domain.SessionReport{
		ID:        uuid.NewString(),
		Mode:      opts.Mode,
		StartedAt: time.Now(),
		Status:    domain.SessionRunning,
	}

	if err := domain.ValidateScenarios(opts.Scenarios); err != nil {
		report.Status = domain.SessionAborted
		return report, err
	}

	release, err := s.Provisioner.LockSession(s.Paths.SessionLockPath())
	if err != nil {
		report.Status = domain.SessionAborted
		return report, err
	}
	defer func() {
		if err := release(); err != nil {
			logging.Logger.Warn("Failed to release session lock", "error", err)
		}
	}()

	logging.Logger.Info("Session started", "id", report.ID, "mode", opts.Mode, "scenarios", len(opts.Scenarios))
	s.startLedger(ctx, report)

	err = s.run(ctx, opts, report)
	report.FinishedAt = time.Now()
	switch {
	case err != nil:
		report.Status = domain.SessionAborted
		s.Reporter.Failure(err)
	case len(report.Failed()) > 0:
		report.Status = domain.SessionFailed
	default:
		report.Status = domain.SessionPassed
	}
	s.finishLedger(ctx, report)

	logging.Logger.Info("Session finished", "id", report.ID, "status", report.Status, "failed", len(report.Failed()))
	return report, err
}

func (s *SessionService) run(ctx context.Context, opts SessionOptions, report *domain.SessionReport) error {
	// Coverage counters accumulate across runs, so the sink is reset exactly
	// once here and never again while the lock is held
	s.Reporter.Logf("Resetting coverage and results directories")
	dirs := append(s.Paths.CovdataDirs(), s.Paths.ResultsDir())
	if err := s.Provisioner.ResetNamedDirectories(dirs...); err != nil {
		return err
	}

	s.Reporter.Logf("Building %s (%s)", s.Paths.Root, opts.Mode)
	err := s.Builds.WithSubject(ctx, opts.Mode, func(subject domain.SubjectHandle) error {
		s.Reporter.Logf("Built %s", subject.Path)
		report.Results = s.runScenarios(ctx, report.ID, subject, opts)
		return ctx.Err()
	})
	if err != nil {
		return err
	}

	if opts.Mode == domain.ModeCoverage && s.Coverage != nil {
		summary, err := s.Coverage.Summarize(ctx)
		if err != nil {
			// Missing coverage does not invalidate the runs themselves
			logging.Logger.Warn("Coverage summary unavailable", "error", err)
			s.Reporter.Logf("Coverage summary unavailable: %v", err)
		} else {
			report.Coverage = &summary
		}
	}

	if opts.Merge {
		set, err := s.Aggregation.MergeProfiles(ctx, s.Paths.ResultsDir())
		if err != nil {
			return err
		}
		report.Profiles = &set
		s.Reporter.Logf("Merged %d profiles into %s", len(set.Entries), set.MergedPath)
	}

	if opts.Publish && s.Artifacts != nil {
		s.publish(ctx, report)
	}
	return nil
}

// runScenarios runs every scenario with bounded parallelism. Results keep
// the scenario order whatever order the runs finish in.
func (s *SessionService) runScenarios(ctx context.Context, sessionID string, subject domain.SubjectHandle, opts SessionOptions) []domain.ScenarioResult {
	results := make([]domain.ScenarioResult, len(opts.Scenarios))

	parallel := opts.Parallel
	if parallel < 1 {
		parallel = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, sc := range opts.Scenarios {
		g.Go(func() error {
			results[i] = s.RunScenario(gctx, sessionID, subject, sc)
			return nil
		})
	}
	// Scenario failures never cancel siblings, so Wait has nothing to report
	_ = g.Wait()

	return results
}

// RunScenario runs one scenario against subject, validates its report and
// records the outcome under sessionID. An empty sessionID skips the ledger.
func (s *SessionService) RunScenario(ctx context.Context, sessionID string, subject domain.SubjectHandle, sc domain.Scenario) domain.ScenarioResult {
	result := domain.ScenarioResult{Scenario: sc.Name}
	dir := s.Paths.ScenarioDir(sc.Name)

	defer func() {
		s.Reporter.Outcome(result)
		if result.Err != nil {
			s.Reporter.Failure(result.Err)
		}
		s.recordRun(ctx, sessionID, result)
	}()

	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Err = fmt.Errorf("failed to create results directory: %w", err)
		result.Run.Outcome = domain.OutcomeRunFailure
		return result
	}

	vars := config.ScenarioVars{Name: sc.Name, Results: dir, Root: s.Paths.Root}
	if sc.NeedsPort {
		port, ok := s.Ports.AllocateUnusedPort(config.DefaultPortRangeStart, config.DefaultPortRangeEnd)
		if !ok {
			result.Err = &domain.HarnessError{
				Err:  errors.New("no unused port available"),
				Kind: domain.ErrRunFailure,
				Op:   "run " + sc.Name,
			}
			result.Run.Outcome = domain.OutcomeRunFailure
			return result
		}
		vars.Port = port
	}
	expanded := vars.Expand(sc)

	req := domain.RunRequest{
		Args:    expanded.Args,
		Binary:  subject.Path,
		Env:     expanded.Env,
		Name:    sc.Name,
		Timeout: sc.Timeout,
	}
	if req.Timeout <= 0 {
		req.Timeout = s.RunTimeout
	}
	if sc.Profile {
		req.ProfilerDir = filepath.Join(dir, domain.ScenarioJSONDir)
	}

	run, err := s.Runs.Execute(ctx, req)
	result.Run = run
	if err != nil {
		result.Err = err
		return result
	}

	if expanded.Report == "" {
		return result
	}
	reportPath := expanded.Report
	if !filepath.IsAbs(reportPath) {
		reportPath = filepath.Join(dir, reportPath)
	}
	payload, err := s.Validator.ValidateReportFile(reportPath, expanded.Member)
	if err != nil {
		logging.Logger.Error("Report validation failed", "scenario", sc.Name, "report", reportPath, "error", err)
		result.Err = err
		return result
	}
	result.Payload = &payload
	return result
}

func (s *SessionService) publish(ctx context.Context, report *domain.SessionReport) {
	var candidates []string
	if report.Coverage != nil {
		candidates = append(candidates, report.Coverage.ProfilePath)
	}
	if report.Mode == domain.ModeCoverage {
		candidates = append(candidates, filepath.Join(s.Paths.ResultsDir(), s.Builds.BinaryFileName()))
	}
	if report.Profiles != nil && report.Profiles.MergedPath != "" {
		candidates = append(candidates, report.Profiles.MergedPath)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		key := report.ID + "/" + filepath.Base(path)
		loc, err := s.Artifacts.Put(ctx, key, path)
		if err != nil {
			logging.Logger.Warn("Failed to publish artifact", "path", path, "error", err)
			s.Reporter.Logf("Failed to publish %s: %v", filepath.Base(path), err)
			continue
		}
		s.Reporter.Logf("Published %s", loc)
	}
}

func (s *SessionService) startLedger(ctx context.Context, report *domain.SessionReport) {
	if s.Ledger == nil {
		return
	}
	if err := s.Ledger.StartSession(ctx, report.ID, report.Mode); err != nil {
		logging.Logger.Warn("Failed to record session start", "id", report.ID, "error", err)
	}
}

func (s *SessionService) finishLedger(ctx context.Context, report *domain.SessionReport) {
	if s.Ledger == nil {
		return
	}
	if err := s.Ledger.FinishSession(context.WithoutCancel(ctx), report.ID, report.Status); err != nil {
		logging.Logger.Warn("Failed to record session end", "id", report.ID, "error", err)
	}
}

func (s *SessionService) recordRun(ctx context.Context, sessionID string, result domain.ScenarioResult) {
	if s.Ledger == nil || sessionID == "" {
		return
	}
	if err := s.Ledger.RecordRun(context.WithoutCancel(ctx), sessionID, result); err != nil {
		logging.Logger.Warn("Failed to record run", "scenario", result.Scenario, "error", err)
	}
}
