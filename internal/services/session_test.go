package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/covrun/internal/adapters/objectstore"
	"github.com/renato0307/covrun/internal/adapters/scratch"
	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/ports"
	portsmocks "github.com/renato0307/covrun/internal/ports/mocks"
)

type sessionFixture struct {
	artifacts  *portsmocks.MockArtifactStore
	cfg        *config.Config
	ledger     *portsmocks.MockRunLedgerWriter
	reporter   *recordingReporter
	runner     *portsmocks.MockProcessRunner
	summarizer *portsmocks.MockCoverageSummarizer
	svc        *SessionService
	toolchain  *portsmocks.MockToolchain
	validator  *portsmocks.MockReportValidator
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		artifacts:  portsmocks.NewMockArtifactStore(t),
		cfg:        newTestConfig(t),
		ledger:     portsmocks.NewMockRunLedgerWriter(t),
		reporter:   newRecordingReporter(),
		runner:     portsmocks.NewMockProcessRunner(t),
		summarizer: portsmocks.NewMockCoverageSummarizer(t),
		toolchain:  portsmocks.NewMockToolchain(t),
		validator:  portsmocks.NewMockReportValidator(t),
	}
	paths := f.cfg.Paths
	provisioner := scratch.NewProvisioner(t.TempDir())

	f.svc = NewSessionService(SessionDeps{
		Aggregation: NewAggregationService(f.toolchain, f.reporter, paths.MergedProfilePath()),
		Artifacts:   f.artifacts,
		Builds:      NewBuildService(f.cfg, f.toolchain, provisioner, objectstore.NewFileStore(paths.ResultsDir())),
		Coverage:    NewCoverageService(f.toolchain, f.summarizer, paths.CovdataDirs(), paths.CoverageProfilePath()),
		Ledger:      f.ledger,
		Paths:       paths,
		Ports:       provisioner,
		Provisioner: provisioner,
		Reporter:    f.reporter,
		Runs:        NewRunService(f.runner, paths.Root, paths.CovdataIntegrationDir()).WithEnviron(func() []string { return nil }),
		RunTimeout:  time.Minute,
		Validator:   f.validator,
	})
	return f
}

func envValue(env []string, key string) string {
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// fakeSubject emulates the instrumented binary: it drops coverage counters
// into GOCOVERDIR and a CPU profile below OUTPUT_DIR when one is exported
func fakeSubject(t *testing.T) func(context.Context, ports.ProcessSpec) (ports.ProcessOutput, error) {
	return func(_ context.Context, spec ports.ProcessSpec) (ports.ProcessOutput, error) {
		writeTestFile(t, filepath.Join(envValue(spec.Env, domain.EnvCoverDir), "covcounters."+filepath.Base(spec.Args[len(spec.Args)-1])), "counters")
		if out := envValue(spec.Env, domain.EnvOutputDir); out != "" {
			writeTestFile(t, filepath.Join(out, domain.ProfilerDirName, domain.ProfileFileName), "pprof")
		}
		return ports.ProcessOutput{Elapsed: 10 * time.Millisecond}, nil
	}
}

func TestSessionRun_FullCoverageSession(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	paths := f.cfg.Paths

	scenarios := []domain.Scenario{
		{Args: []string{"--format", "html", "--output", "{results}/report.html", "html"}, Name: "html", Profile: true, Report: "report.html"},
		{Args: []string{"--format", "json", "json"}, Name: "json", Report: "out.json"},
	}

	f.toolchain.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(writeBinary)
	f.runner.EXPECT().Run(mock.Anything, mock.Anything).RunAndReturn(fakeSubject(t)).Times(2)
	f.validator.EXPECT().ValidateReportFile(filepath.Join(paths.ScenarioDir("html"), "report.html"), "").
		Return(domain.ReportPayload{Name: json.RawMessage(`"gsa"`)}, nil)
	f.validator.EXPECT().ValidateReportFile(filepath.Join(paths.ScenarioDir("json"), "out.json"), "").
		Return(domain.ReportPayload{Name: json.RawMessage(`"gsa"`)}, nil)

	f.toolchain.EXPECT().CoverageText(mock.Anything, []string{paths.CovdataIntegrationDir()}, paths.CoverageProfilePath()).
		RunAndReturn(func(_ context.Context, _ []string, output string) error {
			writeTestFile(t, output, "mode: atomic\n")
			return nil
		})
	f.summarizer.EXPECT().Summarize(paths.CoverageProfilePath()).Return(domain.CoverageSummary{
		ProfilePath: paths.CoverageProfilePath(),
		Total:       domain.FileCoverage{Covered: 1, File: "total", Statements: 2},
	}, nil)
	f.toolchain.EXPECT().MergeProfiles(mock.Anything, []string{filepath.Join(paths.ScenarioDir("html"), domain.ProfileRelPath)}).
		Return([]byte("merged"), nil)

	f.ledger.EXPECT().StartSession(mock.Anything, mock.Anything, domain.ModeCoverage).Return(nil)
	f.ledger.EXPECT().RecordRun(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
	f.ledger.EXPECT().FinishSession(mock.Anything, mock.Anything, domain.SessionPassed).Return(nil)

	var published []string
	f.artifacts.EXPECT().Put(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, key, path string) (string, error) {
			assert.FileExists(t, path)
			published = append(published, key)
			return "s3://covrun/" + key, nil
		}).Times(3)

	report, err := f.svc.Run(ctx, SessionOptions{
		Merge:     true,
		Mode:      domain.ModeCoverage,
		Publish:   true,
		Scenarios: scenarios,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SessionPassed, report.Status)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "html", report.Results[0].Scenario)
	assert.Equal(t, "json", report.Results[1].Scenario)
	assert.NotNil(t, report.Results[0].Payload)

	require.NotNil(t, report.Coverage)
	assert.InDelta(t, 50.0, report.Coverage.Total.Percent(), 0.001)

	require.NotNil(t, report.Profiles)
	assert.Equal(t, []string{"json"}, report.Profiles.Skipped)
	assert.FileExists(t, paths.MergedProfilePath())

	assert.FileExists(t, filepath.Join(paths.ResultsDir(), BinaryFileName("gsa")), "coverage binary is preserved")
	assert.ElementsMatch(t, []string{
		report.ID + "/coverage.out",
		report.ID + "/" + BinaryFileName("gsa"),
		report.ID + "/default.pgo",
	}, published)

	assert.Equal(t, domain.OutcomeOK, f.reporter.outcomes["html"])
	assert.Equal(t, domain.OutcomeOK, f.reporter.outcomes["json"])
	assert.Empty(t, f.reporter.failures)
}

func TestSessionRun_BuildFailureAborts(t *testing.T) {
	f := newSessionFixture(t)

	f.toolchain.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.HarnessError{Kind: domain.ErrBuildFailure, Op: "build", Output: "\nstderr:\nsyntax error"})
	f.ledger.EXPECT().StartSession(mock.Anything, mock.Anything, domain.ModeProfileGuided).Return(nil)
	f.ledger.EXPECT().FinishSession(mock.Anything, mock.Anything, domain.SessionAborted).Return(nil)

	report, err := f.svc.Run(context.Background(), SessionOptions{
		Merge:     true,
		Mode:      domain.ModeProfileGuided,
		Scenarios: []domain.Scenario{{Name: "html"}},
	})

	require.Error(t, err)
	assert.True(t, domain.IsFatal(err))
	assert.Equal(t, domain.SessionAborted, report.Status)
	assert.Empty(t, report.Results)
	assert.Len(t, f.reporter.failures, 1)
	assert.NoFileExists(t, f.cfg.Paths.MergedProfilePath())
}

func TestSessionRun_ScenarioFailuresDoNotAbort(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.Ledger = nil

	f.toolchain.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(writeBinary)
	f.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s ports.ProcessSpec) bool { return s.Args[1] == "bad" })).
		Return(ports.ProcessOutput{ExitCode: 2, Stderr: "unknown flag"}, nil)
	f.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s ports.ProcessSpec) bool { return s.Args[1] == "slow" })).
		Return(ports.ProcessOutput{ExitCode: -1, TimedOut: true}, nil)
	f.runner.EXPECT().Run(mock.Anything, mock.MatchedBy(func(s ports.ProcessSpec) bool { return s.Args[1] == "good" })).
		Return(ports.ProcessOutput{}, nil)
	f.validator.EXPECT().ValidateReportFile(mock.Anything, "").
		Return(domain.ReportPayload{}, &domain.HarnessError{Key: "size", Kind: domain.ErrSchemaViolation, Op: "validate payload"})

	report, err := f.svc.Run(context.Background(), SessionOptions{
		Mode: domain.ModePlain,
		Scenarios: []domain.Scenario{
			{Args: []string{"bad"}, Name: "bad"},
			{Args: []string{"slow"}, Name: "slow"},
			{Args: []string{"good"}, Name: "good", Report: "out.json"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SessionFailed, report.Status)
	require.Len(t, report.Failed(), 3)
	assert.Equal(t, domain.OutcomeRunFailure, report.Results[0].Outcome())
	assert.Equal(t, domain.OutcomeTimeout, report.Results[1].Outcome())
	assert.ErrorIs(t, report.Results[1].Err, domain.ErrTimeout)
	assert.Equal(t, domain.OutcomeValidationFailure, report.Results[2].Outcome())
	assert.ErrorIs(t, report.Results[2].Err, domain.ErrSchemaViolation)
	assert.Len(t, f.reporter.failures, 3)
}

func TestSessionRun_RejectsDuplicateScenarios(t *testing.T) {
	f := newSessionFixture(t)

	report, err := f.svc.Run(context.Background(), SessionOptions{
		Mode:      domain.ModePlain,
		Scenarios: []domain.Scenario{{Name: "a"}, {Name: "a"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
	assert.Equal(t, domain.SessionAborted, report.Status)
}

func TestSessionRun_ResetsStaleData(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.Ledger = nil
	paths := f.cfg.Paths
	writeTestFile(t, filepath.Join(paths.ScenarioDir("old"), domain.ProfileRelPath), "stale")
	writeTestFile(t, filepath.Join(paths.CovdataIntegrationDir(), "covcounters.old"), "stale")

	f.toolchain.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(writeBinary)
	f.runner.EXPECT().Run(mock.Anything, mock.Anything).Return(ports.ProcessOutput{}, nil)

	_, err := f.svc.Run(context.Background(), SessionOptions{
		Mode:      domain.ModePlain,
		Scenarios: []domain.Scenario{{Args: []string{"new"}, Name: "new"}},
	})

	require.NoError(t, err)
	assert.NoDirExists(t, paths.ScenarioDir("old"))
	assert.NoFileExists(t, filepath.Join(paths.CovdataIntegrationDir(), "covcounters.old"))
	assert.DirExists(t, paths.ScenarioDir("new"))
}

func TestSessionRun_ParallelKeepsScenarioOrder(t *testing.T) {
	f := newSessionFixture(t)
	f.svc.Ledger = nil

	var running, peak atomic.Int32
	f.toolchain.EXPECT().Build(mock.Anything, mock.Anything, mock.Anything).RunAndReturn(writeBinary)
	f.runner.EXPECT().Run(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, spec ports.ProcessSpec) (ports.ProcessOutput, error) {
			n := running.Add(1)
			defer running.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			// Earlier scenarios finish last
			d, _ := time.ParseDuration(spec.Args[1])
			time.Sleep(d)
			return ports.ProcessOutput{}, nil
		}).Times(4)

	report, err := f.svc.Run(context.Background(), SessionOptions{
		Mode:     domain.ModePlain,
		Parallel: 2,
		Scenarios: []domain.Scenario{
			{Args: []string{"40ms"}, Name: "a"},
			{Args: []string{"30ms"}, Name: "b"},
			{Args: []string{"20ms"}, Name: "c"},
			{Args: []string{"10ms"}, Name: "d"},
		},
	})

	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	for i, name := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, name, report.Results[i].Scenario)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestSessionRun_LockedByAnotherSession(t *testing.T) {
	f := newSessionFixture(t)
	lock, err := scratch.AcquireSessionLock(f.cfg.Paths.SessionLockPath())
	require.NoError(t, err)
	defer lock.Release()

	report, err := f.svc.Run(context.Background(), SessionOptions{
		Mode:      domain.ModePlain,
		Scenarios: []domain.Scenario{{Name: "a"}},
	})

	assert.ErrorIs(t, err, scratch.ErrSessionLocked)
	assert.Equal(t, domain.SessionAborted, report.Status)
}

func TestRunScenario_PortAndVariables(t *testing.T) {
	f := newSessionFixture(t)
	paths := f.cfg.Paths
	subject := domain.SubjectHandle{Path: "/tmp/gsa"}

	f.runner.EXPECT().Run(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, spec ports.ProcessSpec) (ports.ProcessOutput, error) {
			require.Len(t, spec.Args, 4)
			assert.Equal(t, "/tmp/gsa", spec.Args[0])
			assert.Equal(t, "--listen", spec.Args[1])
			assert.NotContains(t, spec.Args[2], "{port}")
			assert.Equal(t, filepath.Join(paths.ScenarioDir("web"), "web.html"), spec.Args[3])
			assert.Equal(t, paths.Root, spec.Dir)
			assert.Equal(t, 5*time.Second, spec.Timeout)
			return ports.ProcessOutput{}, nil
		})

	result := f.svc.RunScenario(context.Background(), "", subject, domain.Scenario{
		Args:      []string{"--listen", "localhost:{port}", "{results}/{name}.html"},
		Name:      "web",
		NeedsPort: true,
		Timeout:   5 * time.Second,
	})

	require.NoError(t, result.Err)
	assert.Equal(t, domain.OutcomeOK, result.Outcome())
	_, statErr := os.Stat(paths.ScenarioDir("web"))
	assert.NoError(t, statErr)
}
