package cmd

import (
	"io"

	adaptercoverage "github.com/renato0307/covrun/internal/adapters/coverage"
	adapterobjectstore "github.com/renato0307/covrun/internal/adapters/objectstore"
	adapterprocess "github.com/renato0307/covrun/internal/adapters/process"
	adapterreport "github.com/renato0307/covrun/internal/adapters/report"
	adapterscratch "github.com/renato0307/covrun/internal/adapters/scratch"
	adapterstorage "github.com/renato0307/covrun/internal/adapters/storage"
	adaptertoolchain "github.com/renato0307/covrun/internal/adapters/toolchain"
	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/logging"
	"github.com/renato0307/covrun/internal/ports"
	"github.com/renato0307/covrun/internal/reporter"
	"github.com/renato0307/covrun/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config

	// Adapters
	Artifacts   ports.ArtifactStore
	Ledger      ports.RunLedger
	Provisioner *adapterscratch.Provisioner
	Reporter    *reporter.Console
	Toolchain   ports.Toolchain
	Validator   *adapterreport.Validator

	// Services
	AggregationService *services.AggregationService
	BuildService       *services.BuildService
	CoverageService    *services.CoverageService
	RunService         *services.RunService
	SessionService     *services.SessionService
}

// NewContainer creates a new Container with all dependencies wired.
// Progress lines are written to out.
func NewContainer(cfg *config.Config, out io.Writer) (*Container, error) {
	paths := cfg.Paths

	// Create adapters
	ledger, err := adapterstorage.NewSQLiteLedger(paths.LedgerPath())
	if err != nil {
		return nil, err
	}

	artifacts, err := newArtifactStore(cfg)
	if err != nil {
		ledger.Close()
		return nil, err
	}

	runner := adapterprocess.NewOSRunner()
	toolchain := adaptertoolchain.NewGoToolchain(paths.Root, runner)
	provisioner := adapterscratch.NewProvisioner("")
	console := reporter.NewConsole(out, reporter.NewClock())
	validator := adapterreport.NewValidator()

	// Create services
	aggregationService := services.NewAggregationService(toolchain, console, paths.MergedProfilePath())
	buildService := services.NewBuildService(cfg, toolchain, provisioner, adapterobjectstore.NewFileStore(paths.ResultsDir()))
	coverageService := services.NewCoverageService(toolchain, adaptercoverage.NewSummarizer(), paths.CovdataDirs(), paths.CoverageProfilePath())
	runService := services.NewRunService(runner, paths.Root, paths.CovdataIntegrationDir())
	sessionService := services.NewSessionService(services.SessionDeps{
		Aggregation: aggregationService,
		Artifacts:   artifacts,
		Builds:      buildService,
		Coverage:    coverageService,
		Ledger:      ledger,
		Paths:       paths,
		Ports:       provisioner,
		Provisioner: provisioner,
		Reporter:    console,
		Runs:        runService,
		RunTimeout:  cfg.RunTimeout,
		Validator:   validator,
	})

	return &Container{
		AggregationService: aggregationService,
		Artifacts:          artifacts,
		BuildService:       buildService,
		Config:             cfg,
		CoverageService:    coverageService,
		Ledger:             ledger,
		Provisioner:        provisioner,
		Reporter:           console,
		RunService:         runService,
		SessionService:     sessionService,
		Toolchain:          toolchain,
		Validator:          validator,
	}, nil
}

// newArtifactStore picks the object store when one is configured and the
// local artifacts directory otherwise
func newArtifactStore(cfg *config.Config) (ports.ArtifactStore, error) {
	if cfg.ObjectStore.Enabled() {
		logging.Logger.Info("Publishing artifacts to object store", "endpoint", cfg.ObjectStore.Endpoint, "bucket", cfg.ObjectStore.Bucket)
		store, err := adapterobjectstore.NewMinIOStore(cfg.ObjectStore)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return adapterobjectstore.NewFileStore(cfg.Paths.ArtifactsDir()), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Ledger != nil {
		return c.Ledger.Close()
	}
	return nil
}
