package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/renato0307/covrun/internal/config"
	"github.com/renato0307/covrun/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Root        string           `help:"Project root (default: $COVRUN_PROJECT_ROOT or the enclosing Go module)" type:"path"`

	Session  SessionCmd  `cmd:"session" help:"Build the subject, run the scenarios and validate their reports"`
	PGO      PGOCmd      `cmd:"pgo" help:"Collect CPU profiles, merge them and build a profile-guided binary"`
	Build    BuildCmd    `cmd:"build" help:"Build the subject binary"`
	Exec     ExecCmd     `cmd:"exec" help:"Run a binary with coverage and profiler wiring"`
	Validate ValidateCmd `cmd:"validate" help:"Validate the payload of a generated report"`
	Extract  ExtractCmd  `cmd:"extract" help:"Extract one member from a tar or zip archive"`
	Merge    MergeCmd    `cmd:"merge" help:"Merge the CPU profiles found under the results directory"`
	Coverage CoverageCmd `cmd:"coverage" help:"Summarize the collected coverage counters"`
	Port     PortCmd     `cmd:"port" help:"Print an unused local TCP port"`
	Reset    ResetCmd    `cmd:"reset" help:"Clear the coverage and results directories"`
	History  HistoryCmd  `cmd:"history" help:"Show recorded sessions and runs"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (init, meta)"`

	// Internal fields (not flags)
	Container *Container `kong:"-"`
}

// AfterApply resolves the configuration, initializes logging and wires the container
func (c *CLI) AfterApply(ctx context.Context) error {
	cfg, err := config.Load(ctx, c.Root, os.Environ())
	if err != nil {
		return err
	}

	// Settings apply only when the flag is at its default and no env var is set
	if c.MaxLogFiles == 1000 {
		if _, hasEnv := os.LookupEnv("COVRUN_MAX_LOG_FILES"); !hasEnv {
			c.MaxLogFiles = cfg.MaxLogFiles
		}
	}
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("COVRUN_DEBUG"); !hasEnv {
			c.Debug = cfg.Debug
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Subject processes inherit these so their logs land in the same file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("COVRUN_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("COVRUN_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("COVRUN_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	logging.Logger.Info("Configuration loaded", "root", cfg.Paths.Root, "package", cfg.Package, "parallel", cfg.Parallel)

	// Create container AFTER logging is initialized so GORM logs somewhere
	container, err := NewContainer(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
