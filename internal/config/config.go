package config

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/covrun/internal/domain"
)

// Config is the resolved harness configuration.
// Precedence: CLI flags > env vars > settings.json > defaults.
// CLI flags are applied by the command layer on top of Load's result.
type Config struct {
	BinaryName    string
	CoverageTags  []string
	Debug         bool
	MaxLogFiles   int
	ObjectStore   ObjectStoreConfig
	Package       string
	Parallel      int
	Paths         Paths
	PGOTags       []string
	PlainTags     []string
	RunTimeout    time.Duration
	ScenariosFile string
}

// Default returns the built-in configuration for root
func Default(root string) *Config {
	return &Config{
		BinaryName:    DefaultBinaryName,
		CoverageTags:  DefaultCoverageTags,
		MaxLogFiles:   DefaultMaxLogFiles,
		Package:       DefaultPackage,
		Parallel:      DefaultParallel,
		Paths:         NewPaths(root),
		PGOTags:       DefaultPGOTags,
		PlainTags:     DefaultPlainTags,
		RunTimeout:    DefaultRunTimeoutSeconds * time.Second,
		ScenariosFile: DefaultScenariosFile,
	}
}

// Load resolves the project root and layers settings.json and the
// environment on top of the defaults. An explicit root wins over
// COVRUN_PROJECT_ROOT and discovery.
func Load(ctx context.Context, root string, environ []string) (*Config, error) {
	envCfg, err := ParseEnv(environ)
	if err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if root == "" {
		root = envCfg.ProjectRoot
	}
	if root == "" {
		root, err = FindProjectRoot(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	cfg := Default(root)

	settings, err := LoadSettings(cfg.Paths.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg.applySettings(settings)
	cfg.applyEnv(envCfg)

	if cfg.ObjectStore.Enabled() {
		if err := cfg.ObjectStore.Validate(); err != nil {
			return nil, fmt.Errorf("invalid object store configuration: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) applySettings(s *Settings) {
	if s.BinaryName != "" {
		c.BinaryName = s.BinaryName
	}
	if len(s.CoverageTags) > 0 {
		c.CoverageTags = s.CoverageTags
	}
	if s.Debug != nil {
		c.Debug = *s.Debug
	}
	if s.MaxLogFiles != nil {
		c.MaxLogFiles = *s.MaxLogFiles
	}
	if s.Package != "" {
		c.Package = s.Package
	}
	if s.Parallel != nil && *s.Parallel > 0 {
		c.Parallel = *s.Parallel
	}
	if len(s.PGOTags) > 0 {
		c.PGOTags = s.PGOTags
	}
	if len(s.PlainTags) > 0 {
		c.PlainTags = s.PlainTags
	}
	if s.RunTimeoutSeconds != nil && *s.RunTimeoutSeconds > 0 {
		c.RunTimeout = time.Duration(*s.RunTimeoutSeconds) * time.Second
	}
	if s.ScenariosFile != "" {
		c.ScenariosFile = s.ScenariosFile
	}
}

// Settings returns the effective configuration in settings.json form.
// The object store is environment-only and is never written out.
func (c *Config) Settings() *Settings {
	debug := c.Debug
	maxLogFiles := c.MaxLogFiles
	parallel := c.Parallel
	timeout := int(c.RunTimeout / time.Second)
	return &Settings{
		BinaryName:        c.BinaryName,
		CoverageTags:      append(StringArray(nil), c.CoverageTags...),
		Debug:             &debug,
		MaxLogFiles:       &maxLogFiles,
		Package:           c.Package,
		Parallel:          &parallel,
		PGOTags:           append(StringArray(nil), c.PGOTags...),
		PlainTags:         append(StringArray(nil), c.PlainTags...),
		RunTimeoutSeconds: &timeout,
		ScenariosFile:     c.ScenariosFile,
	}
}

func (c *Config) applyEnv(e *EnvConfig) {
	if e.BinaryName != "" {
		c.BinaryName = e.BinaryName
	}
	if len(e.CoverageTags) > 0 {
		c.CoverageTags = e.CoverageTags
	}
	if e.Package != "" {
		c.Package = e.Package
	}
	if e.Parallel != nil && *e.Parallel > 0 {
		c.Parallel = *e.Parallel
	}
	if len(e.PGOTags) > 0 {
		c.PGOTags = e.PGOTags
	}
	if len(e.PlainTags) > 0 {
		c.PlainTags = e.PlainTags
	}
	if e.RunTimeout > 0 {
		c.RunTimeout = e.RunTimeout
	}
	if e.ScenariosFile != "" {
		c.ScenariosFile = e.ScenariosFile
	}
	c.ObjectStore = e.ObjectStore
}

// BuildSpec returns the build spec for mode. Profile-guided builds use the
// merged profile when it exists.
func (c *Config) BuildSpec(mode domain.BuildMode, profileExists bool) domain.BuildSpec {
	spec := domain.BuildSpec{
		Mode:    mode,
		Package: c.Package,
	}
	switch mode {
	case domain.ModeCoverage:
		spec.Tags = append([]string(nil), c.CoverageTags...)
	case domain.ModeProfileGuided:
		spec.Tags = append([]string(nil), c.PGOTags...)
		if profileExists {
			spec.ProfilePath = c.Paths.MergedProfilePath()
		}
	default:
		spec.Tags = append([]string(nil), c.PlainTags...)
	}
	return spec
}
