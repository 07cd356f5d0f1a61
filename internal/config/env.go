package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the COVRUN_* environment overrides
type EnvConfig struct {
	BinaryName    string        `env:"BINARY_NAME"`
	CoverageTags  []string      `env:"COVERAGE_TAGS" envSeparator:","`
	Package       string        `env:"PACKAGE"`
	Parallel      *int          `env:"PARALLEL"`
	PGOTags       []string      `env:"PGO_TAGS" envSeparator:","`
	PlainTags     []string      `env:"PLAIN_TAGS" envSeparator:","`
	ProjectRoot   string        `env:"PROJECT_ROOT"`
	RunTimeout    time.Duration `env:"RUN_TIMEOUT"`
	ScenariosFile string        `env:"SCENARIOS"`

	ObjectStore ObjectStoreConfig `envPrefix:"S3_"`
}

// ObjectStoreConfig configures artifact publishing to an S3 compatible store.
// Publishing is disabled when Endpoint is empty.
type ObjectStoreConfig struct {
	AccessKey string `env:"ACCESS_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"covrun-artifacts"`
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	SecretKey string `env:"SECRET_KEY"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Enabled reports whether an object store was configured
func (c ObjectStoreConfig) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// Validate checks an enabled object store configuration
func (c ObjectStoreConfig) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("endpoint is required")
	}
	if strings.Contains(c.Endpoint, "://") {
		return fmt.Errorf("endpoint must not include scheme: %q", c.Endpoint)
	}
	if strings.TrimSpace(c.AccessKey) == "" {
		return errors.New("access key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret key is required")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("bucket is required")
	}
	return nil
}

// ParseEnv parses COVRUN_* variables from environ
func ParseEnv(environ []string) (*EnvConfig, error) {
	var cfg EnvConfig

	err := env.ParseWithOptions(&cfg, env.Options{
		Environment: env.ToMap(environ),
		Prefix:      "COVRUN_",
	})
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
