package config

// Defaults for a go-size-analyzer checkout
const (
	DefaultBinaryName        = "gsa"
	DefaultMaxLogFiles       = 1000
	DefaultPackage           = "./cmd/gsa"
	DefaultParallel          = 1
	DefaultPortRangeEnd      = 60000
	DefaultPortRangeStart    = 20000
	DefaultRunTimeoutSeconds = 120
	DefaultScenariosFile     = "scenarios.yaml"
)

// Build tags per mode
var (
	DefaultCoverageTags = []string{"embed", "profiler"}
	DefaultPGOTags      = []string{"embed", "pgo"}
	DefaultPlainTags    = []string{"embed"}
)
