package domain

import "path/filepath"

// Fixed layout of the profiler output inside a scenario results directory
const (
	MergedProfileName = "default.pgo"
	ProfileFileName   = "cpu.pprof"
	ProfilerDirName   = "profiler"
	ScenarioJSONDir   = "json"
)

// ProfileRelPath is where a scenario's CPU profile lives relative to its results directory
var ProfileRelPath = filepath.Join(ScenarioJSONDir, ProfilerDirName, ProfileFileName)

// ProfileEntry is one discovered per-run profile
type ProfileEntry struct {
	Path     string
	Scenario string // Name of the containing results subdirectory
}

// ProfileSet is the set of discovered profiles and the merged artifact built from them
type ProfileSet struct {
	Entries    []ProfileEntry
	MergedPath string
	Skipped    []string // Results subdirectories without profiler output
}

// Paths returns the profile paths in discovery order
func (p ProfileSet) Paths() []string {
	paths := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		paths = append(paths, e.Path)
	}
	return paths
}
