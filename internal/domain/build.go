package domain

import (
	"fmt"
	"strings"
)

// BuildMode selects how the subject binary is instrumented
type BuildMode string

const (
	ModeCoverage      BuildMode = "coverage"
	ModePlain         BuildMode = "plain"
	ModeProfileGuided BuildMode = "pgo"
)

// ParseBuildMode accepts the mode names used on the command line
func ParseBuildMode(s string) (BuildMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coverage", "cover":
		return ModeCoverage, nil
	case "pgo", "profile-guided":
		return ModeProfileGuided, nil
	case "plain", "":
		return ModePlain, nil
	default:
		return "", fmt.Errorf("unknown build mode %q", s)
	}
}

// BuildSpec describes one instrumented build. Treat it as immutable: use the
// With* helpers to derive variants.
type BuildSpec struct {
	Mode        BuildMode
	Package     string // Package or directory passed to go build
	ProfilePath string // Merged profile used with -pgo, profile-guided mode only
	Tags        []string
}

// Flags returns the go build flags implied by the build spec, excluding -o and the package
func (s BuildSpec) Flags() []string {
	var flags []string
	switch s.Mode {
	case ModeCoverage:
		// Windows defaults to PIE; keep the layout identical across platforms.
		// Atomic counters because the subject itself is concurrent.
		flags = append(flags, "-buildmode=exe", "-cover", "-covermode=atomic")
	case ModeProfileGuided:
		if s.ProfilePath != "" {
			flags = append(flags, "-pgo="+s.ProfilePath)
		}
	}
	if len(s.Tags) > 0 {
		flags = append(flags, "-tags", strings.Join(s.Tags, ","))
	}
	return flags
}

// WithProfile returns a copy of the build spec using the given merged profile
func (s BuildSpec) WithProfile(path string) BuildSpec {
	s.Tags = append([]string(nil), s.Tags...)
	s.ProfilePath = path
	return s
}

// CollectsProfiles reports whether subjects built in mode write CPU profiles.
// Coverage builds carry the profiler tag and profile-guided builds the pgo
// tag; plain builds carry neither.
func (m BuildMode) CollectsProfiles() bool {
	return m == ModeCoverage || m == ModeProfileGuided
}

// PreserveBinary reports whether the binary outlives its build session
func (s BuildSpec) PreserveBinary() bool {
	return s.Mode == ModeCoverage
}

// SubjectHandle is a built subject binary owned by the caller that requested it
type SubjectHandle struct {
	Path    string
	Scratch ScratchEnvironment
	Spec    BuildSpec
}
