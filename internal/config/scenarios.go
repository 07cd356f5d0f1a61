package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/covrun/internal/domain"
)

// Manifest is the scenarios.yaml document
type Manifest struct {
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// LoadScenarios reads and validates a scenario manifest
func LoadScenarios(path string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios file: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("invalid scenarios file %s: %w", path, err)
	}

	if err := domain.ValidateScenarios(manifest.Scenarios); err != nil {
		return nil, fmt.Errorf("invalid scenarios file %s: %w", path, err)
	}

	return manifest.Scenarios, nil
}

// ScenarioVars are the values substituted into scenario args and env
type ScenarioVars struct {
	Name    string
	Port    int
	Results string // The scenario's own results directory
	Root    string
}

// Expand returns a copy of sc with {name}, {port}, {results} and {root}
// replaced in its args, env values, report path and archive member.
func (v ScenarioVars) Expand(sc domain.Scenario) domain.Scenario {
	port := ""
	if v.Port > 0 {
		port = strconv.Itoa(v.Port)
	}
	r := strings.NewReplacer(
		"{name}", v.Name,
		"{port}", port,
		"{results}", v.Results,
		"{root}", v.Root,
	)

	out := sc
	out.Args = make([]string, len(sc.Args))
	for i, a := range sc.Args {
		out.Args[i] = r.Replace(a)
	}
	if sc.Env != nil {
		out.Env = make(map[string]string, len(sc.Env))
		for k, val := range sc.Env {
			out.Env[k] = r.Replace(val)
		}
	}
	out.Member = r.Replace(sc.Member)
	out.Report = r.Replace(sc.Report)
	return out
}
