package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/covrun/internal/services"
)

// MergeCmd merges the CPU profiles left by earlier runs
type MergeCmd struct {
	Output  string `help:"Merged profile path (default: default.pgo in the project root)" type:"path"`
	Results string `help:"Results directory to scan (default: results in the project root)" type:"path"`
}

// Run executes the merge command
func (m *MergeCmd) Run(ctx context.Context, cli *CLI) error {
	paths := cli.Container.Config.Paths

	results := m.Results
	if results == "" {
		results = paths.ResultsDir()
	}

	aggregation := cli.Container.AggregationService
	if m.Output != "" {
		aggregation = services.NewAggregationService(cli.Container.Toolchain, cli.Container.Reporter, m.Output)
	}

	set, err := aggregation.MergeProfiles(ctx, results)
	if err != nil {
		cli.Container.Reporter.Failure(err)
		return err
	}

	fmt.Printf("Merged %d profiles into %s\n", len(set.Entries), set.MergedPath)
	return nil
}
