package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

// CoverageCmd summarizes the coverage counters left by earlier runs
type CoverageCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the coverage command
func (c *CoverageCmd) Run(ctx context.Context, cli *CLI) error {
	summary, err := cli.Container.CoverageService.Summarize(ctx)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		type fileJSON struct {
			Covered    int     `json:"covered"`
			File       string  `json:"file"`
			Percent    float64 `json:"percent"`
			Statements int     `json:"statements"`
		}
		files := make([]fileJSON, 0, len(summary.Files))
		for _, f := range summary.Files {
			files = append(files, fileJSON{Covered: f.Covered, File: f.File, Percent: f.Percent(), Statements: f.Statements})
		}
		output := map[string]any{
			"files":   files,
			"percent": summary.Total.Percent(),
			"profile": summary.ProfilePath,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	renderCoverage(summary)
	return nil
}
