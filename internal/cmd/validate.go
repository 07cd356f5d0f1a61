package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/renato0307/covrun/internal/theme"
)

// ValidateCmd checks the embedded or standalone payload of a report file
type ValidateCmd struct {
	Path   string `arg:"" help:"Report file: .html, .json, or a .tar/.tar.gz/.zip archive" type:"existingfile"`
	Member string `help:"Archive member holding the report (archives only)"`
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
}

// Run executes the validate command
func (v *ValidateCmd) Run(cli *CLI) error {
	payload, err := cli.Container.Validator.ValidateReportFile(v.Path, v.Member)
	if err != nil {
		return err
	}

	if v.Format == "json" {
		output := map[string]any{
			"name": payload.Name,
			"path": v.Path,
			"size": payload.Size,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s %s (name: %s, size: %s)\n",
		theme.OKStyle.Render("valid"), v.Path, payload.DisplayName(), payload.DisplaySize())
	return nil
}
