package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/renato0307/covrun/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Init SettingsInitCmd `cmd:"init" help:"Write the effective configuration to the settings file"`
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
}

// SettingsInitCmd writes settings.json from the effective configuration
type SettingsInitCmd struct {
	Force bool `help:"Overwrite an existing settings file"`
}

// Run executes the init command
func (s *SettingsInitCmd) Run(cli *CLI) error {
	cfg := cli.Container.Config
	path := cfg.Paths.SettingsPath()

	if _, err := os.Stat(path); err == nil && !s.Force {
		return fmt.Errorf("settings file already exists: %s (use --force to overwrite)", path)
	}

	if err := config.SaveSettings(path, cfg.Settings()); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := cli.Container.Config.Paths.SettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		return printJSON(map[string]any{
			"format":        example,
			"settings_file": settingsFile,
		})
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.json:")
	fmt.Println()

	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		var valueStr string
		switch v := example[key].(type) {
		case []string:
			data, _ := json.Marshal(v)
			valueStr = string(data)
		case string:
			valueStr = v
		default:
			valueStr = fmt.Sprintf("%v", v)
		}
		fmt.Fprintf(w, "%s\t%s\n", key, valueStr)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Environment variables (COVRUN_*) override the file; flags override both.")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}
