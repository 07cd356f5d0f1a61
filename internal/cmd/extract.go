package cmd

import (
	"fmt"
	"os"

	"github.com/renato0307/covrun/internal/adapters/archive"
)

// ExtractCmd pulls one member out of an archive by base name
type ExtractCmd struct {
	Archive string `arg:"" help:"Archive file (.tar, .tar.gz, .tgz or .zip)" type:"existingfile"`
	Member  string `arg:"" help:"Base name of the member to extract"`
	Output  string `help:"Write the member here instead of stdout" short:"o" type:"path"`
}

// Run executes the extract command
func (e *ExtractCmd) Run() error {
	format, ok := archive.DetectFormat(e.Archive)
	if !ok {
		return fmt.Errorf("unsupported archive type: %s", e.Archive)
	}

	data, err := os.ReadFile(e.Archive)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	member, err := archive.ExtractMember(data, e.Member, format)
	if err != nil {
		return err
	}

	if e.Output == "" {
		_, err = os.Stdout.Write(member)
		return err
	}
	if err := os.WriteFile(e.Output, member, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.Output, err)
	}
	return nil
}
