package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/renato0307/covrun/internal/logging"
)

// ResetCmd clears the coverage and results directories
type ResetCmd struct {
	Profile bool `help:"Also remove the merged default.pgo"`
}

// Run executes the reset command
func (r *ResetCmd) Run(cli *CLI) error {
	paths := cli.Container.Config.Paths

	release, err := cli.Container.Provisioner.LockSession(paths.SessionLockPath())
	if err != nil {
		return err
	}
	defer release()

	dirs := append(paths.CovdataDirs(), paths.ResultsDir())
	if err := cli.Container.Provisioner.ResetNamedDirectories(dirs...); err != nil {
		return err
	}

	if r.Profile {
		if err := removeIfExists(paths.MergedProfilePath()); err != nil {
			return err
		}
	}

	logging.Logger.Info("Reset harness directories", "dirs", dirs, "profile", r.Profile)
	for _, dir := range dirs {
		fmt.Printf("Cleared %s\n", dir)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
