package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/covrun/internal/domain"
)

// BuildCmd builds the subject binary into a directory
type BuildCmd struct {
	Mode   string `help:"Build mode: coverage, pgo or plain" default:"plain" enum:"coverage,pgo,plain"`
	Output string `help:"Directory receiving the binary" default:"." type:"path"`
}

// Run executes the build command
func (b *BuildCmd) Run(ctx context.Context, cli *CLI) error {
	mode, err := domain.ParseBuildMode(b.Mode)
	if err != nil {
		return err
	}

	handle, err := cli.Container.BuildService.Build(ctx, mode, b.Output)
	if err != nil {
		cli.Container.Reporter.Failure(err)
		return err
	}

	fmt.Println(handle.Path)
	return nil
}
