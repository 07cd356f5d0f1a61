package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/renato0307/covrun/internal/cmd"
	"github.com/renato0307/covrun/internal/theme"
)

// Build information injected at build time via ldflags
// Example: -ldflags="-X main.Version=v1.0.0 -X main.Commit=abc123 ..."
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Tagline is the application's tagline used in help text and documentation
const Tagline = "Build, instrument, run and verify a Go command-line tool"

// versionInfo returns formatted version information for CLI display
func versionInfo() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		theme.AppNameStyle.Render("covrun"), theme.VersionStyle.Render(Version), Commit, Date, GoVersion)
}

func main() {
	// Interrupts cancel in-flight builds and runs; process groups are killed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Container is created in CLI.AfterApply() after logging is initialized
	var cli cmd.CLI
	kctx := kong.Parse(&cli,
		kong.Name("covrun"),
		kong.Description(theme.TaglineStyle.Render(Tagline)),
		kong.Vars{
			"version": versionInfo(),
		},
		kong.UsageOnError(),
		kong.Bind(&cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err := kctx.Run()
	cli.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
