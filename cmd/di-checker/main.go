package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/dichecker/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:      version.Name(),
		Usage:     "Render a DI checker log as an HTML report",
		ArgsUsage: "<input.jsonl> <output.html>",
		Version:   version.Version() + " " + version.Commit(),
		Flags:     reportFlags(),
		Action:    reportAction,
		Commands: []*cli.Command{
			digestCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
