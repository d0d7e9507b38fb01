package main

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

func debugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"D"},
		Usage:   "Enable debug logging",
		Sources: cli.EnvVars("DI_CHECKER_DEBUG"),
	}
}

func allGroupsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "all-groups",
		Usage:   "Read every bug group of a record instead of only the first one",
		Sources: cli.EnvVars("DI_CHECKER_ALL_GROUPS"),
	}
}

func configureLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}
