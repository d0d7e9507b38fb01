//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/dichecker/internal/output"
)

var (
	errDigestArgs  = errors.New("expected exactly one argument: path to the di-checker log")
	errUnknownPass = errors.New("pass not found in log")
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Summarize a DI checker log on the console without writing HTML",
		ArgsUsage: "<input.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
				Sources: cli.EnvVars("DI_CHECKER_FORMAT"),
			},
			&cli.StringFlag{
				Name:  "pass",
				Usage: "Show every failure reported by a specific pass",
			},
			allGroupsFlag(),
			debugFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			configureLogging(cmd)

			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errDigestArgs, cmd.NArg())
			}

			inputPath := cmd.Args().First()

			report, err := loadReport(inputPath, cmd.Bool("all-groups"))
			if err != nil {
				return err
			}

			meta := output.ReportToMap(report)

			if pass := cmd.String("pass"); pass != "" {
				if !passRan(report, pass) {
					return fmt.Errorf("%q: %w", pass, errUnknownPass)
				}

				meta = output.PassToMap(report, pass)
			}

			return printMeta(inputPath, meta, cmd.String("format"))
		},
	}
}
