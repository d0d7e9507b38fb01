//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	dichecker "github.com/farcloser/dichecker"
	"github.com/farcloser/dichecker/internal/render"
)

const htmlExtension = ".html"

var (
	errUsage         = errors.New("usage error")
	errReportArgs    = fmt.Errorf("%w: expected exactly two arguments: input log and output html file", errUsage)
	errOutputNotHTML = fmt.Errorf("%w: the output file must be '%s'", errUsage, htmlExtension)
)

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "raw",
			Usage:   "Insert field values into the report without HTML escaping",
			Sources: cli.EnvVars("DI_CHECKER_RAW"),
		},
		allGroupsFlag(),
		debugFlag(),
	}
}

func reportAction(_ context.Context, cmd *cli.Command) error {
	configureLogging(cmd)

	if cmd.NArg() != 2 {
		return fmt.Errorf("%w: got %d", errReportArgs, cmd.NArg())
	}

	inputPath := cmd.Args().Get(0)
	outputPath := cmd.Args().Get(1)

	// Checked before touching the input.
	if !strings.HasSuffix(outputPath, htmlExtension) {
		return fmt.Errorf("%q: %w", outputPath, errOutputNotHTML)
	}

	report, err := loadReport(inputPath, cmd.Bool("all-groups"))
	if err != nil {
		return err
	}

	if err := render.WriteFile(outputPath, report, render.Options{Raw: cmd.Bool("raw")}); err != nil {
		return err
	}

	fmt.Printf("The %s generated.\n", outputPath)

	return nil
}

func loadReport(inputPath string, allGroups bool) (*dichecker.Report, error) {
	records, err := dichecker.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	opts := dichecker.DefaultOptions()
	opts.AllGroups = allGroups

	return dichecker.Aggregate(records, opts)
}
