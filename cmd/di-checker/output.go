//nolint:wrapcheck
package main

import (
	"os"

	"github.com/farcloser/primordium/format"

	dichecker "github.com/farcloser/dichecker"
)

func printMeta(object string, meta map[string]any, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: object,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// passRan reports whether any record named the pass, even one that produced no failure.
func passRan(report *dichecker.Report, pass string) bool {
	for _, group := range report.Locations.Groups() {
		if group.Pass == pass {
			return true
		}
	}

	return false
}
