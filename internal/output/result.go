// Package output provides shared report serialization for di-checker digest output.
package output

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	dichecker "github.com/farcloser/dichecker"
)

// Stats describes how failures of one kind spread across passes.
type Stats struct {
	MeanPerPass   float64
	StdDevPerPass float64
	MaxPerPass    float64
	WorstPass     string
}

// PassStats computes per-pass statistics from a summary. Ties for the worst pass go to the
// alphabetically first one.
func PassStats(summary *dichecker.Summary) Stats {
	rows := summary.Sorted()
	if len(rows) == 0 {
		return Stats{}
	}

	counts := make([]float64, len(rows))
	for i, row := range rows {
		counts[i] = float64(row.Count)
	}

	mean, stddev := stat.MeanStdDev(counts, nil)
	worst := floats.MaxIdx(counts)

	// MeanStdDev returns NaN for a single sample.
	if len(counts) == 1 {
		stddev = 0
	}

	return Stats{
		MeanPerPass:   mean,
		StdDevPerPass: stddev,
		MaxPerPass:    counts[worst],
		WorstPass:     rows[worst].Pass,
	}
}

// ReportToMap converts an aggregated report into the canonical map structure
// used for console, JSON and markdown digests.
func ReportToMap(report *dichecker.Report) map[string]any {
	return map[string]any{
		"records": report.Records,
		"location": kindToMap(
			report.Locations.Len(),
			countFiles(report.Locations.Groups()),
			countGroups(report.Locations.Groups()),
			report.LocationSummary,
		),
		"subprogram": kindToMap(
			report.Subprograms.Len(),
			countFiles(report.Subprograms.Groups()),
			countGroups(report.Subprograms.Groups()),
			report.SubprogramSummary,
		),
	}
}

func kindToMap(total, files, groups int, summary *dichecker.Summary) map[string]any {
	passes := make(map[string]any, summary.Len())
	for _, row := range summary.Sorted() {
		passes[row.Pass] = row.Count
	}

	stats := PassStats(summary)

	meta := map[string]any{
		"total":  total,
		"files":  files,
		"groups": groups,
		"passes": passes,
	}

	if summary.Len() > 0 {
		meta["statistics"] = map[string]any{
			"mean_per_pass":   stats.MeanPerPass,
			"stddev_per_pass": stats.StdDevPerPass,
			"max_per_pass":    stats.MaxPerPass,
			"worst_pass":      stats.WorstPass,
		}
	}

	return meta
}

// countGroups counts the (file, pass) pairs that produced at least one failure.
func countGroups[T dichecker.Failure](groups []*dichecker.Group[T]) int {
	count := 0

	for _, group := range groups {
		if len(group.Failures) > 0 {
			count++
		}
	}

	return count
}

// countFiles counts the source files with at least one failure.
func countFiles[T dichecker.Failure](groups []*dichecker.Group[T]) int {
	seen := map[string]struct{}{}

	for _, group := range groups {
		if len(group.Failures) > 0 {
			seen[group.File] = struct{}{}
		}
	}

	return len(seen)
}

// PassToMap lists the failures a single pass produced, by kind.
func PassToMap(report *dichecker.Report, pass string) map[string]any {
	locations := make([]any, 0)

	for _, group := range report.Locations.Groups() {
		if group.Pass != pass {
			continue
		}

		for _, failure := range group.Failures {
			locations = append(locations, map[string]any{
				"file":        group.File,
				"instruction": failure.Instruction,
				"function":    failure.FunctionName,
				"basic_block": failure.BasicBlockName,
				"action":      failure.Action,
			})
		}
	}

	subprograms := make([]any, 0)

	for _, group := range report.Subprograms.Groups() {
		if group.Pass != pass {
			continue
		}

		for _, failure := range group.Failures {
			subprograms = append(subprograms, map[string]any{
				"file":     group.File,
				"function": failure.FunctionName,
				"action":   failure.Action,
			})
		}
	}

	return map[string]any{
		"pass":        pass,
		"location":    locations,
		"subprogram":  subprograms,
		"total_count": len(locations) + len(subprograms),
	}
}
