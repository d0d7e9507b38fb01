package dichecker

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

/*
Usage:

records, err := dichecker.ReadFile("di-checker.jsonl")
report, err := dichecker.Aggregate(records, dichecker.DefaultOptions())

for _, group := range report.Locations.Groups() {
    for _, failure := range group.Failures {
        fmt.Println(group.File, group.Pass, failure.Instruction)
    }
}

for _, row := range report.LocationSummary.Sorted() {
    fmt.Println(row.Pass, row.Count)
}
*/

// Options configures aggregation.
type Options struct {
	// AllGroups consumes every inner list of "bugs". By default only the first one is read,
	// which is all the checker currently emits.
	AllGroups bool
}

// DefaultOptions returns the options matching the checker output format.
func DefaultOptions() Options {
	return Options{}
}

// Report is the aggregated content of a DI checker log.
type Report struct {
	Locations         *Index[LocationFailure]
	Subprograms       *Index[SubprogramFailure]
	LocationSummary   *Summary
	SubprogramSummary *Summary
	Records           int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{
		Locations:         NewIndex[LocationFailure](),
		Subprograms:       NewIndex[SubprogramFailure](),
		LocationSummary:   NewSummary(),
		SubprogramSummary: NewSummary(),
	}
}

// Aggregate groups every bug entry of records by file, pass and kind.
// The first malformed record or entry aborts aggregation.
func Aggregate(records []Record, opts Options) (*Report, error) {
	report := NewReport()

	for idx := range records {
		if err := report.add(idx+1, &records[idx], opts); err != nil {
			return nil, err
		}
	}

	slog.Debug("dichecker.Aggregate",
		"records", report.Records,
		"location bugs", report.Locations.Len(),
		"subprogram bugs", report.Subprograms.Len(),
	)

	return report, nil
}

func (r *Report) add(recordNo int, rec *Record, opts Options) error {
	if rec.File == nil {
		return fmt.Errorf("record %d: %w: %q", recordNo, ErrMissingField, "file")
	}

	if rec.Pass == nil {
		return fmt.Errorf("record %d: %w: %q", recordNo, ErrMissingField, "pass")
	}

	file, pass := *rec.File, *rec.Pass

	entries, err := decodeBugs(recordNo, file, pass, rec.Bugs, opts)
	if err != nil {
		return err
	}

	// Both kinds get a group, so a pass that ran cleanly is distinguishable from one that never ran.
	r.Locations.Ensure(file, pass)
	r.Subprograms.Ensure(file, pass)

	for entryNo, entry := range entries {
		failure, err := DecodeEntry(entry)
		if err != nil {
			return fmt.Errorf("record %d (%s, %s), bug %d: %w", recordNo, file, pass, entryNo+1, err)
		}

		switch typed := failure.(type) {
		case LocationFailure:
			r.Locations.Append(file, pass, typed)
			r.LocationSummary.Add(pass)
		case SubprogramFailure:
			r.Subprograms.Append(file, pass, typed)
			r.SubprogramSummary.Add(pass)
		}
	}

	r.Records++

	return nil
}

func decodeBugs(recordNo int, file, pass string, bugs json.RawMessage, opts Options) ([]Entry, error) {
	if len(bugs) == 0 {
		return nil, fmt.Errorf("record %d: %w: %q", recordNo, ErrMissingField, "bugs")
	}

	var groups [][]Entry
	if err := json.Unmarshal(bugs, &groups); err != nil {
		return nil, fmt.Errorf("record %d: %w: bugs must be a list of lists: %w", recordNo, ErrMalformedInput, err)
	}

	if len(groups) == 0 {
		return nil, nil
	}

	if opts.AllGroups {
		var entries []Entry
		for _, group := range groups {
			entries = append(entries, group...)
		}

		return entries, nil
	}

	if len(groups) > 1 {
		slog.Warn("ignoring extra bug groups",
			"record", recordNo,
			"file", file,
			"pass", pass,
			"ignored", len(groups)-1,
		)
	}

	return groups[0], nil
}
