package dichecker

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/farcloser/primordium/fault"
)

// Checker logs put a whole pass worth of bugs on one line.
const maxLineSize = 16 * 1024 * 1024

// ReadFile reads a DI checker log from disk.
func ReadFile(path string) ([]Record, error) {
	slog.Debug("dichecker.ReadFile", "path", path)

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified log files
	if err != nil {
		return nil, fmt.Errorf("%w: opening log: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	return Read(file)
}

// Read decodes one record per line, in order. Any undecodable line fails the whole read.
// Blank lines are skipped.
func Read(reader io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w: %w", ErrMalformedInput, lineNo, fault.ErrInvalidJSON, err)
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", fault.ErrReadFailure, lineNo+1, err)
	}

	slog.Debug("dichecker.Read", "lines", lineNo, "records", len(records))

	return records, nil
}
