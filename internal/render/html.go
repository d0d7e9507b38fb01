// Package render writes a DI checker report as a static HTML document.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	dichecker "github.com/farcloser/dichecker"
)

const (
	rowOpen     = "  <tr>\n"
	rowClose    = "  </tr>\n"
	separator   = "<br>\n"
	placeholder = "No bugs found"
)

const header = `<html>
<head>
<style>
table, th, td {
  border: 1px solid black;
}
table.center {
  margin-left: auto;
  margin-right: auto;
}
</style>
</head>
<body>
`

const footer = "</body>\n</html>\n"

// Options controls HTML emission.
type Options struct {
	// Raw inserts field values without HTML escaping, as older report generators did.
	Raw bool
}

type table struct {
	caption string
	columns []string
	rows    [][]string
}

// HTML writes the four report tables: location detail and summary, then subprogram detail and summary.
func HTML(writer io.Writer, report *dichecker.Report, opts Options) error {
	var buf bytes.Buffer

	buf.WriteString(header)
	writeTable(&buf, locationTable(report), opts)
	buf.WriteString(separator)
	writeTable(&buf, summaryTable("DI Checker Summary of Location Bugs", report.LocationSummary), opts)
	buf.WriteString(separator)
	buf.WriteString(separator)
	writeTable(&buf, subprogramTable(report), opts)
	buf.WriteString(separator)
	writeTable(&buf, summaryTable("DI Checker Summary of SP Bugs", report.SubprogramSummary), opts)
	buf.WriteString(footer)

	if _, err := writer.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// WriteFile renders the report and replaces path with it in one rename.
func WriteFile(path string, report *dichecker.Report, opts Options) error {
	var buf bytes.Buffer
	if err := HTML(&buf, report, opts); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("writing output file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("closing output file: %w", err)
	}

	//nolint:gosec // report is meant to be world readable, like any generated html
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("setting output file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("moving output file into place: %w", err)
	}

	return nil
}

func locationTable(report *dichecker.Report) table {
	tbl := table{
		caption: "Location Bugs found by the LLVM DI Checker",
		columns: []string{
			"File", "LLVM Pass Name", "LLVM IR Instruction", "Function Name", "Basic Block Name", "Action",
		},
	}

	for _, group := range report.Locations.Groups() {
		for _, failure := range group.Failures {
			tbl.rows = append(tbl.rows, []string{
				group.File,
				group.Pass,
				failure.Instruction,
				failure.FunctionName,
				failure.BasicBlockName,
				failure.Action,
			})
		}
	}

	return tbl
}

func subprogramTable(report *dichecker.Report) table {
	tbl := table{
		caption: "SP Bugs found by the LLVM DI Checker",
		columns: []string{"File", "LLVM Pass Name", "Function Name", "Action"},
	}

	for _, group := range report.Subprograms.Groups() {
		for _, failure := range group.Failures {
			tbl.rows = append(tbl.rows, []string{
				group.File,
				group.Pass,
				failure.FunctionName,
				failure.Action,
			})
		}
	}

	return tbl
}

func summaryTable(caption string, summary *dichecker.Summary) table {
	tbl := table{
		caption: caption,
		columns: []string{"LLVM Pass Name", "Number of bugs"},
	}

	for _, row := range summary.Sorted() {
		tbl.rows = append(tbl.rows, []string{row.Pass, strconv.Itoa(row.Count)})
	}

	return tbl
}

func writeTable(buf *bytes.Buffer, tbl table, opts Options) {
	buf.WriteString("<table>\n")
	fmt.Fprintf(buf, "<caption><b>%s</b></caption>\n", tbl.caption)

	buf.WriteString(rowOpen)

	for _, column := range tbl.columns {
		fmt.Fprintf(buf, "    <th>%s</th>\n", column)
	}

	buf.WriteString(rowClose)

	for _, row := range tbl.rows {
		buf.WriteString(rowOpen)

		for _, value := range row {
			fmt.Fprintf(buf, "    <td>%s</td>\n", cell(value, opts))
		}

		buf.WriteString(rowClose)
	}

	if len(tbl.rows) == 0 {
		buf.WriteString(rowOpen)
		fmt.Fprintf(buf, "    <td colspan='%d'> %s </td>\n", len(tbl.columns), placeholder)
		buf.WriteString(rowClose)
	}

	buf.WriteString("</table>\n")
}

func cell(value string, opts Options) string {
	value = strings.TrimSpace(value)
	if opts.Raw {
		return value
	}

	return html.EscapeString(value)
}
