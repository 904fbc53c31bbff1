// Package report collects per-file outcome rows and emits them as
// timestamped CSV files, one file per operation report, plus a console
// summary table.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sanitize replaces commas with semicolons in a field value so every value
// stays inside its CSV cell even when a downstream consumer splits naively.
func Sanitize(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

// Report accumulates rows for one named tabular output.
type Report struct {
	Name   string
	Header []string
	rows   [][]string
}

// New creates an empty report with the given column header.
func New(name string, header ...string) *Report {
	return &Report{Name: name, Header: header}
}

// Add appends one row, sanitizing every value. Short rows are padded to the
// header width.
func (r *Report) Add(values ...string) {
	row := make([]string, len(r.Header))
	for i := range row {
		if i < len(values) {
			row[i] = Sanitize(values[i])
		}
	}
	r.rows = append(r.rows, row)
}

// Empty reports whether no rows were added.
func (r *Report) Empty() bool { return len(r.rows) == 0 }

// Len returns the number of rows.
func (r *Report) Len() int { return len(r.rows) }

// Rows returns the accumulated rows.
func (r *Report) Rows() [][]string { return r.rows }

// Writer writes reports into a directory, timestamping each filename so a
// run never overwrites the output of a prior run.
type Writer struct {
	dir   string
	stamp string
}

// NewWriter creates a report writer for one run. All reports of the run
// share the same timestamp.
func NewWriter(dir string, now time.Time) *Writer {
	return &Writer{
		dir: dir,
		// Colons are not portable filename characters, so the time part
		// uses dashes.
		stamp: now.Format("2006-01-02 15-04-05"),
	}
}

// Filename returns the timestamped filename a report would be written to.
func (w *Writer) Filename(r *Report) string {
	return fmt.Sprintf("(%s) %s.csv", w.stamp, r.Name)
}

// Write emits the report as a CSV file and returns its path.
func (w *Writer) Write(r *Report) (string, error) {
	path := filepath.Join(w.dir, w.Filename(r))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(r.Header); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	if err := cw.WriteAll(r.rows); err != nil {
		return "", fmt.Errorf("failed to write report rows: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	return path, nil
}
