package menu

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dockeep/pdftidy/internal/config"
	"github.com/dockeep/pdftidy/internal/executor"
	"github.com/dockeep/pdftidy/internal/pdfmeta"
	"github.com/dockeep/pdftidy/internal/plan"
	"github.com/dockeep/pdftidy/internal/scan"
)

func newTestRunner(t *testing.T, dir string) (*Runner, *bytes.Buffer) {
	t.Helper()

	reports := t.TempDir()
	cfg := &config.Config{
		Directory:   dir,
		ReportsDir:  reports,
		LogLevel:    "info",
		MaxFileSize: config.DefaultMaxFileSize,
	}
	require.NoError(t, cfg.Validate())

	r := NewRunner(cfg)
	var out bytes.Buffer
	r.out = &out
	r.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return r, &out
}

func reportRows(t *testing.T, reportsDir, name string) [][]string {
	t.Helper()

	path := filepath.Join(reportsDir, "(2026-08-31 12-00-00) "+name+".csv")
	f, err := os.Open(path)
	require.NoError(t, err, "expected report %s", path)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunDateCleanupPreflight(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Report (2021) (Jane Doe) [Finance][Q1] Quarterly Summary.pdf",
		"randomtext.pdf",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	r, out := newTestRunner(t, dir)

	op, _ := ByID(2)
	require.NoError(t, r.Run(op))

	rows := reportRows(t, r.cfg.ReportsDir, "Date Cleanup Preflight")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"filename", "proposed_filename", "date", "precision", "changed", "notes"}, rows[0])

	byName := map[string][]string{}
	for _, row := range rows[1:] {
		byName[row[0]] = row
	}

	summaryRow := byName["Report (2021) (Jane Doe) [Finance][Q1] Quarterly Summary.pdf"]
	require.NotNil(t, summaryRow)
	assert.Equal(t, "(2021-06-01) (Jane Doe) [Finance][Q1] Quarterly Summary.pdf", summaryRow[1])
	assert.Equal(t, "2021-06-01", summaryRow[2])
	assert.Equal(t, "year-only", summaryRow[3])
	assert.Equal(t, "True", summaryRow[4])

	plainRow := byName["randomtext.pdf"]
	require.NotNil(t, plainRow)
	assert.Equal(t, "randomtext.pdf", plainRow[1])
	assert.Equal(t, "", plainRow[2])
	assert.Equal(t, "False", plainRow[4])

	// Preview must not touch the filesystem.
	assert.FileExists(t, filepath.Join(dir, "Report (2021) (Jane Doe) [Finance][Q1] Quarterly Summary.pdf"))
	assert.Contains(t, out.String(), "Files processed")
}

func TestRunDateCleanupApply(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "Report (2021) Summary.pdf"), []byte("x"), 0o644))

	r, _ := newTestRunner(t, dir)

	op, _ := ByID(3)
	require.NoError(t, r.Run(op))

	assert.NoFileExists(t, filepath.Join(dir, "Report (2021) Summary.pdf"))
	assert.FileExists(t, filepath.Join(dir, "(2021-06-01) Summary.pdf"))

	rows := reportRows(t, r.cfg.ReportsDir, "Date Cleanup Results")
	require.Len(t, rows, 2)
	assert.Equal(t, "applied", rows[1][2])
}

func TestRunApplyReportsCollision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "Report (2021) Summary.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "(2021-06-01) Summary.pdf"), []byte("y"), 0o644))

	r, _ := newTestRunner(t, dir)

	op, _ := ByID(3)
	require.NoError(t, r.Run(op), "collisions are per-file, not fatal")

	// Both files still present, collision visible in the report.
	assert.FileExists(t, filepath.Join(dir, "Report (2021) Summary.pdf"))
	assert.FileExists(t, filepath.Join(dir, "(2021-06-01) Summary.pdf"))

	rows := reportRows(t, r.cfg.ReportsDir, "Date Cleanup Results")
	statuses := map[string]bool{}
	for _, row := range rows[1:] {
		statuses[row[2]] = true
	}
	assert.True(t, statuses["collision"], "rows: %v", rows)
}

func TestRunOutlierCleanup(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "Notes - trailing   .pdf"), []byte("x"), 0o644))

	r, _ := newTestRunner(t, dir)

	op, _ := ByID(4)
	require.NoError(t, r.Run(op))

	assert.FileExists(t, filepath.Join(dir, "Notes - trailing.pdf"))

	rows := reportRows(t, r.cfg.ReportsDir, "Outlier Scan Results")
	require.Len(t, rows, 2)
	assert.Equal(t, "Notes - trailing.pdf", rows[1][1])
	assert.Equal(t, "applied", rows[1][2])
}

func TestRunMetadataPreviewSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	// Not a PDF at all; the metadata read fails, the run must complete and
	// record the failure as a row.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("nope"), 0o644))

	r, _ := newTestRunner(t, dir)

	op, _ := ByID(5)
	require.NoError(t, r.Run(op))

	rows := reportRows(t, r.cfg.ReportsDir, "Metadata Write Preview")
	require.Len(t, rows, 2)
	assert.Equal(t, "broken.pdf", rows[1][0])
	assert.NotEmpty(t, rows[1][6], "failure must show up in the notes column")
}

func TestFieldCleanupReportCarriesSkipNotes(t *testing.T) {
	op, ok := ByID(7)
	require.True(t, ok)

	reports := newOpReports(op)
	assert.Equal(t,
		[]string{"filename", "title", "subject", "status", "notes", "error"},
		reports.main.Header)

	// A field whose cleanup would empty it is skipped; the report row must
	// say so instead of reading a bare "unchanged".
	p := plan.New(plan.Mode{RuleSet: plan.RuleFieldClean})
	cp := p.Plan("stub.pdf", pdfmeta.Fields{Title: " - .pdf"})
	require.True(t, cp.Unchanged)

	reports.addOutcome(scan.Entry{Name: "stub.pdf"}, executor.Outcome{Plan: cp})

	rows := reports.main.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "unchanged", rows[0][3])
	assert.Contains(t, rows[0][4], "skipped")
}

func TestRunInventoryRecordsErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("nope"), 0o644))

	r, out := newTestRunner(t, dir)

	op, _ := ByID(1)
	require.NoError(t, r.Run(op))

	rows := reportRows(t, r.cfg.ReportsDir, "Metadata Inventory")
	require.Len(t, rows, 2)
	assert.Equal(t, "broken.pdf", rows[1][0])
	assert.NotEmpty(t, rows[1][len(rows[1])-1], "error column must be filled")

	errRows := reportRows(t, r.cfg.ReportsDir, "Metadata Inventory Errors")
	require.Len(t, errRows, 2)

	assert.Contains(t, out.String(), "Total PDFs found")
}
