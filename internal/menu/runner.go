package menu

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dockeep/pdftidy/internal/config"
	"github.com/dockeep/pdftidy/internal/executor"
	"github.com/dockeep/pdftidy/internal/pdfmeta"
	"github.com/dockeep/pdftidy/internal/plan"
	"github.com/dockeep/pdftidy/internal/report"
	"github.com/dockeep/pdftidy/internal/scan"
)

// Runner executes one operation over the configured directory: a strictly
// sequential pass in which each file is fully tokenized, planned and (in
// apply mode) executed before the next begins.
type Runner struct {
	cfg    *config.Config
	reader *pdfmeta.Reader
	exec   *executor.Executor
	out    io.Writer
	now    func() time.Time
}

// NewRunner wires a runner from the configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		cfg:    cfg,
		reader: pdfmeta.NewReader(cfg.MaxFileSize),
		exec:   executor.New(pdfmeta.NewWriter()),
		out:    os.Stdout,
		now:    time.Now,
	}
}

// Run executes op and writes its reports. Per-file failures are recorded in
// the reports and never abort the run.
func (r *Runner) Run(op Operation) error {
	writer := report.NewWriter(r.cfg.ReportsDir, r.now())

	if op.Inventory {
		return r.runInventory(writer)
	}
	return r.runPlans(op, writer)
}

// runInventory lists the stored metadata of every document.
func (r *Runner) runInventory(writer *report.Writer) error {
	scanner := scan.New(r.cfg.Directory, r.cfg.MaxFileSize)

	rows, stats, err := scanner.Inventory(r.reader)
	if err != nil {
		return err
	}

	main := report.New("Metadata Inventory",
		"filename", "filepath",
		"has_title", "title",
		"has_author", "author",
		"has_subject", "subject",
		"has_tags", "tags",
		"has_date", "date", "raw_date_string",
		"error")
	errs := report.New("Metadata Inventory Errors", "filename", "filepath", "error_type")

	for _, row := range rows {
		var errText string
		if row.Err != nil {
			errText = row.Err.Error()
			errs.Add(row.Entry.Name, row.Entry.Path(), string(row.Kind))
		}

		var date string
		if row.Fields.HasCreated() {
			date = row.Fields.Created.Format("2006-01-02 15:04:05")
		}

		main.Add(
			row.Entry.Name, row.Entry.Path(),
			boolField(row.Fields.HasTitle()), row.Fields.Title,
			boolField(row.Fields.HasAuthor()), row.Fields.Author,
			boolField(row.Fields.HasSubject()), row.Fields.Subject,
			boolField(row.Fields.HasKeywords()), row.Fields.Keywords,
			boolField(row.Fields.HasCreated()), date, row.Fields.RawCreationDate,
			errText,
		)
	}

	if err := r.emit(writer, main); err != nil {
		return err
	}
	if !errs.Empty() {
		if err := r.emit(writer, errs); err != nil {
			return err
		}
	}

	summary := [][]string{
		{"Total PDFs found", strconv.Itoa(stats.Total)},
		{"Without errors", strconv.Itoa(stats.Clean)},
	}
	for kind, count := range stats.ByKind {
		summary = append(summary, []string{string(kind), strconv.Itoa(count)})
	}
	fmt.Fprintln(r.out, report.RenderSummary([]string{"Metric", "Count"}, summary))

	return nil
}

// runPlans drives the planner (and in apply mode the executor) over the
// snapshot and fills the operation's reports.
func (r *Runner) runPlans(op Operation, writer *report.Writer) error {
	scanner := scan.New(r.cfg.Directory, r.cfg.MaxFileSize)
	entries, err := scanner.Snapshot()
	if err != nil {
		return err
	}

	planner := plan.New(op.Mode)
	reports := newOpReports(op)
	var changed, unchanged, failed int

	for _, entry := range entries {
		var current pdfmeta.Fields
		if op.ReadsMetadata {
			current, err = r.reader.ReadFile(entry.Path())
			if err != nil {
				failed++
				reports.addFailure(entry, fmt.Errorf("metadata read failed: %w", err))
				continue
			}
		}

		cp := planner.Plan(entry.Name, current)

		if !op.Apply {
			if cp.Unchanged {
				unchanged++
			} else {
				changed++
			}
			reports.addPlan(entry, cp)
			continue
		}

		out := r.exec.Apply(entry.Dir, cp)
		switch {
		case out.Failed():
			failed++
		case out.Applied:
			changed++
		default:
			unchanged++
		}
		reports.addOutcome(entry, out)
	}

	for _, rep := range reports.all() {
		if rep.Empty() && rep != reports.main {
			continue
		}
		if err := r.emit(writer, rep); err != nil {
			return err
		}
	}

	verb := "proposed"
	if op.Apply {
		verb = "applied"
	}
	fmt.Fprintln(r.out, report.RenderSummary([]string{"Metric", "Count"}, [][]string{
		{"Files processed", strconv.Itoa(len(entries))},
		{"Changes " + verb, strconv.Itoa(changed)},
		{"Unchanged", strconv.Itoa(unchanged)},
		{"Failed", strconv.Itoa(failed)},
	}))

	return nil
}

func (r *Runner) emit(writer *report.Writer, rep *report.Report) error {
	path, err := writer.Write(rep)
	if err != nil {
		return err
	}
	log.Printf("report written: %s", path)
	return nil
}

func boolField(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func joinNotes(notes []string) string {
	return strings.Join(notes, "; ")
}
