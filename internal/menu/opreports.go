package menu

import (
	"errors"
	"strings"

	"github.com/dockeep/pdftidy/internal/executor"
	"github.com/dockeep/pdftidy/internal/plan"
	"github.com/dockeep/pdftidy/internal/report"
	"github.com/dockeep/pdftidy/internal/scan"
)

// opReports groups the report files one operation produces. main always gets
// written, even empty, so every run leaves a record; the side reports are
// written only when they have rows.
type opReports struct {
	op       Operation
	main     *report.Report
	errs     *report.Report
	untagged *report.Report
	skipped  *report.Report
}

func newOpReports(op Operation) *opReports {
	r := &opReports{op: op}

	switch op.ID {
	case 2:
		r.main = report.New("Date Cleanup Preflight",
			"filename", "proposed_filename", "date", "precision", "changed", "notes")
	case 3:
		r.main = report.New("Date Cleanup Results",
			"filename", "proposed_filename", "status", "error")
	case 4:
		r.main = report.New("Outlier Scan Results",
			"filename", "proposed_filename", "status")
		r.errs = report.New("Outlier Scan Errors", "filename", "error")
	case 5:
		r.main = report.New("Metadata Write Preview",
			"filename", "date", "author", "title", "subject", "keywords", "notes")
	case 6:
		r.main = report.New("Metadata Write Results",
			"filename", "fields_written", "status")
		r.untagged = report.New("Metadata Write Untagged", "filename")
		r.skipped = report.New("Metadata Write Skipped", "filename", "reason")
	case 7:
		r.main = report.New("Metadata Clean Results",
			"filename", "title", "subject", "status", "notes", "error")
	}

	return r
}

func (r *opReports) all() []*report.Report {
	out := []*report.Report{r.main}
	for _, rep := range []*report.Report{r.errs, r.untagged, r.skipped} {
		if rep != nil {
			out = append(out, rep)
		}
	}
	return out
}

// addPlan records a dry-run row.
func (r *opReports) addPlan(entry scan.Entry, cp plan.ChangePlan) {
	switch r.op.ID {
	case 2:
		var date, precision string
		if cp.Token.HasDate() {
			date = cp.Token.Date.Canonical
			precision = cp.Token.Date.Precision.String()
		}
		r.main.Add(cp.OriginalName, cp.ProposedName, date, precision,
			boolField(!cp.Unchanged), joinNotes(cp.Notes))
	case 5:
		r.main.Add(cp.OriginalName,
			deref(cp.Fields.Created),
			deref(cp.Fields.Author),
			deref(cp.Fields.Title),
			deref(cp.Fields.Subject),
			deref(cp.Fields.Keywords),
			joinNotes(cp.Notes))
	}
}

// addOutcome records an apply row.
func (r *opReports) addOutcome(entry scan.Entry, out executor.Outcome) {
	cp := out.Plan
	status := applyStatus(out)

	switch r.op.ID {
	case 3:
		var errText string
		if out.Failed() {
			errText = out.Err.Error()
		}
		r.main.Add(cp.OriginalName, cp.ProposedName, status, errText)
	case 4:
		if out.Failed() {
			r.errs.Add(cp.OriginalName, out.Err.Error())
			return
		}
		r.main.Add(cp.OriginalName, cp.ProposedName, status)
	case 6:
		if len(cp.Token.Tags) == 0 {
			r.untagged.Add(cp.OriginalName)
		}
		switch {
		case out.Failed():
			r.skipped.Add(cp.OriginalName, out.Err.Error())
		case cp.Unchanged:
			r.skipped.Add(cp.OriginalName, "no fields to write")
		default:
			r.main.Add(cp.OriginalName, strings.Join(fieldNames(cp), "; "), status)
		}
	case 7:
		var errText string
		if out.Failed() {
			errText = out.Err.Error()
		}
		r.main.Add(cp.OriginalName, deref(cp.Fields.Title), deref(cp.Fields.Subject),
			status, joinNotes(cp.Notes), errText)
	}
}

// addFailure records a file that could not even be planned, e.g. because
// its metadata was unreadable.
func (r *opReports) addFailure(entry scan.Entry, err error) {
	switch r.op.ID {
	case 4:
		r.errs.Add(entry.Name, err.Error())
	case 5:
		r.main.Add(entry.Name, "", "", "", "", "", err.Error())
	case 6:
		r.skipped.Add(entry.Name, err.Error())
	case 7:
		r.main.Add(entry.Name, "", "", "failed", "", err.Error())
	default:
		r.main.Add(entry.Name, "", "failed", err.Error())
	}
}

func applyStatus(out executor.Outcome) string {
	switch {
	case errors.Is(out.Err, executor.ErrCollision):
		return "collision"
	case errors.Is(out.Err, executor.ErrUnwritable):
		return "unwritable"
	case out.Failed():
		return "failed"
	case out.Applied:
		return "applied"
	default:
		return "unchanged"
	}
}

func fieldNames(cp plan.ChangePlan) []string {
	var names []string
	if cp.Fields.Created != nil {
		names = append(names, "date")
	}
	if cp.Fields.Author != nil {
		names = append(names, "author")
	}
	if cp.Fields.Title != nil {
		names = append(names, "title")
	}
	if cp.Fields.Subject != nil {
		names = append(names, "subject")
	}
	if cp.Fields.Keywords != nil {
		names = append(names, "keywords")
	}
	return names
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
