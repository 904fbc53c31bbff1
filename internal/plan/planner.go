// Package plan derives side-effect-free change proposals for one file at a
// time: a target filename, a metadata field set, or both. The same plan
// backs both the dry-run preview and the eventual apply, so a mutation never
// happens that the preview did not already describe.
package plan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dockeep/pdftidy/internal/filename"
	"github.com/dockeep/pdftidy/internal/pdfmeta"
)

// RuleSet selects which of the planner's rule sets are active.
type RuleSet int

const (
	// RuleNormalize moves a recognized date to the front of the filename in
	// canonical form and proposes metadata from the tokenized segments.
	RuleNormalize RuleSet = iota
	// RuleCleanup only repairs cosmetic outliers: stray separators and
	// malformed spacing, independent of date content.
	RuleCleanup
	// RuleFieldClean operates on already-stored metadata text instead of
	// filenames.
	RuleFieldClean
)

// Mode configures one planning pass.
type Mode struct {
	Rename   bool
	Metadata bool
	RuleSet  RuleSet
}

// ChangePlan is pure data describing a proposed mutation for one file. It
// carries no filesystem handle and causes no side effect.
type ChangePlan struct {
	// OriginalName and ProposedName include the extension but no directory.
	OriginalName string
	ProposedName string
	// Unchanged is set when the proposed name is byte-identical to the
	// original and no metadata field is proposed.
	Unchanged bool
	// Fields holds the proposed metadata writes, empty entries omitted.
	Fields pdfmeta.FieldSet
	// Token is the grammar decomposition the proposals derive from.
	Token filename.Token
	// Notes carries human-readable diagnostics for the report row.
	Notes []string
}

// Planner turns a filename plus current document metadata into a ChangePlan.
type Planner struct {
	mode Mode
}

// New creates a planner for the given mode.
func New(mode Mode) *Planner {
	return &Planner{mode: mode}
}

// Mode returns the planner's configuration.
func (p *Planner) Mode() Mode { return p.mode }

// Plan produces exactly one ChangePlan for the named file. name is the bare
// filename with extension; current holds the document's stored metadata
// (zero value when the mode does not touch metadata).
func (p *Planner) Plan(name string, current pdfmeta.Fields) ChangePlan {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	cp := ChangePlan{
		OriginalName: name,
		ProposedName: name,
	}

	if p.mode.RuleSet == RuleFieldClean {
		p.planFieldCleanup(&cp, current)
		cp.Unchanged = cp.Fields.Empty()
		return cp
	}

	cp.Token = filename.Tokenize(base)
	if cp.Token.RawDate != "" && !cp.Token.HasDate() {
		cp.Notes = append(cp.Notes, fmt.Sprintf("unparsed date candidate %q kept as title text", cp.Token.RawDate))
	}

	if p.mode.Rename {
		cp.ProposedName = p.proposeName(&cp, base) + ext
	}
	if p.mode.Metadata {
		p.planMetadata(&cp, base, current)
	}

	cp.Unchanged = cp.ProposedName == cp.OriginalName && cp.Fields.Empty()
	return cp
}

// proposeName applies the filename proposal rule: a recognized date moves to
// the front in canonical form, followed by the author parenthetical, the tag
// brackets in original order, and the title. Without a date the proposal is
// the cleaned-up original.
func (p *Planner) proposeName(cp *ChangePlan, base string) string {
	tok := cp.Token

	if p.mode.RuleSet == RuleCleanup || !tok.HasDate() {
		cleaned := filename.Clean(base)
		if cleaned == "" {
			// Degenerate input: never propose an empty name.
			return base
		}
		return cleaned
	}

	if tok.DroppedPrefix != "" {
		cp.Notes = append(cp.Notes, fmt.Sprintf("dropped leading text %q", tok.DroppedPrefix))
	}

	var b strings.Builder
	b.WriteString("(" + tok.Date.Canonical + ")")
	if tok.Author != "" {
		b.WriteString(" (" + tok.Author + ")")
	}
	if len(tok.Tags) > 0 {
		b.WriteString(" ")
		for _, tag := range tok.Tags {
			b.WriteString("[" + tag + "]")
		}
	}
	if tok.Title != "" {
		b.WriteString(" " + tok.Title)
	}

	return b.String()
}

// planMetadata applies the metadata proposal rule. The date is proposed
// whenever a normalized date exists and differs from the stored creation
// date; author, title and subject are proposed only into empty fields;
// keywords come from the ordered tag sequence. Proposing only differing
// values is what makes a second pass over an applied file a fixed point.
func (p *Planner) planMetadata(cp *ChangePlan, base string, current pdfmeta.Fields) {
	tok := cp.Token

	if tok.HasDate() {
		canonical := tok.Date.Canonical
		if !current.HasCreated() || current.Created.Format("2006-01-02") != canonical {
			cp.Fields.Created = &canonical
		}
	}

	if tok.Author != "" && !current.HasAuthor() {
		author := tok.Author
		cp.Fields.Author = &author
	}

	title := tok.Title
	if title == "" {
		// Degenerate input: fall back to the cleaned original name.
		title = filename.Clean(base)
	}
	if title != "" {
		if !current.HasTitle() {
			t := title
			cp.Fields.Title = &t
		}
		if !current.HasSubject() {
			s := title
			cp.Fields.Subject = &s
		}
	}

	if len(tok.Tags) > 0 {
		keywords := strings.Join(tok.Tags, ", ")
		if current.Keywords != keywords {
			cp.Fields.Keywords = &keywords
		}
	}
}

// planFieldCleanup applies the stored-metadata cleanup rule to the title and
// subject fields. A field is proposed only when cleanup changes it, and a
// non-empty field is never emptied.
func (p *Planner) planFieldCleanup(cp *ChangePlan, current pdfmeta.Fields) {
	if current.HasTitle() {
		cleaned := filename.CleanFieldText(current.Title)
		switch {
		case cleaned == "":
			cp.Notes = append(cp.Notes, "title cleanup would empty the field, skipped")
		case cleaned != current.Title:
			cp.Fields.Title = &cleaned
		}
	}

	if current.HasSubject() {
		cleaned := filename.CleanFieldText(current.Subject)
		switch {
		case cleaned == "":
			cp.Notes = append(cp.Notes, "subject cleanup would empty the field, skipped")
		case cleaned != current.Subject:
			cp.Fields.Subject = &cleaned
		}
	}
}
