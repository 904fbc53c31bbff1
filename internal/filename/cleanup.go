package filename

import (
	"regexp"
	"strings"
)

// Separator characters for edge trimming. A dash counts as a separator only
// at the edges of a name: trimming `Notes - trailing   ` must not touch the
// dash that sits between words.
const edgeCutset = " \t-_"

var innerRunRe = regexp.MustCompile(`[ \t_]+`)

// Clean trims leading and trailing separator characters and collapses each
// internal run of whitespace or underscores to a single space.
func Clean(s string) string {
	s = innerRunRe.ReplaceAllString(s, " ")
	return strings.Trim(s, edgeCutset)
}

var (
	trailingExtRe  = regexp.MustCompile(`(?i)\.pdf$`)
	innerSpacesRe  = regexp.MustCompile(`\s+`)
	trailingSepsRe = regexp.MustCompile(`[ \t\-_.]+$`)
)

// CleanFieldText normalizes already-stored metadata text: strips a trailing
// literal .pdf suffix, trims trailing separator and dash characters, and
// collapses internal whitespace. Same trim/collapse primitive as filename
// cleanup, applied to metadata strings instead.
func CleanFieldText(s string) string {
	s = trailingSepsRe.ReplaceAllString(s, "")
	s = trailingExtRe.ReplaceAllString(s, "")
	s = trailingSepsRe.ReplaceAllString(s, "")
	s = innerSpacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
