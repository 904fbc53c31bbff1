// Package pdfmeta reads and writes the document information dictionary of
// PDF files: Title, Author, Subject, Keywords and the creation date.
package pdfmeta

import (
	"fmt"
	"strings"
	"time"
)

// Fields holds the document-level metadata this tool touches. Empty string
// means the field is absent.
type Fields struct {
	Title    string
	Author   string
	Subject  string
	Keywords string

	// RawCreationDate is the unparsed CreationDate entry, typically in
	// D:YYYYMMDDHHmmSS form.
	RawCreationDate string
	// Created is the parsed creation date, zero when absent or unparsable.
	Created time.Time
}

func (f Fields) HasTitle() bool    { return strings.TrimSpace(f.Title) != "" }
func (f Fields) HasAuthor() bool   { return strings.TrimSpace(f.Author) != "" }
func (f Fields) HasSubject() bool  { return strings.TrimSpace(f.Subject) != "" }
func (f Fields) HasKeywords() bool { return strings.TrimSpace(f.Keywords) != "" }
func (f Fields) HasCreated() bool  { return !f.Created.IsZero() }

// ParsePDFDate parses a PDF date string (D:YYYYMMDDHHmmSS with optional
// timezone suffix) by trying the known layout variants in order.
func ParsePDFDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	dateStr = strings.TrimPrefix(dateStr, "D:")

	formats := []string{
		"20060102150405-07'00'",
		"20060102150405+07'00'",
		"20060102150405Z",
		"20060102150405",
		"200601021504",
		"20060102",
	}

	for _, format := range formats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse PDF date: %s", dateStr)
}

// FormatPDFDate renders t in the D:YYYYMMDDHHmmSS form used by the
// CreationDate entry.
func FormatPDFDate(t time.Time) string {
	return "D:" + t.Format("20060102150405")
}

// parseCanonical parses the tool's canonical YYYY-MM-DD date form.
func parseCanonical(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid canonical date %q: %w", s, err)
	}
	return t, nil
}
