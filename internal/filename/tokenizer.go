// Package filename implements the positional grammar that splits a document
// filename into a date segment, an author segment, ordered tag segments, and
// a title remainder.
package filename

import (
	"strings"

	"github.com/dockeep/pdftidy/internal/dates"
)

// Token is the immutable result of tokenizing one filename. The caller
// strips the directory and extension before tokenizing.
type Token struct {
	// RawDate is the text of the leading parenthesized group, whether or not
	// it parsed as a date. Empty when the name has no leading parenthetical.
	RawDate string
	// Date is the normalized date, nil when RawDate is absent or unparsable.
	Date *dates.NormalizedDate
	// Author is the content of the single parenthetical immediately
	// following a successfully parsed date. Empty otherwise.
	Author string
	// Tags holds the contents of every square-bracketed group in the
	// remainder, in left-to-right order of appearance.
	Tags []string
	// Title is whatever text remains, separator-trimmed and collapsed.
	Title string
	// DroppedPrefix is text that preceded a successfully parsed date
	// parenthetical, e.g. the word "Report" in "Report (2021) ...". It is
	// noise by the grammar but kept for diagnostics. When nothing follows
	// the date the prefix becomes the title instead and this stays empty.
	DroppedPrefix string
}

// HasDate reports whether the name carried a parseable date.
func (t Token) HasDate() bool { return t.Date != nil }

// Tokenize applies the grammar left to right over name. The first
// parenthesized group is the date candidate; any text before it is noise
// once the date parses, except that its tag brackets are still collected
// and, when nothing remains after the date, the prefix itself survives as
// the title. Author detection requires a successfully parsed date
// immediately before it: a name whose first parenthetical fails date
// parsing keeps that parenthetical as ordinary title text.
func Tokenize(name string) Token {
	var tok Token
	var prefixTags []string

	rest := strings.TrimLeft(name, edgeCutset)

	if prefix, inner, after, ok := firstParenGroup(rest); ok {
		tok.RawDate = strings.TrimSpace(inner)
		if nd, err := dates.Normalize(tok.RawDate); err == nil {
			tok.Date = &nd
			prefix, prefixTags = extractTags(prefix)
			tok.DroppedPrefix = Clean(prefix)
			rest = after

			// Only the single parenthetical immediately following the date
			// is eligible as the author; later parentheticals stay in the
			// title.
			if author, afterAuthor, ok := leadingParenGroup(strings.TrimLeft(rest, edgeCutset)); ok {
				tok.Author = strings.TrimSpace(author)
				rest = afterAuthor
			}
		}
	}

	rest, tok.Tags = extractTags(rest)
	tok.Tags = append(prefixTags, tok.Tags...)
	tok.Title = Clean(rest)

	// A date preceded by text and followed by nothing describes the same
	// document either way; keep the description rather than reduce the name
	// to a bare date.
	if tok.Title == "" && tok.DroppedPrefix != "" {
		tok.Title = tok.DroppedPrefix
		tok.DroppedPrefix = ""
	}

	return tok
}

// firstParenGroup locates the first parenthesized group in s and returns
// the text before it, its contents, and the text after its closing paren.
func firstParenGroup(s string) (prefix, inner, after string, ok bool) {
	open := strings.Index(s, "(")
	if open < 0 {
		return "", "", "", false
	}

	end := strings.Index(s[open:], ")")
	if end < 0 {
		return "", "", "", false
	}

	return s[:open], s[open+1 : open+end], s[open+end+1:], true
}

// leadingParenGroup returns the contents of a parenthesized group at the
// very start of s and the text after its closing paren.
func leadingParenGroup(s string) (inner, after string, ok bool) {
	if !strings.HasPrefix(s, "(") {
		return "", "", false
	}

	end := strings.Index(s, ")")
	if end < 0 {
		return "", "", false
	}

	return s[1:end], s[end+1:], true
}

// extractTags removes every square-bracketed group from s and returns the
// stripped text along with the tag contents in order of appearance.
// Unterminated brackets are left alone.
func extractTags(s string) (string, []string) {
	var tags []string
	var out strings.Builder

	for {
		open := strings.Index(s, "[")
		if open < 0 {
			break
		}

		close := strings.Index(s[open:], "]")
		if close < 0 {
			break
		}

		out.WriteString(s[:open])
		if tag := strings.TrimSpace(s[open+1 : open+close]); tag != "" {
			tags = append(tags, tag)
		}
		s = s[open+close+1:]
	}

	out.WriteString(s)
	return out.String(), tags
}
