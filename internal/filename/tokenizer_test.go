package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeFullGrammar(t *testing.T) {
	tok := Tokenize("(2019-03-12) (Jane Doe) [Finance][Q1] Quarterly Summary")

	require.True(t, tok.HasDate())
	assert.Equal(t, "2019-03-12", tok.Date.Canonical)
	assert.Equal(t, "2019-03-12", tok.RawDate)
	assert.Equal(t, "Jane Doe", tok.Author)
	assert.Equal(t, []string{"Finance", "Q1"}, tok.Tags)
	assert.Equal(t, "Quarterly Summary", tok.Title)
}

func TestTokenizeDateWithTextualPrefix(t *testing.T) {
	tok := Tokenize("Report (2021) (Jane Doe) [Finance][Q1] Quarterly Summary")

	require.True(t, tok.HasDate())
	assert.Equal(t, "2021-06-01", tok.Date.Canonical)
	assert.Equal(t, "Jane Doe", tok.Author)
	assert.Equal(t, []string{"Finance", "Q1"}, tok.Tags)
	assert.Equal(t, "Quarterly Summary", tok.Title)
	assert.Equal(t, "Report", tok.DroppedPrefix)
}

func TestTokenizePrefixBecomesTitleWhenNothingFollowsDate(t *testing.T) {
	tok := Tokenize("Annual Budget (2021)")

	require.True(t, tok.HasDate())
	assert.Equal(t, "2021-06-01", tok.Date.Canonical)
	assert.Equal(t, "Annual Budget", tok.Title)
	assert.Empty(t, tok.DroppedPrefix)
}

func TestTokenizePrefixBecomesTitleAfterAuthorAndTags(t *testing.T) {
	tok := Tokenize("Annual Budget (2021) (Jane Doe) [Finance]")

	require.True(t, tok.HasDate())
	assert.Equal(t, "Jane Doe", tok.Author)
	assert.Equal(t, []string{"Finance"}, tok.Tags)
	assert.Equal(t, "Annual Budget", tok.Title)
	assert.Empty(t, tok.DroppedPrefix)
}

func TestTokenizePrefixTagsCollected(t *testing.T) {
	tok := Tokenize("[A] Draft (2021) [B] T")

	require.True(t, tok.HasDate())
	assert.Equal(t, []string{"A", "B"}, tok.Tags)
	assert.Equal(t, "T", tok.Title)
	assert.Equal(t, "Draft", tok.DroppedPrefix)
}

func TestTokenizeNoParenthetical(t *testing.T) {
	tok := Tokenize("randomtext")

	assert.False(t, tok.HasDate())
	assert.Empty(t, tok.RawDate)
	assert.Empty(t, tok.Author)
	assert.Empty(t, tok.Tags)
	assert.Equal(t, "randomtext", tok.Title)
}

func TestTokenizeUnparsableDateStaysInTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
	}{
		{"plain text parenthetical", "(draft) (Jane Doe) Notes", "(draft) (Jane Doe) Notes"},
		{"invalid calendar date", "(2019-02-30) Budget", "(2019-02-30) Budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Tokenize(tt.input)
			assert.False(t, tok.HasDate())
			// A failed date parse never promotes the next parenthetical to
			// author.
			assert.Empty(t, tok.Author)
			assert.Equal(t, tt.wantTitle, tok.Title)
		})
	}
}

func TestTokenizeAuthorOnlyDirectlyAfterDate(t *testing.T) {
	// Later parentheticals are left in the title.
	tok := Tokenize("(2020-01-01) Minutes (annotated)")

	require.True(t, tok.HasDate())
	assert.Empty(t, tok.Author)
	assert.Equal(t, "Minutes (annotated)", tok.Title)
}

func TestTokenizeAuthorAfterSeparators(t *testing.T) {
	tok := Tokenize("(2020-01-01) - _(Jane Doe)_ Minutes")

	require.True(t, tok.HasDate())
	assert.Equal(t, "Jane Doe", tok.Author)
	assert.Equal(t, "Minutes", tok.Title)
}

func TestTokenizeTagsCollectedInOrder(t *testing.T) {
	tok := Tokenize("[B] Notes [A] with [C] tags")

	assert.Equal(t, []string{"B", "A", "C"}, tok.Tags)
	assert.Equal(t, "Notes with tags", tok.Title)
}

func TestTokenizeEmptyAndUnterminatedBrackets(t *testing.T) {
	tok := Tokenize("Notes [] [open bracket")

	assert.Empty(t, tok.Tags)
	assert.Equal(t, "Notes [open bracket", tok.Title)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing spaces", "Notes - trailing   ", "Notes - trailing"},
		{"leading separators", "__ Notes", "Notes"},
		{"internal underscore run", "A__B   C", "A B C"},
		{"internal dash preserved", "Notes - trailing", "Notes - trailing"},
		{"hyphenated word preserved", "self-test", "self-test"},
		{"everything is separators", " -_- ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanFieldText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing extension", "Quarterly Summary.pdf", "Quarterly Summary"},
		{"uppercase extension", "Quarterly Summary.PDF", "Quarterly Summary"},
		{"trailing dashes", "Summary --- ", "Summary"},
		{"internal whitespace collapse", "Quarterly   Summary", "Quarterly Summary"},
		{"extension then separators", "Summary.pdf - ", "Summary"},
		{"already clean", "Summary", "Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanFieldText(tt.in))
		})
	}
}
