package pdfmeta

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePDFDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "full date with minutes",
			input: "D:202103121430",
			want:  time.Date(2021, 3, 12, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "full date with seconds",
			input: "D:20210312143055",
			want:  time.Date(2021, 3, 12, 14, 30, 55, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "D:20210312",
			want:  time.Date(2021, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "no prefix",
			input: "20210312143055",
			want:  time.Date(2021, 3, 12, 14, 30, 55, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "D:notadate",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePDFDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestFormatPDFDate(t *testing.T) {
	in := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "D:20210601000000", FormatPDFDate(in))

	// Formatting then parsing round-trips.
	back, err := ParsePDFDate(FormatPDFDate(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(back))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ErrorNone},
		{"encrypted", errors.New("file is Encrypted"), ErrorEncrypted},
		{"password", errors.New("password required"), ErrorEncrypted},
		{"eof", errors.New("EOF marker not found"), ErrorCorrupted},
		{"object", errors.New("malformed object stream 12"), ErrorObject},
		{"permission", errors.New("open x.pdf: permission denied"), ErrorUnwritable},
		{"other", errors.New("something else"), ErrorRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFieldsPresence(t *testing.T) {
	var f Fields
	assert.False(t, f.HasTitle())
	assert.False(t, f.HasAuthor())
	assert.False(t, f.HasSubject())
	assert.False(t, f.HasKeywords())
	assert.False(t, f.HasCreated())

	f = Fields{
		Title:   "Summary",
		Author:  "  ", // whitespace-only counts as absent
		Created: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, f.HasTitle())
	assert.False(t, f.HasAuthor())
	assert.True(t, f.HasCreated())
}

func TestFieldSetEmpty(t *testing.T) {
	var fs FieldSet
	assert.True(t, fs.Empty())

	title := "Summary"
	fs.Title = &title
	assert.False(t, fs.Empty())
}
