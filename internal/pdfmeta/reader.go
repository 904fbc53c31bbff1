package pdfmeta

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts document metadata from PDF files.
type Reader struct {
	maxFileSize int64
}

// NewReader creates a metadata reader that rejects files larger than
// maxFileSize bytes.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{maxFileSize: maxFileSize}
}

// ReadFile opens path and extracts its information dictionary. The returned
// error is already classifiable via Classify.
func (r *Reader) ReadFile(path string) (Fields, error) {
	if path == "" {
		return Fields{}, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Fields{}, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return Fields{}, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return Fields{}, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if r.maxFileSize > 0 && fileInfo.Size() > r.maxFileSize {
		return Fields{}, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return extractFields(pdfReader), nil
}

// extractFields walks the trailer's Info dictionary. The ledongthuc library
// can panic on malformed objects, so extraction is recover-guarded and
// returns whatever was gathered before the failure.
func extractFields(r *pdf.Reader) (fields Fields) {
	defer func() {
		if recover() != nil {
			// Partial fields are still useful for the inventory.
		}
	}()

	trailer := r.Trailer()
	if trailer.IsNull() {
		return fields
	}

	info := trailer.Key("Info")
	if info.IsNull() {
		return fields
	}

	fields.Title = infoString(info, "Title")
	fields.Author = infoString(info, "Author")
	fields.Subject = infoString(info, "Subject")
	fields.Keywords = infoString(info, "Keywords")

	fields.RawCreationDate = infoString(info, "CreationDate")
	if fields.RawCreationDate != "" {
		if created, err := ParsePDFDate(fields.RawCreationDate); err == nil {
			fields.Created = created
		}
	}

	return fields
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.IsNull() {
		return ""
	}
	return strings.TrimSpace(v.Text())
}
