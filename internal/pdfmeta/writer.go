package pdfmeta

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FieldSet names the info-dictionary entries a write may touch. Only keys
// whose flag is set are written; everything else is left untouched.
type FieldSet struct {
	Title    *string
	Author   *string
	Subject  *string
	Keywords *string
	Created  *string // canonical YYYY-MM-DD, converted to PDF date form
}

// Empty reports whether the set proposes no writes at all.
func (fs FieldSet) Empty() bool {
	return fs.Title == nil && fs.Author == nil && fs.Subject == nil &&
		fs.Keywords == nil && fs.Created == nil
}

// Writer applies info-dictionary updates to PDF files.
type Writer struct {
	conf *model.Configuration
}

// NewWriter creates a metadata writer with relaxed validation, so documents
// with minor structural defects can still have their metadata fixed.
func NewWriter() *Writer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Writer{conf: conf}
}

// WriteFile updates the named fields of the document at path. The rewritten
// document is staged as a temp file in the same directory and renamed over
// the original only after a successful write, so a failure never truncates
// the document.
func (w *Writer) WriteFile(path string, set FieldSet) error {
	if set.Empty() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	ctx, err := api.ReadContext(f, w.conf)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to read PDF context: %w", err)
	}

	if ctx.Encrypt != nil {
		return fmt.Errorf("document is encrypted: %s", path)
	}

	if err := applyFieldSet(ctx, set); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdftidy-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := api.WriteContextFile(ctx, tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write PDF context: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace document: %w", err)
	}

	return nil
}

// applyFieldSet mutates the context's Info dictionary, creating one when the
// document has none.
func applyFieldSet(ctx *model.Context, set FieldSet) error {
	var dict types.Dict

	if ctx.Info != nil {
		d, err := ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return fmt.Errorf("failed to resolve info dictionary: %w", err)
		}
		dict = d
	}

	if dict == nil {
		dict = types.Dict{}
		ir, err := ctx.IndRefForNewObject(dict)
		if err != nil {
			return fmt.Errorf("failed to allocate info dictionary: %w", err)
		}
		ctx.Info = ir
	}

	entries := map[string]*string{
		"Title":    set.Title,
		"Author":   set.Author,
		"Subject":  set.Subject,
		"Keywords": set.Keywords,
	}
	for key, value := range entries {
		if value == nil {
			continue
		}
		obj, err := infoLiteral(*value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		dict[key] = obj
	}

	if set.Created != nil {
		created, err := parseCanonical(*set.Created)
		if err != nil {
			return err
		}
		obj, err := infoLiteral(FormatPDFDate(created))
		if err != nil {
			return fmt.Errorf("failed to encode CreationDate: %w", err)
		}
		dict["CreationDate"] = obj
	}

	return nil
}

func infoLiteral(s string) (types.Object, error) {
	escaped, err := types.EscapeUTF16String(s)
	if err != nil {
		return nil, err
	}
	return types.StringLiteral(*escaped), nil
}
