// Package executor applies ChangePlans to the filesystem: it renames files
// and writes metadata fields, isolating failures per file so a bad document
// never aborts the rest of a run.
package executor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dockeep/pdftidy/internal/pdfmeta"
	"github.com/dockeep/pdftidy/internal/plan"
)

// Sentinel error kinds the report layer distinguishes.
var (
	ErrCollision  = errors.New("proposed filename already exists")
	ErrUnwritable = errors.New("document cannot be opened for writing")
)

// Outcome wraps exactly one ChangePlan with the result of applying it.
type Outcome struct {
	Plan plan.ChangePlan
	// Path is the file's current full path after the apply (the renamed
	// path when the rename succeeded).
	Path    string
	Applied bool
	Err     error
}

// Failed reports whether the apply produced an error.
func (o Outcome) Failed() bool { return o.Err != nil }

// MetadataWriter is the slice of pdfmeta.Writer the executor needs.
type MetadataWriter interface {
	WriteFile(path string, set pdfmeta.FieldSet) error
}

// Executor applies plans, one file at a time.
type Executor struct {
	writer MetadataWriter
}

// New creates an executor that writes metadata through writer.
func New(writer MetadataWriter) *Executor {
	return &Executor{writer: writer}
}

// Apply executes one plan against the file in dir. Unchanged plans succeed
// without touching the filesystem. A rename is attempted before any
// metadata write, and the metadata write targets the renamed path.
func (e *Executor) Apply(dir string, cp plan.ChangePlan) Outcome {
	out := Outcome{Plan: cp, Path: filepath.Join(dir, cp.OriginalName)}

	if cp.Unchanged {
		return out
	}

	if cp.ProposedName != cp.OriginalName {
		newPath, err := e.rename(dir, cp.OriginalName, cp.ProposedName)
		if err != nil {
			out.Err = err
			return out
		}
		out.Path = newPath
		out.Applied = true
	}

	if !cp.Fields.Empty() {
		if err := e.writeMetadata(out.Path, cp.Fields); err != nil {
			out.Err = err
			return out
		}
		out.Applied = true
	}

	return out
}

// rename moves the file to its proposed name, skipping with ErrCollision
// when the target already exists and is not the same file.
func (e *Executor) rename(dir, from, to string) (string, error) {
	oldPath := filepath.Join(dir, from)
	newPath := filepath.Join(dir, to)

	if info, err := os.Stat(newPath); err == nil {
		oldInfo, statErr := os.Stat(oldPath)
		if statErr != nil || !os.SameFile(info, oldInfo) {
			return "", fmt.Errorf("%w: %s", ErrCollision, to)
		}
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename failed: %w", err)
	}

	return newPath, nil
}

// writeMetadata classifies open/encryption/permission failures as
// unwritable; such files are skipped and reported, never retried.
func (e *Executor) writeMetadata(path string, set pdfmeta.FieldSet) error {
	if e.writer == nil {
		return fmt.Errorf("no metadata writer configured")
	}

	if err := e.writer.WriteFile(path, set); err != nil {
		switch pdfmeta.Classify(err) {
		case pdfmeta.ErrorEncrypted, pdfmeta.ErrorUnwritable:
			return fmt.Errorf("%w: %v", ErrUnwritable, err)
		default:
			return err
		}
	}

	return nil
}
