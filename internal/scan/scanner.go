// Package scan takes the read-only directory snapshot a run operates on and
// implements the metadata inventory over it.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dockeep/pdftidy/internal/pdfmeta"
)

// Entry is one PDF file in the snapshot.
type Entry struct {
	// Dir is the directory holding the file, Name the bare filename.
	Dir     string
	Name    string
	Size    int64
	ModTime time.Time
}

// Path returns the full path of the entry.
func (e Entry) Path() string { return filepath.Join(e.Dir, e.Name) }

// Scanner lists the PDF documents of a target directory.
type Scanner struct {
	dir         string
	maxFileSize int64
}

// New creates a scanner over dir. Files larger than maxFileSize are left
// out of the snapshot (0 disables the limit).
func New(dir string, maxFileSize int64) *Scanner {
	return &Scanner{dir: dir, maxFileSize: maxFileSize}
}

// Snapshot walks the directory tree once and returns every PDF file, sorted
// by path. The listing is taken at the start of a run and never refreshed,
// so each file is processed exactly once even when renames land inside the
// same tree.
func (s *Scanner) Snapshot() ([]Entry, error) {
	if s.dir == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", s.dir)
	}

	var entries []Entry

	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Skip unreadable entries, keep walking
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(info.Name()), ".pdf") {
			return nil
		}
		if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
			return nil
		}

		entries = append(entries, Entry{
			Dir:     filepath.Dir(path),
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path() < entries[j].Path() })
	return entries, nil
}

// InventoryRow is the per-file result of a metadata inventory pass.
type InventoryRow struct {
	Entry  Entry
	Fields pdfmeta.Fields
	Err    error
	Kind   pdfmeta.ErrorKind
}

// Stats summarizes one inventory run.
type Stats struct {
	Total  int
	Clean  int
	ByKind map[pdfmeta.ErrorKind]int
}

// Inventory reads the stored metadata of every snapshot entry. Failures are
// recorded per file and never abort the pass.
func (s *Scanner) Inventory(reader *pdfmeta.Reader) ([]InventoryRow, Stats, error) {
	entries, err := s.Snapshot()
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{ByKind: make(map[pdfmeta.ErrorKind]int)}
	rows := make([]InventoryRow, 0, len(entries))

	for _, entry := range entries {
		row := InventoryRow{Entry: entry}
		row.Fields, row.Err = reader.ReadFile(entry.Path())
		row.Kind = pdfmeta.Classify(row.Err)

		stats.Total++
		if row.Err == nil {
			stats.Clean++
		} else {
			stats.ByKind[row.Kind]++
		}

		rows = append(rows, row)
	}

	return rows, stats, nil
}
