package fileaddr

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/hayeah/fileaddr/ignore"
)

// ScanOptions controls which parts of the tree are recorded.
type ScanOptions struct {
	// ReservedPrefix marks directories that are skipped with their whole
	// subtree. Defaults to ignore.DefaultReservedPrefix.
	ReservedPrefix string
	// Gitignore also applies .gitignore rules found under the root.
	Gitignore bool
}

// Scan walks root and returns a record for every file: its absolute path and
// its size in megabytes rounded to two decimals.
func Scan(root string, opts ScanOptions) ([]Record, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	prefix := opts.ReservedPrefix
	if prefix == "" {
		prefix = ignore.DefaultReservedPrefix
	}
	rules, err := ignore.NewRules(absRoot, prefix, opts.Gitignore)
	if err != nil {
		return nil, err
	}

	var records []Record
	err = rules.WalkDir(func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		records = append(records, Record{Path: path, SizeMB: SizeMB(info.Size())})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// WriteRecords writes records as an address book with the default header.
func WriteRecords(w io.Writer, records []Record) error {
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
