package fileaddr

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Synchronizer applies deletions to an address book file. It assumes it is
// the only writer of the file.
type Synchronizer struct {
	Path   string
	Logger *slog.Logger
}

// NewSynchronizer creates a Synchronizer for the address book at path.
func NewSynchronizer(path string, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Synchronizer{Path: path, Logger: logger}
}

// Remove rewrites the address book without the rows matched by p and
// returns how many rows were removed. The original file is replaced
// atomically and is left untouched on any failure.
func (s *Synchronizer) Remove(p *Pattern) (int, error) {
	return s.Rewrite(func(row []string) bool {
		path := rowPath(row)
		return path == "" || !p.Match(path)
	})
}

// Rewrite keeps the header and every row for which keep returns true.
func (s *Synchronizer) Rewrite(keep func(row []string) bool) (int, error) {
	book, err := LoadAddressBook(s.Path)
	if err != nil {
		return 0, err
	}

	kept := make([][]string, 0, len(book.Rows))
	for _, row := range book.Rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	removed := len(book.Rows) - len(kept)
	book.Rows = kept

	if err := WriteFileAtomic(s.Path, book.Write); err != nil {
		s.Logger.Error("failed to update address book", "path", s.Path, "error", err)
		return 0, err
	}

	s.Logger.Info("updated address book", "path", s.Path, "removed", removed, "rows", len(kept))
	return removed, nil
}

// WriteFileAtomic writes a temporary file next to path with write, then
// renames it over path. On failure the temporary file is removed and path is
// not modified.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if info, statErr := os.Stat(path); statErr == nil {
		if err = tmp.Chmod(info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to set temp file mode: %w", err)
		}
	}
	if err = write(tmp); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
