package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Import SQLite driver

	"github.com/hayeah/fileaddr"
)

const schema = `
CREATE TABLE IF NOT EXISTS addresses (
	id INTEGER PRIMARY KEY,
	path TEXT NOT NULL UNIQUE,
	size_mb REAL NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps the address book in an SQLite table.
type SQLiteStore struct {
	DB     *sqlx.DB
	Logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

type address struct {
	ID     int64   `db:"id"`
	Path   string  `db:"path"`
	SizeMB float64 `db:"size_mb"`
}

// OpenSQLite opens (creating if needed) the address database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create addresses table: %w", err)
	}
	return &SQLiteStore{DB: db, Logger: logger}, nil
}

// Import upserts every record of book and returns how many were written.
func (s *SQLiteStore) Import(ctx context.Context, book *fileaddr.AddressBook) (int, error) {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	records := book.Records()
	for _, rec := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO addresses (path, size_mb) VALUES (?, ?)
			 ON CONFLICT(path) DO UPDATE SET size_mb = excluded.size_mb`,
			rec.Path, rec.SizeMB,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to import %s: %w", rec.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	s.Logger.Info("imported address book", "rows", len(records))
	return len(records), nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*fileaddr.AddressBook, error) {
	var rows []address
	if err := s.DB.SelectContext(ctx, &rows, "SELECT * FROM addresses ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}
	records := make([]fileaddr.Record, len(rows))
	for i, r := range rows {
		records[i] = fileaddr.Record{Path: r.Path, SizeMB: r.SizeMB}
	}
	return fileaddr.NewAddressBook(records), nil
}

// Remove deletes the matched rows in one transaction, so either all of them
// go or none.
func (s *SQLiteStore) Remove(ctx context.Context, p *fileaddr.Pattern) (int, error) {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	var rows []address
	if err := tx.SelectContext(ctx, &rows, "SELECT * FROM addresses ORDER BY id"); err != nil {
		return 0, fmt.Errorf("failed to load addresses: %w", err)
	}

	removed := 0
	for _, r := range rows {
		if !p.Match(r.Path) {
			continue
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", r.ID); err != nil {
			return 0, fmt.Errorf("failed to delete %s: %w", r.Path, err)
		}
		removed++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}

	s.Logger.Info("updated address database", "pattern", p.String(), "removed", removed, "rows", len(rows)-removed)
	return removed, nil
}

// Base is empty: database paths are shown as stored.
func (s *SQLiteStore) Base() string { return "" }

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}

func bookDir(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Dir(path)
	}
	return filepath.Dir(abs)
}
