package store

import (
	"context"
	"log/slog"

	"github.com/hayeah/fileaddr"
)

// Store holds an address book and applies deletions to it.
type Store interface {
	// Load returns the current address book.
	Load(ctx context.Context) (*fileaddr.AddressBook, error)
	// Remove deletes the rows matched by p and returns how many were removed.
	Remove(ctx context.Context, p *fileaddr.Pattern) (int, error)
	// Base is the directory tree paths are shown relative to, if any.
	Base() string
	Close() error
}

// CSVStore keeps the address book in a CSV file.
type CSVStore struct {
	Path string
	sync *fileaddr.Synchronizer
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore opens the CSV address book at path.
func NewCSVStore(path string, logger *slog.Logger) *CSVStore {
	return &CSVStore{
		Path: path,
		sync: fileaddr.NewSynchronizer(path, logger),
	}
}

func (s *CSVStore) Load(ctx context.Context) (*fileaddr.AddressBook, error) {
	return fileaddr.LoadAddressBook(s.Path)
}

func (s *CSVStore) Remove(ctx context.Context, p *fileaddr.Pattern) (int, error) {
	return s.sync.Remove(p)
}

// Base is the directory holding the CSV file.
func (s *CSVStore) Base() string {
	return bookDir(s.Path)
}

func (s *CSVStore) Close() error { return nil }
