package main

import (
	"log/slog"
	"os"

	"github.com/hayeah/fileaddr"
	"github.com/hayeah/fileaddr/internal/config"
	"github.com/hayeah/fileaddr/internal/store"
)

// Env groups the services shared by every subcommand.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

// ProvideConfig loads the config file named by --config, or the default one.
func ProvideConfig(args Args) (*config.Config, error) {
	path := args.Config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	return config.Load(path)
}

// ProvideLogger logs to stderr so stdout stays clean for command output.
func ProvideLogger(args Args) *slog.Logger {
	level := slog.LevelWarn
	if args.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// OpenStore opens the SQLite database when one is given (by flag or config),
// otherwise the CSV address book.
func (e *Env) OpenStore(book, db string) (store.Store, error) {
	if db == "" && book == "" {
		db = e.Config.Database
	}
	if db != "" {
		return store.OpenSQLite(db, e.Logger)
	}
	book, err := e.Book(book)
	if err != nil {
		return nil, err
	}
	return store.NewCSVStore(book, e.Logger), nil
}

// Book resolves the address book path, falling back to the configured one.
func (e *Env) Book(book string) (string, error) {
	if book == "" {
		book = e.Config.Book
	}
	if book == "" {
		return "", fileaddr.ErrNoBook
	}
	return book, nil
}

// Pattern compiles a delete pattern with the configured path style unless
// style overrides it.
func (e *Env) Pattern(pattern, style string, glob bool) (*fileaddr.Pattern, error) {
	pathStyle := e.Config.Style()
	if style != "" {
		s, err := fileaddr.ParsePathStyle(style)
		if err != nil {
			return nil, err
		}
		pathStyle = s
	}
	return fileaddr.CompilePattern(pattern, fileaddr.PatternOptions{Style: pathStyle, Glob: glob})
}
