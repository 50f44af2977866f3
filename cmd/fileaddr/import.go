package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hayeah/fileaddr"
	"github.com/hayeah/fileaddr/internal/store"
)

// ImportCmd defines the command-line arguments for the import subcommand
type ImportCmd struct {
	Book string `arg:"positional" help:"Address book CSV (default: book from config)"`
	DB   string `arg:"--db" help:"SQLite database to import into (default: database from config)"`
}

// ImportRunner encapsulates the state and behavior for the import subcommand
type ImportRunner struct {
	Args ImportCmd
	Env  *Env
}

// NewImportRunner creates and initializes a new ImportRunner
func NewImportRunner(cmd ImportCmd, env *Env) *ImportRunner {
	return &ImportRunner{Args: cmd, Env: env}
}

// Run copies the CSV address book into the database
func (r *ImportRunner) Run(out io.Writer) error {
	bookPath, err := r.Env.Book(r.Args.Book)
	if err != nil {
		return err
	}
	db := r.Args.DB
	if db == "" {
		db = r.Env.Config.Database
	}
	if db == "" {
		return fmt.Errorf("no database specified, use --db or set database in the config")
	}

	book, err := fileaddr.LoadAddressBook(bookPath)
	if err != nil {
		return err
	}

	st, err := store.OpenSQLite(db, r.Env.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Import(context.Background(), book)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %d address(es) into %s\n", n, db)
	return nil
}
