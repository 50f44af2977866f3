package main

import (
	"context"
	"io"

	"github.com/hayeah/fileaddr"
	"github.com/hayeah/fileaddr/internal/store"
)

// TreeCmd defines the command-line arguments for the tree subcommand
type TreeCmd struct {
	Book   string `arg:"positional" help:"Address book CSV (default: book from config)"`
	DB     string `arg:"--db" help:"Read addresses from an SQLite database instead"`
	Filter string `arg:"-f,--filter" help:"Only show paths fuzzy-matching this query"`
	Base   string `arg:"--base" help:"Show paths relative to this directory (default: the book's directory)"`
}

// TreeRunner encapsulates the state and behavior for the tree subcommand
type TreeRunner struct {
	Args TreeCmd
	Env  *Env
}

// NewTreeRunner creates and initializes a new TreeRunner
func NewTreeRunner(cmd TreeCmd, env *Env) *TreeRunner {
	return &TreeRunner{Args: cmd, Env: env}
}

// Run loads the address book and prints it as a tree
func (r *TreeRunner) Run(out io.Writer) error {
	st, err := r.Env.OpenStore(r.Args.Book, r.Args.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	base := r.Args.Base
	if base == "" {
		base = st.Base()
	}
	tree, err := loadTree(context.Background(), st, base)
	if err != nil {
		return err
	}
	return tree.Filter(r.Args.Filter).Render(out)
}

// loadTree reads the store and indexes its records.
func loadTree(ctx context.Context, st store.Store, base string) (*fileaddr.Tree, error) {
	book, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	return fileaddr.BuildTree(book.Records(), fileaddr.TreeOptions{Base: base}), nil
}
