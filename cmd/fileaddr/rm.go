package main

import (
	"context"
	"fmt"
	"io"
)

// RmCmd defines the command-line arguments for the rm subcommand
type RmCmd struct {
	Pattern string `arg:"positional,required" help:"Path to remove; a trailing separator removes a directory subtree"`
	Book    string `arg:"-b,--book" help:"Address book CSV (default: book from config)"`
	DB      string `arg:"--db" help:"Remove from an SQLite database instead"`
	Glob    bool   `arg:"-g,--glob" help:"Treat the pattern as a glob (** matches across directories)"`
	Style   string `arg:"--style" help:"Path style of the pattern: native or windows"`
}

// RmRunner encapsulates the state and behavior for the rm subcommand
type RmRunner struct {
	Args RmCmd
	Env  *Env
}

// NewRmRunner creates and initializes a new RmRunner
func NewRmRunner(cmd RmCmd, env *Env) *RmRunner {
	return &RmRunner{Args: cmd, Env: env}
}

// Run removes the matching rows from the store
func (r *RmRunner) Run(out io.Writer) error {
	pattern, err := r.Env.Pattern(r.Args.Pattern, r.Args.Style, r.Args.Glob)
	if err != nil {
		return err
	}

	st, err := r.Env.OpenStore(r.Args.Book, r.Args.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	removed, err := st.Remove(context.Background(), pattern)
	if err != nil {
		return fmt.Errorf("failed to remove '%s': %w", pattern, err)
	}
	fmt.Fprintf(out, "Removed %d address(es) matching '%s'\n", removed, pattern)
	return nil
}
