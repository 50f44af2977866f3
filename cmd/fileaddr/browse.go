package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hayeah/fileaddr"
)

// BrowseCmd defines the command-line arguments for the browse subcommand
type BrowseCmd struct {
	Book  string `arg:"positional" help:"Address book CSV (default: book from config)"`
	DB    string `arg:"--db" help:"Browse an SQLite database instead"`
	Base  string `arg:"--base" help:"Show paths relative to this directory (default: the book's directory)"`
	Style string `arg:"--style" help:"Path style used when deleting: native or windows"`
}

// BrowseRunner encapsulates the state and behavior for the browse subcommand
type BrowseRunner struct {
	Args BrowseCmd
	Env  *Env
}

// NewBrowseRunner creates and initializes a new BrowseRunner
func NewBrowseRunner(cmd BrowseCmd, env *Env) *BrowseRunner {
	return &BrowseRunner{Args: cmd, Env: env}
}

// Run starts the interactive tree browser
func (r *BrowseRunner) Run() error {
	style := r.Env.Config.Style()
	if r.Args.Style != "" {
		s, err := fileaddr.ParsePathStyle(r.Args.Style)
		if err != nil {
			return err
		}
		style = s
	}

	st, err := r.Env.OpenStore(r.Args.Book, r.Args.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	base := r.Args.Base
	if base == "" {
		base = st.Base()
	}
	m, err := newBrowseModel(context.Background(), st, base, style, fileaddr.Open)
	if err != nil {
		return err
	}

	// Draw on stderr so stdout stays free for piping
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
