package main

import (
	"fmt"
	"io"

	"github.com/hayeah/fileaddr"
)

// ScanCmd defines the command-line arguments for the scan subcommand
type ScanCmd struct {
	Dir       string `arg:"positional" help:"Directory to scan (default: current directory)"`
	Output    string `arg:"-o,--output" default:"file_addresses.csv" help:"Address book to write, - for stdout"`
	Gitignore bool   `arg:"--gitignore" help:"Skip files ignored by .gitignore"`
	Prefix    string `arg:"--prefix" help:"Skip directories whose name starts with this prefix"`
}

// ScanRunner encapsulates the state and behavior for the scan subcommand
type ScanRunner struct {
	Args ScanCmd
	Env  *Env
}

// NewScanRunner creates and initializes a new ScanRunner
func NewScanRunner(cmd ScanCmd, env *Env) *ScanRunner {
	return &ScanRunner{Args: cmd, Env: env}
}

// Run scans the directory and writes the address book
func (r *ScanRunner) Run(out io.Writer) error {
	dir := r.Args.Dir
	if dir == "" {
		dir = "."
	}
	prefix := r.Args.Prefix
	if prefix == "" {
		prefix = r.Env.Config.ReservedPrefix
	}

	records, err := fileaddr.Scan(dir, fileaddr.ScanOptions{
		ReservedPrefix: prefix,
		Gitignore:      r.Args.Gitignore || r.Env.Config.Gitignore,
	})
	if err != nil {
		return err
	}
	r.Env.Logger.Debug("scanned directory", "dir", dir, "files", len(records))

	if r.Args.Output == "-" {
		return fileaddr.WriteRecords(out, records)
	}
	err = fileaddr.WriteFileAtomic(r.Args.Output, func(w io.Writer) error {
		return fileaddr.WriteRecords(w, records)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File paths and sizes have been written to %s\n", r.Args.Output)
	return nil
}
