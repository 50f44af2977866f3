package main

import "github.com/hayeah/fileaddr"

// OpenCmd defines the command-line arguments for the open subcommand
type OpenCmd struct {
	Path string `arg:"positional,required" help:"File to open"`
}

// OpenRunner opens a file with the default application
type OpenRunner struct {
	Args OpenCmd
	open func(path string) error
}

// NewOpenRunner creates and initializes a new OpenRunner
func NewOpenRunner(cmd OpenCmd) *OpenRunner {
	return &OpenRunner{Args: cmd, open: fileaddr.Open}
}

func (r *OpenRunner) Run() error {
	return r.open(r.Args.Path)
}
