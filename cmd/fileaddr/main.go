package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Config  string `arg:"--config" help:"Path to the config file (default: $XDG_CONFIG_HOME/fileaddr/config.toml)"`
	Verbose bool   `arg:"-v,--verbose" help:"Log debug output to stderr"`

	Scan   *ScanCmd   `arg:"subcommand:scan" help:"Scan a directory into an address book"`
	Tree   *TreeCmd   `arg:"subcommand:tree" help:"Print an address book as a tree"`
	Rm     *RmCmd     `arg:"subcommand:rm" help:"Remove addresses matching a path pattern"`
	Browse *BrowseCmd `arg:"subcommand:browse" help:"Browse an address book interactively"`
	Import *ImportCmd `arg:"subcommand:import" help:"Import an address book into an SQLite database"`
	Open   *OpenCmd   `arg:"subcommand:open" help:"Open a file with the default application"`
}

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args Args
	Env  *Env
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) (*Runner, error) {
	env, err := BuildEnv(args)
	if err != nil {
		return nil, err
	}
	return &Runner{Args: args, Env: env}, nil
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run() error {
	switch {
	case r.Args.Scan != nil:
		return NewScanRunner(*r.Args.Scan, r.Env).Run(os.Stdout)
	case r.Args.Tree != nil:
		return NewTreeRunner(*r.Args.Tree, r.Env).Run(os.Stdout)
	case r.Args.Rm != nil:
		return NewRmRunner(*r.Args.Rm, r.Env).Run(os.Stdout)
	case r.Args.Browse != nil:
		return NewBrowseRunner(*r.Args.Browse, r.Env).Run()
	case r.Args.Import != nil:
		return NewImportRunner(*r.Args.Import, r.Env).Run(os.Stdout)
	case r.Args.Open != nil:
		return NewOpenRunner(*r.Args.Open).Run()
	default:
		return fmt.Errorf("no subcommand specified, use 'scan', 'tree', 'rm', 'browse', 'import', or 'open'")
	}
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	parser := arg.MustParse(&args)

	if parser.Subcommand() == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	runner, err := NewRunner(args)
	if err != nil {
		log.Fatal(err)
	}
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
