package ignore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// DefaultReservedPrefix marks system directories that are never scanned.
const DefaultReservedPrefix = "_[sys]_"

// Rules decides which paths under a root are left out of a scan.
type Rules struct {
	rootPath       string
	reservedPrefix string
	matcher        gitignore.Matcher // nil unless gitignore rules are enabled
}

// NewRules creates the skip rules for rootPath. Directories whose name starts
// with reservedPrefix are skipped. With useGitignore the .gitignore files
// under rootPath apply too, and .git is always skipped.
func NewRules(rootPath, reservedPrefix string, useGitignore bool) (*Rules, error) {
	r := &Rules{
		rootPath:       rootPath,
		reservedPrefix: reservedPrefix,
	}
	if !useGitignore {
		return r, nil
	}

	patterns, err := gitignore.ReadPatterns(osfs.New(rootPath), []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to read gitignore patterns: %w", err)
	}
	r.matcher = gitignore.NewMatcher(patterns)
	return r, nil
}

// IsIgnored reports whether path should be left out of the scan.
func (r *Rules) IsIgnored(path string, isDir bool) (bool, error) {
	relPath, err := filepath.Rel(r.rootPath, path)
	if err != nil {
		return false, err
	}
	// never skip the root itself
	if relPath == "." {
		return false, nil
	}

	name := filepath.Base(path)
	if isDir && r.reservedPrefix != "" && strings.HasPrefix(name, r.reservedPrefix) {
		return true, nil
	}
	if r.matcher == nil {
		return false, nil
	}
	if isDir && name == ".git" {
		return true, nil
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return r.matcher.Match(parts, isDir), nil
}

// WalkDir walks the tree under the root, calling fn for every path that is
// not ignored, including the root. Ignored directories are not descended.
func (r *Rules) WalkDir(fn func(path string, d fs.DirEntry) error) error {
	return filepath.WalkDir(r.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		ignored, err := r.IsIgnored(path, d.IsDir())
		if err != nil {
			return err
		}
		if ignored {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path, d)
	})
}
