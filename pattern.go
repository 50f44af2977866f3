package fileaddr

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathStyle selects how a delete pattern is normalized before matching.
type PathStyle string

const (
	// StyleNative matches the pattern as given.
	StyleNative PathStyle = "native"
	// StyleWindows rewrites the pattern to the backslash-rooted relative
	// form `.\subdir\file.ext`, whatever the host platform. Address books
	// written by the Windows variant of the scanner use that form.
	StyleWindows PathStyle = "windows"
)

// ParsePathStyle validates a configured path style. Empty means native.
func ParsePathStyle(s string) (PathStyle, error) {
	switch PathStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleNative:
		return StyleNative, nil
	case StyleWindows:
		return StyleWindows, nil
	default:
		return "", fmt.Errorf("unknown path style %q, expected native or windows", s)
	}
}

// ErrEmptyPattern is returned when compiling a blank pattern.
var ErrEmptyPattern = errors.New("empty path pattern")

// PatternOptions configure CompilePattern.
type PatternOptions struct {
	Style PathStyle
	Glob  bool // treat the pattern as a doublestar glob
}

// Pattern selects the address book rows removed by a delete.
type Pattern struct {
	raw    string
	prefix string         // set for directory patterns
	exact  *regexp.Regexp // set for file patterns
	glob   string         // set for glob patterns
}

// CompilePattern parses a delete pattern. A pattern ending in a separator
// names a directory and matches its whole subtree. Any other pattern must
// match a row's path exactly.
func CompilePattern(pattern string, opts PatternOptions) (*Pattern, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if opts.Style == StyleWindows {
		pattern = WindowsRelative(pattern)
	}

	p := &Pattern{raw: pattern}
	switch {
	case opts.Glob:
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern '%s'", pattern)
		}
		p.glob = pattern
	case hasTrailingSeparator(pattern):
		p.prefix = pattern
	default:
		p.exact = regexp.MustCompile("^" + regexp.QuoteMeta(pattern) + "$")
	}
	return p, nil
}

// String returns the pattern after normalization.
func (p *Pattern) String() string {
	return p.raw
}

// IsDir reports whether the pattern removes a directory subtree.
func (p *Pattern) IsDir() bool {
	return p.prefix != ""
}

// Match reports whether the row path is selected by the pattern.
func (p *Pattern) Match(rowPath string) bool {
	switch {
	case p.glob != "":
		ok, err := doublestar.Match(p.glob, filepath.ToSlash(rowPath))
		return err == nil && ok
	case p.prefix != "":
		if strings.HasPrefix(rowPath, p.prefix) {
			return true
		}
		dir := strings.TrimRight(p.prefix, `/\`)
		// the directory's own row, written without the trailing separator
		if rowPath == dir {
			return true
		}
		// rows spelled differently, e.g. "./a/b/x.txt" under "a/b/"
		row, cleanDir := cleanSlash(rowPath), cleanSlash(dir)
		return row == cleanDir || strings.HasPrefix(row, strings.TrimSuffix(cleanDir, "/")+"/")
	default:
		return p.exact.MatchString(rowPath)
	}
}

func cleanSlash(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func hasTrailingSeparator(s string) bool {
	return strings.HasSuffix(s, "/") || strings.HasSuffix(s, `\`)
}

// WindowsRelative converts p to the `.\dir\file` form. Drive-rooted and
// UNC paths keep their root.
func WindowsRelative(p string) string {
	p = strings.ReplaceAll(p, "/", `\`)
	switch {
	case strings.HasPrefix(p, `.\`), strings.HasPrefix(p, `\\`):
		return p
	case len(p) >= 2 && p[1] == ':':
		return p
	default:
		return `.\` + strings.TrimLeft(p, `\`)
	}
}
