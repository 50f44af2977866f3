package ignore_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/fileaddr/ignore"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestRules_IsIgnored(t *testing.T) {
	root := writeTree(t, map[string]string{
		".gitignore": "*.log\nbuild/\n",
	})

	cases := []struct {
		name      string
		gitignore bool
		path      string
		isDir     bool
		want      bool
	}{
		{"root", true, "", true, false},
		{"reserved dir", false, "_[sys]_cache", true, true},
		{"reserved nested dir", false, "a/_[sys]_x", true, true},
		{"reserved file name", false, "_[sys]_notes.txt", false, false},
		{"plain file", false, "a.log", false, false},
		{"git dir kept without gitignore", false, ".git", true, false},
		{"git dir", true, ".git", true, true},
		{"ignored file", true, "a.log", false, true},
		{"ignored dir", true, "build", true, true},
		{"kept file", true, "main.go", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := ignore.NewRules(root, ignore.DefaultReservedPrefix, tc.gitignore)
			require.NoError(t, err)

			got, err := rules.IsIgnored(filepath.Join(root, filepath.FromSlash(tc.path)), tc.isDir)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRules_WalkDir(t *testing.T) {
	assert := assert.New(t)

	root := writeTree(t, map[string]string{
		"a.txt":                "a",
		"sub/b.txt":            "b",
		"_[sys]_trash/c.txt":   "c",
		"sub/_[sys]_old/d.txt": "d",
	})
	rules, err := ignore.NewRules(root, ignore.DefaultReservedPrefix, false)
	require.NoError(t, err)

	var visited []string
	err = rules.WalkDir(func(path string, d fs.DirEntry) error {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		visited = append(visited, filepath.ToSlash(rel))
		return nil
	})
	assert.NoError(err)
	assert.Equal([]string{".", "a.txt", "sub", "sub/b.txt"}, visited)
}

func TestRules_NoPrefix(t *testing.T) {
	root := writeTree(t, map[string]string{"_[sys]_x/a.txt": "a"})

	rules, err := ignore.NewRules(root, "", false)
	require.NoError(t, err)

	ignored, err := rules.IsIgnored(filepath.Join(root, "_[sys]_x"), true)
	assert.NoError(t, err)
	assert.False(t, ignored, "an empty prefix skips nothing")
}
