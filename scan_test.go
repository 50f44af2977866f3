package fileaddr_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/fileaddr"
)

func scannedPaths(t *testing.T, root string, records []fileaddr.Record) []string {
	t.Helper()
	var paths []string
	for _, rec := range records {
		rel, err := filepath.Rel(root, rec.Path)
		require.NoError(t, err)
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

func TestScan(t *testing.T) {
	assert := assert.New(t)

	tempDir, err := createTestDirectory(t, map[string]string{
		"a.txt":                  "aaa",
		"docs/b.txt":             "bbb",
		"_[sys]_cache/c.txt":     "ccc",
		"docs/_[sys]_old/d.txt":  "ddd",
		"docs/_[sys]_note.txt":   "only directories are reserved",
		"node_modules/pkg/e.txt": "eee",
	})
	require.NoError(t, err)

	records, err := fileaddr.Scan(tempDir, fileaddr.ScanOptions{})
	assert.NoError(err)

	assert.ElementsMatch([]string{
		"a.txt",
		"docs/b.txt",
		"docs/_[sys]_note.txt",
		"node_modules/pkg/e.txt",
	}, scannedPaths(t, tempDir, records))

	for _, rec := range records {
		assert.True(filepath.IsAbs(rec.Path), "paths are absolute: %s", rec.Path)
	}
}

func TestScan_Gitignore(t *testing.T) {
	assert := assert.New(t)

	tempDir, err := createTestDirectory(t, map[string]string{
		".gitignore":             "node_modules/\n*.log\n",
		"a.txt":                  "aaa",
		"debug.log":              "log",
		"node_modules/pkg/e.txt": "eee",
		".git/HEAD":              "ref",
	})
	require.NoError(t, err)

	records, err := fileaddr.Scan(tempDir, fileaddr.ScanOptions{Gitignore: true})
	assert.NoError(err)
	assert.ElementsMatch([]string{".gitignore", "a.txt"}, scannedPaths(t, tempDir, records))
}

func TestScan_CustomPrefix(t *testing.T) {
	assert := assert.New(t)

	tempDir, err := createTestDirectory(t, map[string]string{
		"keep/a.txt":    "a",
		".hidden/b.txt": "b",
	})
	require.NoError(t, err)

	records, err := fileaddr.Scan(tempDir, fileaddr.ScanOptions{ReservedPrefix: "."})
	assert.NoError(err)
	assert.Equal([]string{"keep/a.txt"}, scannedPaths(t, tempDir, records))
}

func TestScan_Size(t *testing.T) {
	assert := assert.New(t)

	tempDir := t.TempDir()
	big := filepath.Join(tempDir, "big.bin")
	require.NoError(t, os.WriteFile(big, bytes.Repeat([]byte{0}, 3*1024*1024/2), 0644))

	records, err := fileaddr.Scan(tempDir, fileaddr.ScanOptions{})
	assert.NoError(err)
	assert.Equal([]fileaddr.Record{{Path: big, SizeMB: 1.5}}, records)
}

func TestWriteRecords(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	err := fileaddr.WriteRecords(&buf, []fileaddr.Record{
		{Path: "/data/a.txt", SizeMB: 1.25},
		{Path: "/data/with,comma.txt", SizeMB: 0},
	})
	assert.NoError(err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal("File Path,Size (MB)", lines[0])

	book, err := fileaddr.ReadAddressBook(&buf)
	assert.NoError(err)
	assert.Equal([]fileaddr.Record{
		{Path: "/data/a.txt", SizeMB: 1.25},
		{Path: "/data/with,comma.txt", SizeMB: 0},
	}, book.Records())
}
