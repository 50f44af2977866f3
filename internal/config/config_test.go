package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayeah/fileaddr"
	"github.com/hayeah/fileaddr/ignore"
	"github.com/hayeah/fileaddr/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
book = "/data/addresses.csv"
reserved_prefix = "."
gitignore = true
path_style = "windows"
database = "/data/addresses.db"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(&config.Config{
		Book:           "/data/addresses.csv",
		ReservedPrefix: ".",
		Gitignore:      true,
		PathStyle:      "windows",
		Database:       "/data/addresses.db",
	}, cfg)
	assert.Equal(fileaddr.StyleWindows, cfg.Style())
}

func TestLoad_Defaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := config.Load(writeConfig(t, `book = "x.csv"`))
	require.NoError(t, err)
	assert.Equal("x.csv", cfg.Book)
	assert.Equal(ignore.DefaultReservedPrefix, cfg.ReservedPrefix)
	assert.Equal(fileaddr.StyleNative, cfg.Style())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := config.Load(writeConfig(t, `bok = "typo.csv"`))
	assert.ErrorContains(t, err, "bok")
}

func TestLoad_BadStyle(t *testing.T) {
	_, err := config.Load(writeConfig(t, `path_style = "amiga"`))
	assert.Error(t, err)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := config.Load(writeConfig(t, `book = "~/books/a.csv"`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books", "a.csv"), cfg.Book)
}
