package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hayeah/fileaddr"
	"github.com/hayeah/fileaddr/ignore"
)

// Config is the content of the fileaddr config file.
type Config struct {
	// Book is the address book used when none is given on the command line.
	Book string `toml:"book"`
	// ReservedPrefix marks directories the scanner skips.
	ReservedPrefix string `toml:"reserved_prefix"`
	// Gitignore makes the scanner respect .gitignore files.
	Gitignore bool `toml:"gitignore"`
	// PathStyle is "native" or "windows", see fileaddr.PathStyle.
	PathStyle string `toml:"path_style"`
	// Database is an SQLite address store used instead of the CSV book.
	Database string `toml:"database"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ReservedPrefix: ignore.DefaultReservedPrefix,
		PathStyle:      string(fileaddr.StyleNative),
	}
}

// DefaultPath is $XDG_CONFIG_HOME/fileaddr/config.toml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fileaddr", "config.toml"), nil
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.Book = expandHome(cfg.Book)
	cfg.Database = expandHome(cfg.Database)
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	if _, err := fileaddr.ParsePathStyle(c.PathStyle); err != nil {
		return err
	}
	return nil
}

// Style returns the configured path style.
func (c *Config) Style() fileaddr.PathStyle {
	style, err := fileaddr.ParsePathStyle(c.PathStyle)
	if err != nil {
		return fileaddr.StyleNative
	}
	return style
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
