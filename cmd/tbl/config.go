package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig holds settings read from ~/.config/tbl/config.toml. All
// fields are optional; flags override them.
type FileConfig struct {
	Color     *bool `toml:"color"`
	CellWidth int   `toml:"cell_width"`
	Debug     bool  `toml:"debug"`
}

func configPath() (string, error) {
	if v := os.Getenv("TBL_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "config.toml"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tbl", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tbl", "config.toml"), nil
}

// loadFileConfig reads the config file, returning defaults when there is
// none.
func loadFileConfig() (*FileConfig, error) {
	cfg := &FileConfig{}
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}
