package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mlunden/ordna/pkg/errors"
)

// WriteDefault writes the default configuration to path (or the default
// location when path is empty) so users have a file to edit. An existing
// file is never overwritten unless force is set.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		path = DefaultPath()
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.Newf(errors.ErrConfigLoad, "config file already exists: %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot create config directory for %s", path)
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot marshal default config")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot write config file %s", path)
	}
	return path, nil
}
