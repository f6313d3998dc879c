package configutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// readLayer parses one json5 file into out. A missing or empty file
// reports found=false rather than an error.
func readLayer[T any](path string, out *T) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	return true, json5.Unmarshal(raw, out)
}

// localPath turns "dir/config.json5" into "dir/config.local.json5".
func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}

// ReadConfig reads `name` as json5 and merges `<name>.local.<ext>`
// over it, so a checked-in config can be overridden per machine.
// Neither file existing comes back as os.ErrNotExist.
func ReadConfig[T any](name string) (T, error) {
	var config T
	found, err := readLayer(name, &config)
	if err != nil {
		return config, err
	}

	var override T
	local := localPath(name)
	foundLocal, err := readLayer(local, &override)
	if err != nil {
		return config, err
	}
	if foundLocal {
		if err := mergo.Merge(&config, override, mergo.WithOverride); err != nil {
			return config, err
		}
		slog.Info("merging config with local overrides", "local", local)
	}

	if !found && !foundLocal {
		return config, os.ErrNotExist
	}
	return config, nil
}

// ReadConfigOrDefault is ReadConfig with a compiled-in baseline: a
// missing file yields def outright, a found file is backfilled from
// def wherever it left fields zero.
func ReadConfigOrDefault[T any](name string, def T) (T, error) {
	config, err := ReadConfig[T](name)
	if os.IsNotExist(err) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	if err := mergo.Merge(&config, def); err != nil {
		return def, err
	}
	return config, nil
}

// ReadRecursively walks from the working directory up to the
// filesystem root looking for `name` and reads the first hit.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}
