package configuration

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// readInto parses one json5 file into out. Returns false when the file
// does not exist.
func readInto[T any](path string, out *T) (bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	// an empty file reads the same as a missing one
	if len(raw) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(raw, out)
	if err != nil {
		return false, err
	}
	return true, nil
}

// localVariant turns "dir/config.json5" into "dir/config.local.json5".
func localVariant(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// ReadConfig reads a json5 configuration file, then merges in a
// sibling `<name>.local.<ext>` file when one exists, with the local
// values taking priority. Returns os.ErrNotExist when neither file is
// present.
func ReadConfig[T any](name string) (T, error) {
	var out T

	found, err := readInto(name, &out)
	if err != nil {
		return out, err
	}

	localPath := localVariant(name)
	var override T
	foundLocal, err := readInto(localPath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !found && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively walks up from the working directory until it finds a
// configuration file matching name.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if !os.IsNotExist(err) {
			return config, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return defaultOut, os.ErrNotExist
		}
		current = parent
	}
}
