package configutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// LocalPath returns the path of the local override file for `name`,
// ex. `config/facetcrawl.json5` -> `config/facetcrawl.local.json5`
func LocalPath(name string) string {
	prefixname, ext := splitExt(filepath.Base(name))
	if ext == "" {
		return filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local", prefixname))
	}
	return filepath.Join(
		filepath.Dir(name),
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
}

func readFile(path string) (map[string]any, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, nil
	}
	var out map[string]any
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// reads a configuration file, `name` should come with a file extension,
// it will automatically be lopped off to produce the other extensions.
// this function will merge the following files, where higher number is more prioritized.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// the files are merged as objects before being decoded, so every key present
// in the local file wins, even when its value is false, 0 or "".
//
// os.ErrNotExist is returned if neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T

	merged, err := readFile(name)
	if err != nil {
		return out, err
	}

	localPath := LocalPath(name)
	override, err := readFile(localPath)
	if err != nil {
		return out, err
	}

	switch {
	case merged == nil && override == nil:
		return out, os.ErrNotExist
	case merged == nil:
		merged = override
	case override != nil:
		err = mergo.Merge(&merged, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(encoded, &out)
	if err != nil {
		return out, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// ReadConfigWithDefaults is ReadConfig, except that missing files are not an error
// and any field left at its zero value is filled in from `defaults`.
func ReadConfigWithDefaults[T any](name string, defaults T) (T, error) {
	out, err := ReadConfig[T](name)
	if os.IsNotExist(err) {
		slog.Debug("no config file found, using defaults", "path", name)
		return defaults, nil
	}
	if err != nil {
		return out, err
	}
	err = mergo.Merge(&out, defaults)
	if err != nil {
		return out, err
	}
	return out, nil
}
