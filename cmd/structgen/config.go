package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	configFile    = "structgen.toml"
	defaultOutput = "structgen_gen.go"
)

// config holds defaults of the command-line flags read from structgen.toml:
//
//	output = "structgen_gen.go"
//	tags = "integration"
//	tests = false
//	color = "auto"
type config struct {
	Output string `toml:"output"`
	Tags   string `toml:"tags"`
	Tests  *bool  `toml:"tests"`
	Color  string `toml:"color"`
}

// apply overrides the options by the config. Flags given explicitly win.
func (c config) apply(opts options, changed func(name string) bool) options {
	if c.Output != "" && !changed("output") {
		opts.output = c.Output
	}
	if c.Tags != "" && !changed("tags") {
		opts.tags = c.Tags
	}
	if c.Tests != nil && !changed("tests") {
		opts.tests = *c.Tests
	}
	if c.Color != "" && !changed("color") {
		opts.color = c.Color
	}
	return opts
}

// findConfig searches structgen.toml from dir upward. It returns an empty
// path if there is no config file.
func findConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// loadConfig loads the config at path, or the config found from wd if path is
// empty. It returns the path of the loaded config.
func loadConfig(wd, path string) (config, string, error) {
	if path == "" {
		found, err := findConfig(wd)
		if err != nil || found == "" {
			return config{}, "", err
		}
		path = found
	}

	var cfg config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, "", fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return config{}, "", fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, path, nil
}
