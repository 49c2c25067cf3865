package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configNames are the config files looked up in the working directory when
// --config is not given.
var configNames = []string{"unwrapgen.yaml", "unwrapgen.yml", "unwrapgen.toml"}

// fileConfig is the content of a config file. Pointer fields distinguish unset
// keys from zero values.
type fileConfig struct {
	Tags   *string `yaml:"tags" toml:"tags"`
	Tests  *bool   `yaml:"tests" toml:"tests"`
	Output *string `yaml:"output" toml:"output"`
	Color  *string `yaml:"color" toml:"color"`
}

// applyConfigFile loads the config file and applies it to opts. Flags changed
// on the command line are kept.
func applyConfigFile(cmd *cobra.Command, opts *options, wd string) error {
	path := opts.ConfigPath
	if path == "" {
		found, err := findConfigFile(wd)
		if err != nil || found == "" {
			return err
		}
		path = found
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if cfg.Tags != nil && !flags.Changed("tags") {
		opts.Tags = *cfg.Tags
	}
	if cfg.Tests != nil && !flags.Changed("tests") {
		opts.Tests = *cfg.Tests
	}
	if cfg.Output != nil && !flags.Changed("output") {
		opts.Output = *cfg.Output
	}
	if cfg.Color != nil && !flags.Changed("color") {
		opts.Color = *cfg.Color
	}
	return nil
}

// findConfigFile returns the first config file in dir. It returns an empty
// string if there is none.
func findConfigFile(dir string) (string, error) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, err
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return fileConfig{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return fileConfig{}, fmt.Errorf("%s: unknown config format; use .yaml, .yml, or .toml", path)
	}

	if cfg.Output != nil && *cfg.Output == "" {
		return fileConfig{}, fmt.Errorf("%s: output must not be empty", path)
	}
	return cfg, nil
}
