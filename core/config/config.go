// Package config resolves the extraction style configuration: an optional
// apisurf.yaml in the project root, overridden by CLI flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/apisurf-labs/apisurf/pkg/errors"
)

const (
	// ConfigFileName is the config file name looked up in the project root.
	ConfigFileName = "apisurf"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"

	// DefaultEntryFile is the barrel filename convention: one file per
	// module directory.
	DefaultEntryFile = "index.ts"
	// DefaultOutputFile is the artifact path, relative to the project root.
	DefaultOutputFile = "api-surface.json"
	// DefaultIndent is the serializer indent width.
	DefaultIndent = 2
)

// Config holds the resolved extraction settings.
type Config struct {
	// Entry is the fixed per-module entry filename.
	Entry string `mapstructure:"entry"`
	// Output is the artifact path; relative paths resolve against the
	// project root.
	Output string `mapstructure:"output"`
	// Indent is the serializer indent width in spaces.
	Indent int `mapstructure:"indent"`
}

// Load resolves the configuration for projectRoot. A missing config file is
// not an error; a malformed one is a configuration error.
func Load(projectRoot string) (Config, error) {
	v := viper.New()
	v.SetDefault("entry", DefaultEntryFile)
	v.SetDefault("output", DefaultOutputFile)
	v.SetDefault("indent", DefaultIndent)

	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(projectRoot)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(errors.ErrConfiguration,
				"reading config in %s: %v", projectRoot, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrConfiguration,
			"decoding config in %s: %v", projectRoot, err)
	}

	if cfg.Entry == "" {
		cfg.Entry = DefaultEntryFile
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutputFile
	}
	if cfg.Indent <= 0 {
		cfg.Indent = DefaultIndent
	}

	return cfg, nil
}

// OutputPath resolves the artifact path against the project root.
func (c Config) OutputPath(projectRoot string) string {
	if filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(projectRoot, c.Output)
}
