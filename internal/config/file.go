package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultFileName is looked up in the working directory when no config
// file is given.
const DefaultFileName = "renamer"

// LoadFile merges a YAML, JSON or TOML config file into cfg. With an empty
// path, "renamer.{yaml,json,toml}" in the working directory is used if it
// exists. Keys absent from the file leave cfg unchanged.
func LoadFile(path string, cfg *Config) error {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultFileName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "read config file")
	}
	if err := v.Unmarshal(cfg); err != nil {
		return errors.Wrapf(err, "parse config file %s", v.ConfigFileUsed())
	}
	return nil
}
