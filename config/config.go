// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	ConstOutputText = "text"
	ConstOutputJSON = "json"
)

type Config struct {
	Accuracy           float64 `mapstructure:"accuracy" toml:"accuracy"`
	Cutoff             float64 `mapstructure:"cutoff" toml:"cutoff"`
	TableLength        int     `mapstructure:"table-length" toml:"table-length"`
	Output             string  `mapstructure:"output" toml:"output"`
	Verbose            bool    `mapstructure:"verbose" toml:"verbose"`
	LogLevel           int     `mapstructure:"log-level" toml:"log-level"`
	LogFile            string  `mapstructure:"log-file" toml:"log-file"`
	LogRotateMaxSize   int     `mapstructure:"log-rotate-max-size" toml:"log-rotate-max-size"`
	LogRotateMaxBackup int     `mapstructure:"log-rotate-max-backup" toml:"log-rotate-max-backup"`
	LogRotateMaxAge    int     `mapstructure:"log-rotate-max-age" toml:"log-rotate-max-age"`
}

// configFile is the on-disk layout, settings live under [default].
type configFile struct {
	Default Config `toml:"default"`
}

// Default returns the settings used when neither a config file nor a flag
// says otherwise.
func Default() Config {
	return Config{
		Accuracy:           1e-8,
		Cutoff:             -1,
		Output:             ConstOutputText,
		LogLevel:           3,
		LogRotateMaxSize:   5,
		LogRotateMaxBackup: 7,
		LogRotateMaxAge:    7,
	}
}

// Load merges, from lowest to highest precedence, Default, the [default]
// section of the config file read by v, environment variables and changed
// flags bound to v.
func Load(v *viper.Viper) (Config, error) {
	conf := Default()
	if sub := v.Sub("default"); sub != nil {
		for k, val := range sub.AllSettings() {
			v.SetDefault(k, val)
		}
	}
	if err := v.Unmarshal(&conf); err != nil {
		return conf, errors.Trace(err)
	}
	return conf, errors.Trace(conf.Validate())
}

func (conf *Config) Validate() error {
	if conf.Accuracy < 0 || conf.Accuracy > 1 {
		return errors.Errorf("accuracy %v outside [0,1]", conf.Accuracy)
	}
	if conf.TableLength < 0 {
		return errors.Errorf("table-length %d negative", conf.TableLength)
	}
	switch conf.Output {
	case ConstOutputText, ConstOutputJSON:
	default:
		return errors.Errorf("unknown output format %q", conf.Output)
	}
	return nil
}

// IsJSON reports whether results are printed as JSON.
func (conf *Config) IsJSON() bool {
	return conf.Output == ConstOutputJSON
}

// ToLogrusLevel maps the 0..4 verbosity scale onto logrus levels:
// 0 errors only, 1 warnings, 2 and 3 info, above 3 debug.
func ToLogrusLevel(l int) log.Level {
	switch {
	case l <= 0:
		return log.ErrorLevel
	case l == 1:
		return log.WarnLevel
	case l <= 3:
		return log.InfoLevel
	}
	return log.DebugLevel
}

// LogrusLevel is the effective level, verbose forces debug.
func (conf *Config) LogrusLevel() log.Level {
	if conf.Verbose {
		return log.DebugLevel
	}
	return ToLogrusLevel(conf.LogLevel)
}

// WriteFile saves conf as TOML under a [default] section.
func (conf *Config) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	return errors.Trace(conf.Encode(file))
}

// Encode writes conf as TOML under a [default] section.
func (conf *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(configFile{Default: *conf})
}
