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
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[default]
accuracy = 1e-10
output = "json"
table-length = 64
`

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(sample)))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64("accuracy", 1e-8, "")
	fs.String("output", "text", "")
	fs.Int("log-level", 3, "")
	require.NoError(t, fs.Parse([]string{"--log-level=4"}))
	require.NoError(t, v.BindPFlags(fs))

	conf, err := Load(v)
	assert.NoError(err)
	assert.Equal(1e-10, conf.Accuracy)
	assert.Equal("json", conf.Output)
	assert.True(conf.IsJSON())
	assert.Equal(64, conf.TableLength)
	assert.Equal(4, conf.LogLevel)
	assert.Equal(-1., conf.Cutoff)
	assert.Equal(7, conf.LogRotateMaxAge)

	// a changed flag wins over the file
	require.NoError(t, fs.Parse([]string{"--accuracy=1e-6"}))
	conf, err = Load(v)
	assert.NoError(err)
	assert.Equal(1e-6, conf.Accuracy)
}

func TestLoadInvalid(t *testing.T) {
	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader("[default]\noutput = \"yaml\"\n")))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	var tests = []struct {
		mutate func(*Config)
		valid  bool
	}{
		{func(c *Config) {}, true},
		{func(c *Config) { c.Output = ConstOutputJSON }, true},
		{func(c *Config) { c.Accuracy = 2 }, false},
		{func(c *Config) { c.Accuracy = -1e-3 }, false},
		{func(c *Config) { c.TableLength = -5 }, false},
		{func(c *Config) { c.Output = "xml" }, false},
	}
	for i, tt := range tests {
		conf := Default()
		tt.mutate(&conf)
		err := conf.Validate()
		assert.Equal(tt.valid, err == nil, "case %d: %v", i, err)
	}
}

func TestValidateErrorLocation(t *testing.T) {
	conf := Default()
	conf.Output = "xml"
	err := conf.Validate()
	require.Error(t, err)
	_, traced := err.(*errors.Err)
	assert.True(t, traced, "%T", err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestToLogrusLevel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(log.ErrorLevel, ToLogrusLevel(0))
	assert.Equal(log.WarnLevel, ToLogrusLevel(1))
	assert.Equal(log.InfoLevel, ToLogrusLevel(2))
	assert.Equal(log.InfoLevel, ToLogrusLevel(3))
	assert.Equal(log.DebugLevel, ToLogrusLevel(4))

	conf := Default()
	assert.Equal(log.InfoLevel, conf.LogrusLevel())
	conf.Verbose = true
	assert.Equal(log.DebugLevel, conf.LogrusLevel())
}

func TestWriteFile(t *testing.T) {
	assert := assert.New(t)

	conf := Default()
	conf.Accuracy = 1e-12
	var buf bytes.Buffer
	assert.NoError(conf.Encode(&buf))
	assert.Contains(buf.String(), "[default]")
	assert.Contains(buf.String(), "table-length")

	filename := filepath.Join(t.TempDir(), "config.toml")
	assert.NoError(conf.WriteFile(filename))

	v := viper.New()
	v.SetConfigFile(filename)
	require.NoError(t, v.ReadInConfig())
	loaded, err := Load(v)
	assert.NoError(err)
	assert.Equal(conf, loaded)
}
