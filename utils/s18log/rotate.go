// biasedurn - Fisher's noncentral hypergeometric distribution for Go
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package s18log

import (
	"io"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type RotateFileConfig struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Level      log.Level
	Formatter  log.Formatter
}

// RotateFileHook copies log entries at Config.Level or above to a size
// rotated file. Config.Level may be changed after the hook is added.
type RotateFileHook struct {
	Config    RotateFileConfig
	logWriter io.WriteCloser
}

func NewRotateFileHook(config RotateFileConfig) (*RotateFileHook, error) {
	if config.Formatter == nil {
		config.Formatter = &log.TextFormatter{DisableColors: true, FullTimestamp: true}
	}
	hook := RotateFileHook{
		Config: config,
	}
	hook.logWriter = &lumberjack.Logger{
		Filename:   config.Filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
	}
	return &hook, nil
}

func (hook *RotateFileHook) Levels() []log.Level {
	return log.AllLevels
}

func (hook *RotateFileHook) Fire(entry *log.Entry) error {
	if entry.Level > hook.Config.Level {
		return nil
	}
	b, err := hook.Config.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = hook.logWriter.Write(b)
	return err
}

func (hook *RotateFileHook) Close() error {
	return hook.logWriter.Close()
}
