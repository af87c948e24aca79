// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package config loads CLI defaults from a config file, environment
// variables and flags, in that order of increasing precedence.
package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the defaults loaded for a CLI invocation. The pack
// subcommand falls back to DefaultWidth and DefaultHeight when --width
// or --height is zero; the alignment, threshold and log-level fields
// are loaded but no subcommand applies them.
type Config struct {
	DefaultWidth       int32
	DefaultHeight      int32
	AlignmentX         int32
	AlignmentY         int32
	SmallSizeThreshold int32
	LargeSizeThreshold int32
	LogLevel           string
}

func defaults() Config {
	return Config{
		DefaultWidth:       1024,
		DefaultHeight:      1024,
		AlignmentX:         1,
		AlignmentY:         1,
		SmallSizeThreshold: 32,
		LargeSizeThreshold: 256,
		LogLevel:           "info",
	}
}

// Load reads configuration from (in order) built-in defaults, a config
// file named "atlaspack" discovered on the given search paths, the
// ATLASPACK_ environment prefix, and finally flags, which take the
// highest precedence. flags may be nil to load config without a bound
// flag set.
func Load(searchPaths []string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	def := defaults()
	v.SetDefault("width", def.DefaultWidth)
	v.SetDefault("height", def.DefaultHeight)
	v.SetDefault("alignment_x", def.AlignmentX)
	v.SetDefault("alignment_y", def.AlignmentY)
	v.SetDefault("small_size_threshold", def.SmallSizeThreshold)
	v.SetDefault("large_size_threshold", def.LargeSizeThreshold)
	v.SetDefault("log_level", def.LogLevel)

	v.SetConfigName("atlaspack")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("ATLASPACK")
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	return Config{
		DefaultWidth:       int32(v.GetInt("width")),
		DefaultHeight:      int32(v.GetInt("height")),
		AlignmentX:         int32(v.GetInt("alignment_x")),
		AlignmentY:         int32(v.GetInt("alignment_y")),
		SmallSizeThreshold: int32(v.GetInt("small_size_threshold")),
		LargeSizeThreshold: int32(v.GetInt("large_size_threshold")),
		LogLevel:           v.GetString("log_level"),
	}, nil
}

// Watch calls onChange every time the config file at path is modified
// on disk, until the returned stop function is called. The serve
// subcommand uses it to log each change to its --watch-config file;
// the changed values are not reloaded.
func Watch(path string, onChange func()) (stop func() error, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					onChange()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return w.Close, nil
}
