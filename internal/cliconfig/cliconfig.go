// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cliconfig holds the configuration and logging setup shared by the
// gazette binaries.
package cliconfig

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GAZETTE_CSV or
// GAZETTE_SAMPLE_ROWS.
const EnvPrefix = "GAZETTE"

// Init points viper at cfgFile, or at gazette.yaml in the working directory
// or ~/.config/gazette when cfgFile is empty, and enables environment
// overrides. It returns the config file in use, or "" when none was read.
func Init(cfgFile string) string {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gazette")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gazette"))
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return ""
	}
	return viper.ConfigFileUsed()
}

// NewLogger builds a text logger writing to w. Unknown levels fall back to
// info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
