// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cliconfig

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"chatty", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := NewLogger(tt.level, &bytes.Buffer{})
			assert.Equal(t, tt.wantDebug, l.Enabled(context.Background(), slog.LevelDebug))
			assert.Equal(t, tt.wantInfo, l.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestNewLogger_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("info", &buf).Info("chunk complete", "pages", 3)
	assert.Contains(t, buf.String(), "msg=\"chunk complete\" pages=3")
}

func TestInit_ConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "gazette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv: out/results.csv\nsample-rows: 25\n"), 0o644))

	used := Init(path)
	assert.Equal(t, path, used)
	assert.Equal(t, "out/results.csv", viper.GetString("csv"))
	assert.Equal(t, 25, viper.GetInt("sample-rows"))
}

func TestInit_EnvironmentOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "gazette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv: out/results.csv\n"), 0o644))
	t.Setenv("GAZETTE_CSV", "env.csv")
	t.Setenv("GAZETTE_SAMPLE_ROWS", "3")

	Init(path)
	assert.Equal(t, "env.csv", viper.GetString("csv"))
	assert.Equal(t, 3, viper.GetInt("sample-rows"))
}

func TestInit_NoConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Equal(t, "", Init(""))
}
