package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile_Missing(t *testing.T) {
	home := t.TempDir()
	cfg, err := loadConfigFile(filepath.Join(home, configFileName), home)
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(home, ".tilegrid", "grid.db"), cfg.Storage.Path)
	require.Equal(t, "grid", cfg.Storage.Key)
	require.Equal(t, 10.0, cfg.Canvas.CellWidth)
	require.Equal(t, 20.0, cfg.Canvas.CellHeight)
	require.Equal(t, "", cfg.Export.Directory)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, ".tilegrid", "tilegrid.log"), cfg.Log.Path)
}

func TestLoadConfigFile_Overrides(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: FILE
  path: ~/layouts
  key: layout
canvas:
  cell_width: 8
  cell_height: 0
export:
  directory: ~/exports
log:
  level: debug
  path: ""
`), 0644))

	cfg, err := loadConfigFile(path, home)
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(home, "layouts"), cfg.Storage.Path)
	require.Equal(t, "layout", cfg.Storage.Key)
	require.Equal(t, 8.0, cfg.Canvas.CellWidth)
	require.Equal(t, 20.0, cfg.Canvas.CellHeight)
	require.Equal(t, filepath.Join(home, "exports"), cfg.Export.Directory)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "", cfg.Log.Path)
}

func TestLoadConfigFile_Broken(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, configFileName)
	require.NoError(t, os.WriteFile(path, []byte("canvas: [not, a, map"), 0644))

	cfg, err := loadConfigFile(path, home)
	require.ErrorContains(t, err, "parse config file")
	require.Equal(t, 10.0, cfg.Canvas.CellWidth)
	require.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestLoadConfigFile_RelativePaths(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, configFileName)
	require.NoError(t, os.WriteFile(path, []byte("export:\n  directory: out\n"), 0644))

	cfg, err := loadConfigFile(path, home)
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(cfg.Export.Directory))
	require.Equal(t, "out", filepath.Base(cfg.Export.Directory))
}

func TestExportPath(t *testing.T) {
	cfg := defaultConfig("")
	got, err := cfg.ExportPath("a.png")
	require.NoError(t, err)
	require.Equal(t, "a.png", got)

	cfg.Export.Directory = filepath.Join(t.TempDir(), "nested")
	got, err = cfg.ExportPath("a.png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cfg.Export.Directory, "a.png"), got)
	info, err := os.Stat(cfg.Export.Directory)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	require.Equal(t, zerolog.InfoLevel, parseLogLevel(""))
	require.Equal(t, zerolog.InfoLevel, parseLogLevel("loud"))
}

func TestNewLogger(t *testing.T) {
	logger, closer, err := newLogger(LogConfig{Level: "info"})
	require.NoError(t, err)
	require.Nil(t, closer)
	logger.Info().Msg("dropped")

	path := filepath.Join(t.TempDir(), "logs", "tilegrid.log")
	logger, closer, err = newLogger(LogConfig{Level: "info", Path: path})
	require.NoError(t, err)
	logger.Debug().Msg("below level")
	logger.Info().Str("key", "grid").Msg("layout loaded")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"layout loaded"`)
	require.NotContains(t, string(data), "below level")
}

func TestExportPath_CreateFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cfg := defaultConfig("")
	cfg.Export.Directory = filepath.Join(blocker, "exports")
	_, err := cfg.ExportPath("a.png")
	require.ErrorContains(t, err, "create export directory")
}

func TestLoadConfigFile_FileBackendDefaultPath(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, configFileName)
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: file\n"), 0644))

	cfg, err := loadConfigFile(path, home)
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, filepath.Join(home, ".tilegrid", "layouts"), cfg.Storage.Path)
}
