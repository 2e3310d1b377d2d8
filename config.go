package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tilegrid/internal/grid"
	"tilegrid/internal/storage"
)

const configFileName = ".tilegridrc.yaml"

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// CanvasConfig sets how many layout units one terminal cell covers.
type CanvasConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

type ExportConfig struct {
	Directory string `yaml:"directory"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

func defaultConfig(homeDir string) *Config {
	cfg := &Config{
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
			Key:     grid.DefaultKey,
		},
		Canvas: CanvasConfig{
			CellWidth:  defaultCellWidth,
			CellHeight: defaultCellHeight,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
	if homeDir != "" {
		cfg.Log.Path = filepath.Join(homeDir, ".tilegrid", "tilegrid.log")
	}
	return cfg
}

// loadConfig reads ~/.tilegridrc.yaml. A missing file is not an error; a
// broken one returns the defaults together with the error.
func loadConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cfg := defaultConfig("")
		cfg.normalize("")
		return cfg, nil
	}
	return loadConfigFile(filepath.Join(homeDir, configFileName), homeDir)
}

func loadConfigFile(path, homeDir string) (*Config, error) {
	cfg := defaultConfig(homeDir)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.normalize(homeDir)
		return cfg, nil
	}
	if err != nil {
		cfg.normalize(homeDir)
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = defaultConfig(homeDir)
		cfg.normalize(homeDir)
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	cfg.normalize(homeDir)
	return cfg, nil
}

func (c *Config) normalize(homeDir string) {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = storage.BackendSQLite
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultStoragePath(c.Storage.Backend, homeDir)
	}
	if c.Storage.Backend != storage.BackendMemory {
		c.Storage.Path = expandPath(c.Storage.Path, homeDir)
	}
	if c.Storage.Key == "" {
		c.Storage.Key = grid.DefaultKey
	}
	if c.Canvas.CellWidth <= 0 {
		c.Canvas.CellWidth = defaultCellWidth
	}
	if c.Canvas.CellHeight <= 0 {
		c.Canvas.CellHeight = defaultCellHeight
	}
	c.Export.Directory = expandPath(c.Export.Directory, homeDir)
	c.Log.Path = expandPath(c.Log.Path, homeDir)
}

// defaultStoragePath picks a database file for sqlite and a directory for
// the file backend.
func defaultStoragePath(backend, homeDir string) string {
	name := "grid.db"
	if backend == storage.BackendFile {
		name = "layouts"
	}
	if homeDir == "" {
		return "tilegrid-" + name
	}
	return filepath.Join(homeDir, ".tilegrid", name)
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// ExportPath places filename in the export directory, creating it.
func (c *Config) ExportPath(filename string) (string, error) {
	if c.Export.Directory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.Export.Directory, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(c.Export.Directory, filename), nil
}
