package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
)

// DefaultFileName is the config file looked up when no --config flag is given.
const DefaultFileName = "clipsmith.toml"

// Load builds the effective configuration: defaults, then the TOML file at
// path (or the default locations when path is empty), then environment
// variables. Flag binding happens in the CLI layer on top of the result.
func Load(ctx context.Context, path string) (Config, error) {
	cfg := DefaultConfig()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if resolved != "" {
		if err := loadFile(&cfg, resolved); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}
	return cfg, nil
}

// resolvePath returns the config file to read, or "" when none applies.
// An explicit path must exist; the default locations are optional.
func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}
	for _, candidate := range defaultPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// defaultPaths lists the config file locations tried in order: working
// directory first, then the user config directory.
func defaultPaths() []string {
	paths := []string{DefaultFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "clipsmith", DefaultFileName))
	}
	return paths
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config read: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config parse %s: %w", path, err)
	}
	return nil
}
