package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the renderer cannot recover from.
func (c *Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", r.Width, r.Height)
	}
	if r.TileK <= 0 || r.TileK&(r.TileK-1) != 0 {
		return fmt.Errorf("render.tile_k %d must be a power of two", r.TileK)
	}
	if r.Near <= 0 {
		return fmt.Errorf("render.near %v must be positive", r.Near)
	}
	if r.Threads < 0 {
		return fmt.Errorf("render.threads %d must not be negative", r.Threads)
	}
	return nil
}

// ThreadCount resolves the configured worker count.
func (r RenderConfig) ThreadCount() int {
	if r.Threads > 0 {
		return r.Threads
	}
	return runtime.NumCPU()
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "tilerast")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tilerast")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tilerast")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tilerast")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
