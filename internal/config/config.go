package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fenilsonani/autosorter/internal/platform"
	"github.com/fenilsonani/autosorter/internal/security"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
//
// A Config is built once at startup (defaults, then file, then command-line
// overrides) and is read-only from then on.
type Config struct {
	WatchDir        string     `yaml:"watch_dir" toml:"watch_dir"`
	PollInterval    int        `yaml:"poll_interval" toml:"poll_interval"` // in seconds
	DefaultCategory string     `yaml:"default_category" toml:"default_category"`
	HiddenPrefix    string     `yaml:"hidden_prefix" toml:"hidden_prefix"`
	Watch           bool       `yaml:"watch" toml:"watch"`
	Categories      []Category `yaml:"categories" toml:"categories"`
	Log             LogConfig  `yaml:"log" toml:"log"`
	LockFile        string     `yaml:"lock_file" toml:"lock_file"`
}

// Category maps a destination folder name to the extensions it collects.
// Extensions include the leading dot and are compared case-insensitively.
type Category struct {
	Name       string   `yaml:"name" toml:"name"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	File    string `yaml:"file" toml:"file"`
	Level   string `yaml:"level" toml:"level"`
	Console bool   `yaml:"console" toml:"console"`
}

// Interval returns the poll interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

// Load loads configuration from a file. Keys missing from the file keep
// their default values.
func Load(configPath string) (*Config, error) {
	config := GetDefault()

	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A category table in the file replaces the defaults rather than
	// extending them
	defaults := config.Categories
	config.Categories = nil

	if isTOML(configPath) {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if config.Categories == nil {
		config.Categories = defaults
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(configPath) {
		data, err = toml.Marshal(config)
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be > 0 seconds")
	}

	if err := security.ValidateWatchDir(c.WatchDir); err != nil {
		return err
	}

	if err := validateCategoryName(c.DefaultCategory); err != nil {
		return fmt.Errorf("default category: %w", err)
	}

	if c.HiddenPrefix == "" {
		return fmt.Errorf("hidden prefix must not be empty")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}

	names := map[string]bool{c.DefaultCategory: true}
	claimed := make(map[string]string)
	fold := cases.Fold()

	for _, category := range c.Categories {
		if err := validateCategoryName(category.Name); err != nil {
			return fmt.Errorf("category %q: %w", category.Name, err)
		}
		if names[category.Name] {
			return fmt.Errorf("duplicate category: %s", category.Name)
		}
		names[category.Name] = true

		for _, ext := range category.Extensions {
			if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
				return fmt.Errorf("category %s: extension %q must start with '.'", category.Name, ext)
			}
			if strings.ContainsAny(ext, `/\`) {
				return fmt.Errorf("category %s: extension %q contains a path separator", category.Name, ext)
			}

			key := fold.String(ext)
			if owner, ok := claimed[key]; ok {
				return fmt.Errorf("extension %s claimed by both %s and %s", ext, owner, category.Name)
			}
			claimed[key] = category.Name
		}
	}

	return nil
}

// validateCategoryName ensures the name is usable as a single directory name
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name must be a plain directory name")
	}
	return nil
}

// GetConfigDir returns the directory holding the config, lock and log files
func GetConfigDir() (string, error) {
	info, err := platform.GetInfo()
	if err != nil {
		return "", err
	}
	return configDirFor(info), nil
}

func configDirFor(info *platform.Info) string {
	return filepath.Join(info.ConfigDir, "autosorter")
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists writes the default configuration to configPath unless
// a file is already there. It reports whether the file was created.
func EnsureConfigExists(configPath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := Save(GetDefault(), configPath); err != nil {
		return false, err
	}
	return true, nil
}
