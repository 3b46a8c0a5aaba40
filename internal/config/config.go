// Package config resolves the notebook settings from, in increasing order of
// precedence: built-in defaults, a YAML config file, a .env file, and the
// process environment. CLI flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/thoughts/pkg/core"
)

// Environment variable names.
const (
	EnvDir             = "THOUGHTS_DIR"
	EnvAdapter         = "THOUGHTS_ADAPTER"
	EnvFormat          = "THOUGHTS_FORMAT"
	EnvDefaultCategory = "THOUGHTS_DEFAULT_CATEGORY"
	EnvReadOnly        = "THOUGHTS_READ_ONLY"
)

// Adapter names.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// Config holds the notebook settings.
type Config struct {
	Dir             string `yaml:"dir"`
	Adapter         string `yaml:"adapter"`
	Format          string `yaml:"format"`
	DefaultCategory string `yaml:"default_category"`
	ReadOnly        bool   `yaml:"read_only"`
}

// Sources tells Load where to look. Empty fields use the defaults.
type Sources struct {
	// File is an explicit config file; it must exist when set.
	File string
	// EnvFile is the dotenv file; a missing file is ignored.
	EnvFile string
	// Lookup reads the environment. Defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dir:             DefaultDir(),
		Adapter:         AdapterFS,
		Format:          "json",
		DefaultCategory: string(core.DefaultCategory),
	}
}

// DefaultDir is $XDG_DATA_HOME/thoughts, falling back to ~/.local/share/thoughts.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "thoughts")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "thoughts")
	}
	return ".thoughts"
}

// DefaultFile is $XDG_CONFIG_HOME/thoughts/config.yaml (or the OS equivalent).
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "thoughts", "config.yaml")
}

// Load resolves the configuration from src.
func Load(src Sources) (Config, error) {
	cfg := Default()

	file := src.File
	explicit := file != ""
	if !explicit {
		file = DefaultFile()
	}
	if file != "" {
		if err := mergeFile(&cfg, file); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}

	lookup, err := envLookup(src)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// envLookup layers the process environment over the dotenv file.
func envLookup(src Sources) (func(string) (string, bool), error) {
	lookup := src.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := src.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		dotenv = nil
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDir); ok && v != "" {
		cfg.Dir = v
	}
	if v, ok := lookup(EnvAdapter); ok && v != "" {
		cfg.Adapter = v
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		cfg.Format = v
	}
	if v, ok := lookup(EnvDefaultCategory); ok && v != "" {
		cfg.DefaultCategory = v
	}
	if v, ok := lookup(EnvReadOnly); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvReadOnly, v, err)
		}
		cfg.ReadOnly = b
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Dir) == "" {
		problems = append(problems, "dir must not be empty")
	}
	switch c.Adapter {
	case AdapterFS, AdapterSQLite:
	default:
		problems = append(problems, fmt.Sprintf("adapter %q is not one of fs, sqlite", c.Adapter))
	}
	switch strings.ToLower(c.Format) {
	case "json", "yaml", "yml":
	default:
		problems = append(problems, fmt.Sprintf("format %q is not one of json, yaml", c.Format))
	}
	if _, err := core.ParseCategory(c.DefaultCategory); err != nil {
		problems = append(problems, fmt.Sprintf("default_category: %v", err))
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// Category returns the parsed default category.
func (c Config) Category() core.Category {
	cat, err := core.ParseCategory(c.DefaultCategory)
	if err != nil {
		return core.DefaultCategory
	}
	return cat
}
