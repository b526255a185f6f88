// Package config loads budgetcsv.yaml and applies BUDGETCSV_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the workspace root.
const FileName = "budgetcsv.yaml"

// EnvPrefix prefixes every environment override, e.g. BUDGETCSV_IMPORT_STRICT.
const EnvPrefix = "BUDGETCSV"

// Config represents the top-level budgetcsv.yaml configuration.
type Config struct {
	Import  ImportConfig  `yaml:"import" envconfig:"import"`
	Logging LoggingConfig `yaml:"logging" envconfig:"logging"`
	Ledger  LedgerConfig  `yaml:"ledger" envconfig:"ledger"`
	Git     GitConfig     `yaml:"git" envconfig:"git"`
}

// ImportConfig holds pipeline defaults used when no flag is given.
type ImportConfig struct {
	Encoding     string `yaml:"encoding" envconfig:"encoding"`
	Strict       bool   `yaml:"strict" envconfig:"strict"`
	Format       string `yaml:"format" envconfig:"format"`
	PreviewLimit int    `yaml:"preview_limit" envconfig:"preview_limit"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"level"`
	Format string `yaml:"format" envconfig:"format"` // "console" or "json"
}

// LedgerConfig controls persistence of accepted drafts.
type LedgerConfig struct {
	AutoRecord bool `yaml:"auto_record" envconfig:"auto_record"`
}

// GitConfig controls committing ledger changes when the workspace is a git repository.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit" envconfig:"auto_commit"`
	AuthorName  string `yaml:"author_name" envconfig:"author_name"`
	AuthorEmail string `yaml:"author_email" envconfig:"author_email"`
}

// Load reads a budgetcsv.yaml file from disk. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Encoding:     "utf-8",
			Format:       "csv",
			PreviewLimit: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Ledger: LedgerConfig{
			AutoRecord: true,
		},
		Git: GitConfig{
			AuthorName:  "budgetcsv",
			AuthorEmail: "import@budgetcsv.local",
		},
	}
}

// ApplyEnv overlays BUDGETCSV_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Resolve loads path if it exists (defaults otherwise) and applies the environment.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
