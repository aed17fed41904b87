package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-paperwork/internal/fileutil"
	"github.com/alnah/go-paperwork/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// appConfigDir is the subdirectory under the user config dir.
const appConfigDir = "paperwork"

// Field length and value limits for multi-tenant safety.
const (
	MaxDirLength         = 4096 // Filesystem path
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxBatchSize         = 2000 // One browser render per batch; larger runs must split
	MaxTimeoutSeconds    = 3600 // Ceiling for a single print run
)

// Config holds all configuration for document generation.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Catalog CatalogConfig `yaml:"catalog"`
	Page    PageConfig    `yaml:"page"`
	Batch   BatchConfig   `yaml:"batch"`
	Render  RenderConfig  `yaml:"render"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = current directory)
}

// CatalogConfig defines template catalog options.
type CatalogConfig struct {
	Dir string `yaml:"dir"` // Template catalog directory (empty = built-in templates)
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// BatchConfig defines batch partitioning options.
type BatchConfig struct {
	Size int `yaml:"size"` // Documents per batch (0 = default)
}

// RenderConfig defines browser rendering options.
type RenderConfig struct {
	TimeoutSeconds int  `yaml:"timeoutSeconds"` // Per-render timeout (0 = default)
	NoBackground   bool `yaml:"noBackground"`   // Disable printing of CSS backgrounds
}

// Validate checks field lengths and value ranges to prevent abuse in
// multi-tenant scenarios. Called automatically by LoadConfig, but available
// for consumers who construct Config manually (e.g., API adapters).
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}

	// Validate catalog fields
	if err := validateFieldLength("catalog.dir", c.Catalog.Dir, MaxDirLength); err != nil {
		return err
	}
	if c.Catalog.Dir != "" {
		info, err := os.Stat(c.Catalog.Dir)
		if err != nil {
			return fmt.Errorf("catalog.dir: path does not exist: %s", c.Catalog.Dir)
		}
		if !info.IsDir() {
			return fmt.Errorf("catalog.dir: not a directory: %s", c.Catalog.Dir)
		}
	}

	// Validate page fields
	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}

	// Validate batch fields
	if c.Batch.Size < 0 || c.Batch.Size > MaxBatchSize {
		return fmt.Errorf("batch.size: must be between 0 and %d, got %d", MaxBatchSize, c.Batch.Size)
	}

	// Validate render fields
	if c.Render.TimeoutSeconds < 0 || c.Render.TimeoutSeconds > MaxTimeoutSeconds {
		return fmt.Errorf("render.timeoutSeconds: must be between 0 and %d, got %d", MaxTimeoutSeconds, c.Render.TimeoutSeconds)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Zero values defer to the
// service and CLI defaults (default batch size, default timeout, letter page).
func DefaultConfig() *Config {
	return &Config{
		Output:  OutputConfig{DefaultDir: ""},
		Catalog: CatalogConfig{Dir: ""},
		Page:    PageConfig{},
		Batch:   BatchConfig{Size: 0},
		Render:  RenderConfig{TimeoutSeconds: 0},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the candidate paths LoadConfig would try for a config
// name, in search order. Used for error hints when nothing is found.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appConfigDir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/paperwork/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
