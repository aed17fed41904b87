package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-paperwork/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // PAPERWORK_CONFIG: config file path
	CatalogDir string        // PAPERWORK_CATALOG_DIR: template catalog directory
	Timeout    time.Duration // PAPERWORK_TIMEOUT: PDF render timeout
	OutputDir  string        // PAPERWORK_OUTPUT_DIR: default output directory
	PageSize   string        // PAPERWORK_PAGE_SIZE: letter, a4, legal
	BatchSize  int           // PAPERWORK_BATCH_SIZE: documents per PDF
	Workers    int           // PAPERWORK_WORKERS: parallel workers
}

// knownEnvVars lists valid PAPERWORK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PAPERWORK_CONFIG":      true,
	"PAPERWORK_CATALOG_DIR": true,
	"PAPERWORK_TIMEOUT":     true,
	"PAPERWORK_OUTPUT_DIR":  true,
	"PAPERWORK_PAGE_SIZE":   true,
	"PAPERWORK_BATCH_SIZE":  true,
	"PAPERWORK_WORKERS":     true,
	"PAPERWORK_CONTAINER":   true, // Read by doctor for container detection
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized PAPERWORK_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PAPERWORK_CONFIG"),
		CatalogDir: os.Getenv("PAPERWORK_CATALOG_DIR"),
		OutputDir:  os.Getenv("PAPERWORK_OUTPUT_DIR"),
		PageSize:   os.Getenv("PAPERWORK_PAGE_SIZE"),
	}

	if timeout := os.Getenv("PAPERWORK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if size := os.Getenv("PAPERWORK_BATCH_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}

	if workers := os.Getenv("PAPERWORK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PAPERWORK_* variables.
// Helps catch typos like PAPERWORK_CATALOG instead of PAPERWORK_CATALOG_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "PAPERWORK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment variable values onto config.
// Env values replace config-file values; CLI flags are merged afterwards
// and win over both. Full precedence: flags > run file > env > config file.
// (Timeout is resolved separately; see resolveTimeout.)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.CatalogDir != "" {
		cfg.Catalog.Dir = env.CatalogDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.BatchSize > 0 {
		cfg.Batch.Size = env.BatchSize
	}
}
