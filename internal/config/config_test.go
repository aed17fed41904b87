package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Catalog.Dir != "" {
		t.Errorf("Catalog.Dir = %q, want empty", cfg.Catalog.Dir)
	}
	if cfg.Batch.Size != 0 {
		t.Errorf("Batch.Size = %d, want 0", cfg.Batch.Size)
	}
	if cfg.Render.TimeoutSeconds != 0 {
		t.Errorf("Render.TimeoutSeconds = %d, want 0", cfg.Render.TimeoutSeconds)
	}
	if cfg.Render.NoBackground {
		t.Error("Render.NoBackground = true, want false")
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value under limit is valid",
			fieldName: "test",
			value:     "12345",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("zero config passes validation", func(t *testing.T) {
		cfg := &Config{}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("output.defaultDir too long returns error", func(t *testing.T) {
		cfg := &Config{
			Output: OutputConfig{DefaultDir: string(make([]byte, MaxDirLength+1))},
		}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("page.size too long returns error", func(t *testing.T) {
		cfg := &Config{
			Page: PageConfig{Size: string(make([]byte, MaxPageSizeLength+1))},
		}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("page.orientation too long returns error", func(t *testing.T) {
		cfg := &Config{
			Page: PageConfig{Orientation: string(make([]byte, MaxOrientationLength+1))},
		}
		err := cfg.Validate()
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("negative batch.size returns error", func(t *testing.T) {
		cfg := &Config{Batch: BatchConfig{Size: -1}}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for negative batch size")
		}
		if !strings.Contains(err.Error(), "batch.size") {
			t.Errorf("error should mention batch.size, got: %v", err)
		}
	})

	t.Run("batch.size above maximum returns error", func(t *testing.T) {
		cfg := &Config{Batch: BatchConfig{Size: MaxBatchSize + 1}}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for oversized batch")
		}
	})

	t.Run("batch.size at maximum passes", func(t *testing.T) {
		cfg := &Config{Batch: BatchConfig{Size: MaxBatchSize}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("negative render.timeoutSeconds returns error", func(t *testing.T) {
		cfg := &Config{Render: RenderConfig{TimeoutSeconds: -5}}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for negative timeout")
		}
		if !strings.Contains(err.Error(), "render.timeoutSeconds") {
			t.Errorf("error should mention render.timeoutSeconds, got: %v", err)
		}
	})

	t.Run("render.timeoutSeconds above maximum returns error", func(t *testing.T) {
		cfg := &Config{Render: RenderConfig{TimeoutSeconds: MaxTimeoutSeconds + 1}}
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for oversized timeout")
		}
	})
}

func TestConfig_Validate_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("empty dir is valid", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Catalog: CatalogConfig{Dir: ""}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("valid directory is valid", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		cfg := &Config{Catalog: CatalogConfig{Dir: tmpDir}}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("nonexistent dir returns error", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Catalog: CatalogConfig{Dir: "/nonexistent/path/xyz123"}}
		err := cfg.Validate()
		if err == nil {
			t.Error("expected error for nonexistent path")
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("error should mention 'does not exist', got: %v", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "notadir.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cfg := &Config{Catalog: CatalogConfig{Dir: filePath}}
		err := cfg.Validate()
		if err == nil {
			t.Error("expected error for file path")
		}
		if !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("error should mention 'not a directory', got: %v", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `output:
  defaultDir: "/var/paperwork/out"
batch:
  size: 150
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.DefaultDir != "/var/paperwork/out" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "/var/paperwork/out")
		}
		if cfg.Batch.Size != 150 {
			t.Errorf("Batch.Size = %d, want 150", cfg.Batch.Size)
		}
	})

	t.Run("loads page settings", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `page:
  size: "a4"
  orientation: "landscape"
  margin: 1.0
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Page.Size != "a4" {
			t.Errorf("Page.Size = %q, want %q", cfg.Page.Size, "a4")
		}
		if cfg.Page.Orientation != "landscape" {
			t.Errorf("Page.Orientation = %q, want %q", cfg.Page.Orientation, "landscape")
		}
		if cfg.Page.Margin != 1.0 {
			t.Errorf("Page.Margin = %v, want %v", cfg.Page.Margin, 1.0)
		}
	})

	t.Run("loads render settings", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `render:
  timeoutSeconds: 120
  noBackground: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Render.TimeoutSeconds != 120 {
			t.Errorf("Render.TimeoutSeconds = %d, want 120", cfg.Render.TimeoutSeconds)
		}
		if !cfg.Render.NoBackground {
			t.Error("Render.NoBackground = false, want true")
		}
	})

	t.Run("loads catalog dir", func(t *testing.T) {
		dir := t.TempDir()
		catalogDir := filepath.Join(dir, "templates")
		if err := os.Mkdir(catalogDir, 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		configPath := filepath.Join(dir, "test.yaml")
		content := "catalog:\n  dir: \"" + catalogDir + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Catalog.Dir != catalogDir {
			t.Errorf("Catalog.Dir = %q, want %q", cfg.Catalog.Dir, catalogDir)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("batch: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		content := `batch:
  size: 10
unknownField: "should fail"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("field too long returns ErrFieldTooLong", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "toolong.yaml")
		longDir := strings.Repeat("x", MaxDirLength+1)
		content := "output:\n  defaultDir: \"" + longDir + "\"\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrFieldTooLong) {
			t.Errorf("error = %v, want ErrFieldTooLong", err)
		}
	})

	t.Run("invalid batch size returns validation error", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "badbatch.yaml")
		content := "batch:\n  size: -3\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for negative batch size")
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unreadable.yaml")
		if err := os.WriteFile(configPath, []byte("batch:\n  size: 1\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "myconfig.yaml")
		if err := os.WriteFile(configPath, []byte("batch:\n  size: 42\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Batch.Size != 42 {
			t.Errorf("Batch.Size = %d, want 42", cfg.Batch.Size)
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "myconfig.yml")
		if err := os.WriteFile(configPath, []byte("batch:\n  size: 7\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Batch.Size != 7 {
			t.Errorf("Batch.Size = %d, want 7", cfg.Batch.Size)
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yaml"), []byte("batch:\n  size: 1\n"), 0600); err != nil {
			t.Fatalf("setup yaml: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("batch:\n  size: 2\n"), 0600); err != nil {
			t.Fatalf("setup yml: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Batch.Size != 1 {
			t.Errorf("Batch.Size = %d, want 1 (should prefer .yaml)", cfg.Batch.Size)
		}
	})

	t.Run("config name resolves from user config directory", func(t *testing.T) {
		userConfigDir, err := os.UserConfigDir()
		if err != nil {
			t.Skip("cannot get user config dir")
		}

		cfgDir := filepath.Join(userConfigDir, appConfigDir)
		configPath := filepath.Join(cfgDir, "testconfig.yaml")

		if err := os.MkdirAll(cfgDir, 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(configPath, []byte("batch:\n  size: 99\n"), 0600); err != nil {
			t.Fatalf("setup write: %v", err)
		}
		defer os.Remove(configPath)

		// Change to empty dir so local file isn't found
		dir := t.TempDir()
		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("testconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Batch.Size != 99 {
			t.Errorf("Batch.Size = %d, want 99", cfg.Batch.Size)
		}
	})

	t.Run("config name not found returns ErrConfigNotFound", func(t *testing.T) {
		dir := t.TempDir()
		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		_, err = LoadConfig("nonexistent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("myconfig")

	if len(paths) < 2 {
		t.Fatalf("SearchPaths returned %d paths, want at least 2", len(paths))
	}
	if paths[0] != "myconfig.yaml" {
		t.Errorf("paths[0] = %q, want %q", paths[0], "myconfig.yaml")
	}
	if paths[1] != "myconfig.yml" {
		t.Errorf("paths[1] = %q, want %q", paths[1], "myconfig.yml")
	}

	// Remaining paths point into the user config dir, when resolvable
	for _, p := range paths[2:] {
		if !strings.Contains(p, appConfigDir) {
			t.Errorf("user config path %q does not contain %q", p, appConfigDir)
		}
	}
}
