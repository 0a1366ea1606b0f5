package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"animelib/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ANIMELIB_LIBRARY_DIR", "")
	t.Setenv("ANIMELIB_CATALOG_URL", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "animelib", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "Anime") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	wantData := filepath.Join(tempHome, ".local", "share", "animelib")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "animelib.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Catalog.BaseURL != config.Default().Catalog.BaseURL {
		t.Fatalf("unexpected catalog base url: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Images.MaxAttempts != 5 || cfg.Images.BaseDelayMS != 500 {
		t.Fatalf("unexpected image retry defaults: %+v", cfg.Images)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ImagesDir, cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.LibraryDir); !os.IsNotExist(err) {
		t.Fatalf("library dir should not be created, stat err = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("ANIMELIB_LIBRARY_DIR", "")
	t.Setenv("ANIMELIB_CATALOG_URL", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "animelib.toml")

	type payload struct {
		Paths struct {
			LibraryDir string `toml:"library_dir"`
			ImagesDir  string `toml:"images_dir"`
		} `toml:"paths"`
		Catalog struct {
			BaseURL string `toml:"base_url"`
		} `toml:"catalog"`
		Images struct {
			Extension string `toml:"extension"`
		} `toml:"images"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.LibraryDir = filepath.Join(tempDir, "anime")
	custom.Paths.ImagesDir = filepath.Join(tempDir, "covers")
	custom.Catalog.BaseURL = "https://example.com/v4/"
	custom.Images.Extension = ".JPG"
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Catalog.BaseURL != "https://example.com/v4" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Catalog.BaseURL)
	}
	if cfg.Images.Extension != "jpg" {
		t.Fatalf("expected normalized extension, got %q", cfg.Images.Extension)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if got := cfg.ImagePath("Naruto"); got != filepath.Join(tempDir, "covers", "Naruto.jpg") {
		t.Fatalf("unexpected image path %q", got)
	}
}

func TestLoadKeepsExplicitZeroImageDelay(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANIMELIB_LIBRARY_DIR", "")
	t.Setenv("ANIMELIB_CATALOG_URL", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "animelib.toml")
	content := fmt.Sprintf("[paths]\nlibrary_dir = %q\n\n[images]\nmax_attempts = 10\nbase_delay_ms = 0\n",
		filepath.Join(tempDir, "anime"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Images.BaseDelayMS != 0 || cfg.ImageBaseDelay() != 0 {
		t.Fatalf("expected retries without pause, got %d ms", cfg.Images.BaseDelayMS)
	}
	if cfg.Images.MaxAttempts != 10 {
		t.Fatalf("expected 10 attempts, got %d", cfg.Images.MaxAttempts)
	}
}

func TestLoadRejectsExcessiveImageAttempts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANIMELIB_LIBRARY_DIR", "")
	t.Setenv("ANIMELIB_CATALOG_URL", "")
	configPath := filepath.Join(t.TempDir(), "animelib.toml")
	if err := os.WriteFile(configPath, []byte("[images]\nmax_attempts = 41\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "images.max_attempts") {
		t.Fatalf("expected max_attempts error, got %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	library := t.TempDir()
	t.Setenv("ANIMELIB_LIBRARY_DIR", library)
	t.Setenv("ANIMELIB_CATALOG_URL", "http://127.0.0.1:9999/v4")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.LibraryDir != library {
		t.Fatalf("expected library dir from env, got %q", cfg.Paths.LibraryDir)
	}
	if cfg.Catalog.BaseURL != "http://127.0.0.1:9999/v4" {
		t.Fatalf("expected catalog url from env, got %q", cfg.Catalog.BaseURL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"relative catalog url", func(c *config.Config) { c.Catalog.BaseURL = "api.jikan.moe" }, "catalog.base_url"},
		{"zero timeout", func(c *config.Config) { c.Catalog.TimeoutSeconds = 0 }, "catalog.timeout_seconds"},
		{"too fast", func(c *config.Config) { c.Catalog.RequestsPerSecond = 10 }, "catalog.requests_per_second"},
		{"extension with slash", func(c *config.Config) { c.Images.Extension = "a/b" }, "images.extension"},
		{"no attempts", func(c *config.Config) { c.Images.MaxAttempts = 0 }, "images.max_attempts"},
		{"too many attempts", func(c *config.Config) { c.Images.MaxAttempts = 11 }, "images.max_attempts"},
		{"negative delay", func(c *config.Config) { c.Images.BaseDelayMS = -1 }, "images.base_delay_ms"},
		{"missing library", func(c *config.Config) { c.Paths.LibraryDir = "" }, "paths.library_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANIMELIB_LIBRARY_DIR", "")
	t.Setenv("ANIMELIB_CATALOG_URL", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Images.Extension != "webp" {
		t.Fatalf("unexpected sample extension %q", cfg.Images.Extension)
	}
}
