package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeImages()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(libraryDirEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.LibraryDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.ImagesDir) == "" {
		c.Paths.ImagesDir = defaultImagesDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.LibraryDir, err = expandPath(strings.TrimSpace(c.Paths.LibraryDir)); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.ImagesDir, err = expandPath(strings.TrimSpace(c.Paths.ImagesDir)); err != nil {
		return fmt.Errorf("paths.images_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(strings.TrimSpace(c.Paths.DataDir)); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	if value, ok := os.LookupEnv(catalogURLEnv); ok && strings.TrimSpace(value) != "" {
		c.Catalog.BaseURL = value
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	if c.Catalog.TimeoutSeconds == 0 {
		c.Catalog.TimeoutSeconds = defaultCatalogTimeout
	}
	if c.Catalog.RequestsPerSecond == 0 {
		c.Catalog.RequestsPerSecond = defaultCatalogRate
	}
}

func (c *Config) normalizeImages() {
	ext := strings.ToLower(strings.TrimSpace(c.Images.Extension))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = defaultImageExtension
	}
	c.Images.Extension = ext
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
