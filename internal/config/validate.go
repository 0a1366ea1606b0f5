package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.library_dir is required. Set %s or edit %s (create with 'animelib config init')", libraryDirEnv, defaultPath)
	}
	if strings.TrimSpace(c.Paths.ImagesDir) == "" {
		return errors.New("paths.images_dir must be set")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	parsed, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("catalog.base_url must be an absolute URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		return errors.New("catalog.timeout_seconds must be positive")
	}
	if c.Catalog.RequestsPerSecond <= 0 || c.Catalog.RequestsPerSecond > maxCatalogRequestsPerSec {
		return fmt.Errorf("catalog.requests_per_second must be between 0 and %d", maxCatalogRequestsPerSec)
	}
	return nil
}

func (c *Config) validateImages() error {
	if strings.ContainsAny(c.Images.Extension, `/\`) {
		return errors.New("images.extension must not contain path separators")
	}
	if c.Images.MaxAttempts <= 0 || c.Images.MaxAttempts > maxImageAttempts {
		return fmt.Errorf("images.max_attempts must be between 1 and %d", maxImageAttempts)
	}
	if c.Images.BaseDelayMS < 0 {
		return errors.New("images.base_delay_ms must be >= 0")
	}
	return nil
}
