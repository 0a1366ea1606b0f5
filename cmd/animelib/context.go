package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"animelib/internal/catalog"
	"animelib/internal/config"
	"animelib/internal/library"
	"animelib/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// withStore opens the library store for the duration of fn.
func (c *commandContext) withStore(fn func(*config.Config, *library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := library.OpenConfig(cfg)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

// logger builds the command's file logger. Callers close the returned
// closer when the command finishes.
func (c *commandContext) logger(verbose bool) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("init logging: %w", err)
	}
	return logger, closer, nil
}

func newCatalogClient(cfg *config.Config, logger *slog.Logger) (*catalog.Client, error) {
	return catalog.New(cfg.Catalog.BaseURL,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.CatalogTimeout()}),
		catalog.WithRateLimit(cfg.Catalog.RequestsPerSecond),
		catalog.WithLogger(logging.NewComponentLogger(logger, "catalog")),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
