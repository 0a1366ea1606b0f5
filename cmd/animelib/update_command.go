package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"animelib/internal/config"
	"animelib/internal/fetch"
	"animelib/internal/library"
	"animelib/internal/logging"
	"animelib/internal/progress"
	"animelib/internal/prompt"
	"animelib/internal/reconcile"
	"animelib/internal/runlock"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var opts reconcile.Options

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Link new folders to catalog entries and download their covers",
		Long: "Scan the library directory, match every unlinked folder against the catalog " +
			"and store the result. Folders whose name does not match the top search hit " +
			"exactly are offered to you for a manual pick.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lock, err := runlock.Acquire(cfg.LockPath())
			if err != nil {
				return err
			}
			defer lock.Release()

			logger, logCloser, err := ctx.logger(opts.Verbose)
			if err != nil {
				return err
			}
			defer logCloser.Close()
			client, err := newCatalogClient(cfg, logger)
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				out := cmd.OutOrStdout()
				errOut := cmd.ErrOrStderr()
				spinner := progress.New(out)

				images := fetch.New(
					fetch.Policy{MaxAttempts: cfg.Images.MaxAttempts, BaseDelay: cfg.ImageBaseDelay()},
					fetch.WithLogger(logging.NewComponentLogger(logger, "images")),
					fetch.WithNotifier(func(message string) { fmt.Fprintln(errOut, message) }),
				)

				engine, err := reconcile.New(reconcile.Dependencies{
					Catalog:        client,
					Store:          store,
					Disambiguator:  prompt.New(cmd.InOrStdin(), out, prompt.WithSuspender(spinner)),
					Images:         images,
					Fs:             afero.NewOsFs(),
					LibraryDir:     cfg.Paths.LibraryDir,
					ImagesDir:      cfg.Paths.ImagesDir,
					ImageExtension: cfg.Images.Extension,
					Reporter:       spinner,
					Stdout:         out,
					Stderr:         errOut,
					Logger:         logging.NewComponentLogger(logger, "reconcile"),
				}, opts)
				if err != nil {
					return err
				}
				_, err = engine.Run(cmd.Context())
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Full, "full", "f", false, "Refetch the whole library, including linked folders")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print every match, save and download")
	return cmd
}
