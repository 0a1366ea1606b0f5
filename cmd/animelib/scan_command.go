package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"animelib/internal/config"
	"animelib/internal/folders"
	"animelib/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List local folders that have no metadata yet",
		Long:  "Scan the library directory for folders without a stored record. Run `animelib update` afterwards to fetch them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				entries, err := folders.Scan(afero.NewOsFs(), cfg.Paths.LibraryDir)
				if err != nil {
					return err
				}
				linked, err := store.LinkedNames(cmd.Context())
				if err != nil {
					return err
				}
				missing := folders.Unlinked(entries, linked)
				out := cmd.OutOrStdout()
				if len(missing) == 0 {
					fmt.Fprintf(out, "All %d folders are linked.\n", len(entries))
					return nil
				}
				fmt.Fprintf(out, "%d of %d folders have no metadata:\n", len(missing), len(entries))
				for _, entry := range missing {
					fmt.Fprintf(out, "  %s\n", entry.Name)
				}
				return nil
			})
		},
	}
}
