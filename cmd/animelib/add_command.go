package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"animelib/internal/config"
	"animelib/internal/library"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var ids []int64
	var names []string

	cmd := &cobra.Command{
		Use:   "add --id <mal_id> [--name <folder>]",
		Short: "Link catalog entries to folders by MyAnimeList id",
		Long: "Fetch each --id from the catalog and store it. The n-th --name is used as the " +
			"folder name of the n-th id; ids without a name are linked under their title.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ids) == 0 {
				return errors.New("at least one --id is required")
			}
			if len(names) > len(ids) {
				return fmt.Errorf("got %d names for %d ids", len(names), len(ids))
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, logCloser, err := ctx.logger(false)
			if err != nil {
				return err
			}
			defer logCloser.Close()
			client, err := newCatalogClient(cfg, logger)
			if err != nil {
				return err
			}

			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				out := cmd.OutOrStdout()
				for i, id := range ids {
					anime, err := client.GetAnime(cmd.Context(), id)
					if err != nil {
						return err
					}
					name := anime.Title
					if i < len(names) && strings.TrimSpace(names[i]) != "" {
						name = strings.TrimSpace(names[i])
					}
					if err := store.Upsert(cmd.Context(), library.RecordFromAnime(name, *anime)); err != nil {
						return err
					}
					fmt.Fprintf(out, "Saved %s (%d).\n", name, anime.MalID)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64SliceVarP(&ids, "id", "i", nil, "MyAnimeList id (repeatable)")
	cmd.Flags().StringArrayVarP(&names, "name", "n", nil, "Folder name for the matching --id (repeatable)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
