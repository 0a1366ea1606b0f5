package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"animelib/internal/catalog"
	"animelib/internal/config"
	"animelib/internal/library"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the catalog, or the local library with --local",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")
			out := cmd.OutOrStdout()
			if local {
				return ctx.withStore(func(_ *config.Config, store *library.Store) error {
					records, err := store.SearchTitle(cmd.Context(), keyword)
					if err != nil {
						return err
					}
					if len(records) == 0 {
						fmt.Fprintf(out, "No local anime matches %q.\n", keyword)
						return nil
					}
					fmt.Fprintln(out, renderLocalResults(records))
					return nil
				})
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
			results, err := client.Search(cmd.Context(), keyword, catalog.CandidateLimit)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintf(out, "No catalog results for %q.\n", keyword)
				return nil
			}
			fmt.Fprintln(out, renderCatalogResults(results))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&local, "local", "l", false, "Search the local database only")
	return cmd
}

func renderLocalResults(records []library.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatInt(rec.MalID, 10),
			rec.Title,
			rec.LocalName,
			strconv.Itoa(rec.Episodes),
			scoreOrDash(rec.Score),
		})
	}
	return renderTable(
		[]string{"MAL ID", "Title", "Folder", "Episodes", "Score"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
	)
}

func renderCatalogResults(results []catalog.Anime) string {
	rows := make([][]string, 0, len(results))
	for i, anime := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(anime.MalID, 10),
			anime.Title,
			orDash(anime.Type),
			intOrDash(anime.Episodes),
			scoreOrDash(anime.Score),
			intOrDash(anime.Year),
		})
	}
	return renderTable(
		[]string{"#", "MAL ID", "Title", "Type", "Episodes", "Score", "Year"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}
