package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"animelib/internal/config"
	"animelib/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List locally linked anime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "Library is empty; run `animelib update` to link your folders.")
					return nil
				}
				now := time.Now().UTC()
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{
						strconv.FormatInt(rec.MalID, 10),
						rec.LocalName,
						rec.Title,
						orDash(rec.Type),
						strconv.Itoa(rec.Episodes),
						scoreOrDash(rec.Score),
						relativeTime(rec.UpdatedAt, now),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"MAL ID", "Folder", "Title", "Type", "Episodes", "Score", "Updated"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}
