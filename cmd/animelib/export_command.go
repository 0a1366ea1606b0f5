package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"animelib/internal/config"
	"animelib/internal/fileutil"
	"animelib/internal/library"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export all stored metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if records == nil {
					records = []library.Record{}
				}
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return fmt.Errorf("encode export: %w", err)
				}
				data = append(data, '\n')
				if err := fileutil.WriteFileAtomic(afero.NewOsFs(), target, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d anime to %s (%s)\n",
					len(records), target, humanize.Bytes(uint64(len(data))))
				return nil
			})
		},
	}
}
