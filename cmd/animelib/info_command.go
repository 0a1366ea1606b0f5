package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"animelib/internal/config"
	"animelib/internal/library"
	"animelib/internal/textutil"
)

const (
	infoSeparator   = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	backgroundWidth = 50
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "info <mal_id>",
		Short: "Show the stored record for a MyAnimeList id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			malID, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || malID <= 0 {
				return fmt.Errorf("invalid mal id %q", args[0])
			}
			return ctx.withStore(func(_ *config.Config, store *library.Store) error {
				rec, err := store.GetByID(cmd.Context(), malID)
				if err != nil {
					return err
				}
				if rec == nil {
					return fmt.Errorf("no local anime with mal id %d", malID)
				}
				printInfo(cmd.OutOrStdout(), *rec, details)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "Include background, season and broadcast")
	return cmd
}

func printInfo(out io.Writer, rec library.Record, details bool) {
	rank := 0
	if rec.Rank != nil {
		rank = *rec.Rank
	}
	score := 0.0
	if rec.Score != nil {
		score = *rec.Score
	}

	fmt.Fprintln(out, infoSeparator)
	fmt.Fprintf(out, "  Name:          %s (%s)\n", rec.Title, rec.Type)
	fmt.Fprintf(out, "  English Name:  %s\n", rec.TitleEnglish)
	fmt.Fprintf(out, "  Japanese Name: %s\n", rec.TitleJapanese)
	fmt.Fprintf(out, "  Folder:        %s\n", rec.LocalName)
	fmt.Fprintln(out, infoSeparator)
	fmt.Fprintf(out, "  MALID:         %d\n", rec.MalID)
	fmt.Fprintf(out, "  Aired:         From %s to %s\n", airedDate(rec.AiredFrom), airedDate(rec.AiredTo))
	fmt.Fprintf(out, "  Episodes:      %d (%s)\n", rec.Episodes, rec.Status)
	fmt.Fprintf(out, "  Rating:        %s\n", rec.Rating)
	fmt.Fprintf(out, "  Score:         %.2f (#%d)\n", score, rank)
	fmt.Fprintf(out, "  Studio:        %s\n", rec.Studio)

	if details {
		fmt.Fprintln(out, infoSeparator)
		fmt.Fprintf(out, "  Popularity:    %s\n", intOrDash(rec.Popularity))
		for i, line := range textutil.Chunk(rec.Background, backgroundWidth) {
			label := textutil.Ternary(i == 0, "Background:", "")
			fmt.Fprintf(out, "  %-15s%s\n", label, line)
		}
		fmt.Fprintf(out, "  Season:        %s %s\n", orDash(rec.Season), intOrDash(rec.Year))
		fmt.Fprintf(out, "  Broadcast:     %s at %s\n", orDash(rec.BroadcastDay), orDash(rec.BroadcastTime))
	}

	fmt.Fprintln(out, infoSeparator)
}
