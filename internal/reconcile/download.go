package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"animelib/internal/fileutil"
	"animelib/internal/logging"
)

// ImagePath returns where the cover for linkKey is written.
func (e *Engine) ImagePath(linkKey string) string {
	return filepath.Join(e.imagesDir, linkKey+"."+e.imageExt)
}

func (e *Engine) downloadAll(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	fmt.Fprintln(e.stdout, "Downloading Images...")
	for _, match := range summary.Matches {
		if err := ctx.Err(); err != nil {
			return err
		}
		size, err := e.download(ctx, match)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			summary.DownloadFailed++
			fmt.Fprintf(e.stderr, "Failed to download image for %s: %v\n", match.LinkKey, err)
			logger.Warn("image download failed",
				logging.String(logging.FieldLinkKey, match.LinkKey),
				logging.Int64(logging.FieldMalID, match.Anime.MalID),
				logging.String(logging.FieldURL, match.Anime.CoverURL()),
				logging.Error(err),
			)
			continue
		}
		summary.Downloaded++
		summary.DownloadBytes += int64(size)
		if e.opts.Verbose {
			fmt.Fprintf(e.stdout, "Downloaded %s (%s).\n", match.Anime.CoverURL(), humanize.Bytes(uint64(size)))
		}
		logger.Debug("image saved",
			logging.String(logging.FieldLinkKey, match.LinkKey),
			logging.String("path", e.ImagePath(match.LinkKey)),
			logging.Int("bytes", size),
		)
	}
	return nil
}

// download fetches the cover of match and writes it atomically, so a failed
// fetch never leaves a file behind.
func (e *Engine) download(ctx context.Context, match Match) (int, error) {
	url := match.Anime.CoverURL()
	if url == "" {
		return 0, fmt.Errorf("no cover image url for mal id %d", match.Anime.MalID)
	}
	data, err := e.images.Fetch(ctx, url)
	if err != nil {
		return 0, err
	}
	if err := fileutil.WriteFileAtomic(e.fs, e.ImagePath(match.LinkKey), data, 0o644); err != nil {
		return 0, err
	}
	return len(data), nil
}
