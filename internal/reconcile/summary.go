package reconcile

import (
	"fmt"

	"animelib/internal/catalog"
)

// Match pairs the local link key with the accepted catalog record.
type Match struct {
	LinkKey string
	Anime   catalog.Anime
	// Fast is true when the top search hit was accepted without a prompt.
	Fast bool
}

// Summary counts what a run did.
type Summary struct {
	RunID string
	// Entries is the number of folders found on disk.
	Entries int
	// Targets is the number of folders that produced a catalog query.
	Targets   int
	Matched   int
	Unmatched int
	Failed    int
	// Delays counts the pauses taken between entries.
	Delays         int
	Downloaded     int
	DownloadFailed int
	DownloadBytes  int64
	Matches        []Match
}

// Processed is the number of targets that reached an outcome.
func (s Summary) Processed() int {
	return s.Matched + s.Unmatched + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("Reconciled %d of %d entries (%d matched, %d unmatched, %d failed); downloaded %d images, %d failed.",
		s.Processed(), s.Entries, s.Matched, s.Unmatched, s.Failed, s.Downloaded, s.DownloadFailed)
}
