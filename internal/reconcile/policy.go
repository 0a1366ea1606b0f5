package reconcile

import "animelib/internal/folders"

// target is a folder that yields a catalog query this run.
type target struct {
	entry folders.Entry
	token string
}

// chooseTargetToken returns the catalog query for entry. Linked folders are
// skipped unless full is set, in which case their stored title is searched
// again.
func chooseTargetToken(entry folders.Entry, storedTitle string, linked, full bool) (string, bool) {
	switch {
	case linked && !full:
		return "", false
	case linked && storedTitle != "":
		return storedTitle, true
	default:
		return entry.Name, true
	}
}

// chooseLinkKey returns the local name stored with a match. Full runs search
// by stored title, so the folder name must be carried over explicitly.
func chooseLinkKey(entry folders.Entry, token string, full bool) string {
	if full {
		return entry.Name
	}
	return token
}
