package testsupport

import (
	"context"
	"testing"

	"animelib/internal/catalog"
	"animelib/internal/config"
	"animelib/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.OpenConfig(cfg)
	if err != nil {
		t.Fatalf("library.OpenConfig: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustLink stores anime linked to linkKey.
func MustLink(t testing.TB, store *library.Store, linkKey string, anime catalog.Anime) {
	t.Helper()

	if err := store.Upsert(context.Background(), library.RecordFromAnime(linkKey, anime)); err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
}
