package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"animelib/internal/runlock"
)

func TestAcquireIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "update.lock")

	first, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := runlock.Acquire(path); !errors.Is(err, runlock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second Release returned error: %v", err)
	}

	again, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release returned error: %v", err)
	}
	_ = again.Release()
}
