package reconcile

import (
	"errors"
	"fmt"
)

// ErrEmptyResult marks a search that succeeded with no candidates.
var ErrEmptyResult = errors.New("search returned no results")

// ScanError reports an unreadable library directory. Nothing is processed.
type ScanError struct {
	Dir string
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Dir, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed store read or write. It aborts the run;
// rows written before it remain.
type PersistenceError struct {
	Op      string
	LinkKey string
	MalID   int64
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.MalID != 0 {
		return fmt.Sprintf("%s %q (mal id %d): %v", e.Op, e.LinkKey, e.MalID, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.LinkKey, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
