// Package progress draws the activity spinner shown while a reconciliation
// run talks to the catalog.
//
// The spinner only animates when its writer is a terminal. Interactive
// prompts run inside Suspend so the spinner line never interleaves with
// operator input.
package progress
