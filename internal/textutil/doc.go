// Package textutil provides the text helpers shared by the catalog matcher and
// the CLI renderers.
//
// The primary use cases are:
//   - Normalizing folder names and catalog titles for case-insensitive equality
//   - Wrapping long catalog text (backgrounds, synopses) for console display
//
// Normalization applies Unicode NFKC composition followed by full case folding,
// so "NARUTO", "Naruto" and "ｎａｒｕｔｏ" all compare equal.
package textutil
