// Package config loads, normalizes, and validates animelib configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ANIMELIB_LIBRARY_DIR. The Config type centralizes every knob the CLI and the
// reconciliation engine need, so the library, image, and data directories and
// the catalog endpoint are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
