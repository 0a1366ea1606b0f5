// Package library persists matched anime records in the local SQLite
// database.
//
// Open applies the embedded golang-migrate migrations before handing out a
// sqlx-backed Store. Every record is keyed by its MyAnimeList id and linked
// to a local folder through its localName column. Writes are single-statement
// upserts, so a record is either fully stored or untouched, and a row is
// never deleted by reconciliation.
package library
