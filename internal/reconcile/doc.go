// Package reconcile links the folders of a local anime library to catalog
// records.
//
// A run scans the library directory, turns each folder into a search token,
// accepts the top catalog hit when its title equals the token after
// normalization and otherwise asks the operator to choose among the top
// candidates. Every accepted match is upserted before the next folder is
// looked at; cover images are downloaded once all folders are resolved.
// Entries are processed strictly one at a time with a fixed pause after
// each of them.
package reconcile
