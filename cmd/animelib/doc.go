// Package main hosts the animelib CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, opens the library
// store on demand and hands the real work to the internal packages: update
// runs a reconciliation pass, while list, scan, search, info, export and add
// are thin read or write helpers around the store and the catalog client.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
