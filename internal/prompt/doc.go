// Package prompt asks the operator to pick a catalog candidate when a local
// folder name has no exact match.
//
// Resolve blocks on console input and runs inside a Suspender so any progress
// indicator is cleared for the whole exchange.
package prompt
