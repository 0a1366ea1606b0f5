// Package catalog queries the Jikan v4 REST API, the public MyAnimeList
// mirror used to resolve local folder names into anime records.
//
// Requests go through a single-attempt fetch.Fetcher and a client-side rate
// limiter. Search failures of any kind surface as *SearchError so callers can
// skip the entry and move on.
package catalog
