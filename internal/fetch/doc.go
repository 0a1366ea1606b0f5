// Package fetch performs outbound HTTP GETs under an explicit retry policy.
//
// A Policy names the attempt budget and the exponential backoff base; the
// Fetcher applies it uniformly to metadata and binary downloads. Call sites
// choose their own policy: catalog searches use NoRetry and surface the first
// failure, cover downloads use ImagePolicy (5 attempts, 500ms doubling). Every
// failed attempt is logged and reported to an optional notifier so operators
// see retries as they happen. Exhausting the budget yields a
// *RetriesExhaustedError carrying the last status code or transport error.
package fetch
