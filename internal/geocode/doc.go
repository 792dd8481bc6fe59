// Package geocode resolves free-text addresses into coordinate candidates
// through an ordered chain of external providers.
//
// # Provider chain
//
// Providers are tried strictly in configured priority order:
//
//  1. LocationIQ — credentialed; skipped entirely when no API key is set.
//  2. Nominatim — the default open provider; two attempts with linear backoff.
//  3. maps.co — final fallback; entries without coordinates are dropped.
//
// The first provider returning a non-empty candidate list wins: its results
// are tagged with the provider name, written to the persistent cache, and
// returned. Priority is never re-evaluated from latency or past success. A
// provider call that succeeds with zero hits ends that provider's attempt
// budget and passes control to the next one.
//
// # Politeness
//
// Every outbound call first waits on the shared "geocode" rate-limit
// channel, and every request carries the configured User-Agent, as the
// usage policies of the public services require. A cache hit short-circuits
// the chain entirely, including the rate limiter.
//
// # Failure handling
//
// Individual call failures are classified as network, http, or parse
// errors ([CallError]) and folded into the chain walk; nothing escapes the
// resolver as a panic. When the whole chain fails, Resolve returns an empty
// list plus an error whose text is meant for display, not control flow.
package geocode
