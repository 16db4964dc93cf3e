// The [tokenmart] package implements the client-side state synchronization
// core used by TokenMart dashboard clients.
//
// # Stores and coordinators
//
// A [Store] holds the authoritative local copy of one entity list for one
// screen, plus an optional selected record. It never performs I/O.
//
// A [ListFetcher] populates a [Store] from a remote list endpoint, dropping
// stale completions so only the newest request can replace the store's
// contents. A [Mutator] executes create/update/delete/transition calls and
// reconciles their outcome into the store: a returned canonical record is
// patched in place, an empty or ambiguous response falls back to a silent
// re-fetch, and a delete removes the record immediately.
//
// # Optimistic concurrency
//
// Every cached entity carries an opaque concurrency token (row version)
// echoed back on each mutating call. The server rejects mutations carrying a
// stale token; on such a conflict the [Mutator] re-fetches so the next retry
// uses the fresh token. See [Record].
//
// # User-facing surfaces
//
// [Gate] is the single-slot confirmation primitive guarding destructive
// actions, and [Center] is a bounded, auto-expiring notification queue. The
// coordinators talk to any [Notifier], so a UI can supply its own.
//
// Typed access to the remote resource API lives in
// [github.com/tokenmart/tokenmart.go/pkg/api], entity definitions in
// [github.com/tokenmart/tokenmart.go/pkg/models], and the per-role dashboard
// controllers that compose all of the above in
// [github.com/tokenmart/tokenmart.go/pkg/dashboard].
package tokenmart
