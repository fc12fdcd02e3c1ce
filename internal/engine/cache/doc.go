// Package cache persists the last successful catalog fetch as a single JSON
// snapshot and decides whether that snapshot is still fresh.
//
// The snapshot lives in one file (by default ~/.pybites-search-cache.json) and
// is replaced wholesale on every refresh. Key properties:
//   - Staleness is evaluated lazily on every Load against a caller-supplied TTL;
//     the TTL is not stored, so the same file can be judged by different TTLs
//   - A snapshot of age exactly TTL seconds is still fresh
//   - Writes go to a temp file that is renamed over the target, so readers never
//     observe a partially written snapshot
//   - Any unreadable, undecodable or expired snapshot is reported as a miss
//
// There is no locking. Two invocations racing on a miss will both fetch and
// both save; the last writer wins.
package cache
