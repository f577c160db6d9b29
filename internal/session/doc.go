// Package session stores authenticated browser sessions in SQLite.
//
// A session maps an opaque cookie ID to the backend bearer token plus a
// cached copy of the identity the backend resolved at login (user_id,
// username, is_admin). The token is the only credential; the cached
// fields exist so every page render doesn't cost a userinfo round-trip.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// The schema is created automatically on first open.
//
// # Expiry
//
// Get never returns an expired session. RunCleaner sweeps expired rows
// on a ticker; both rely on the expires_at column, which the web layer
// clamps to the bearer token's own expiry when the token carries one.
//
// All methods accept context.Context for cancellation support.
package session
