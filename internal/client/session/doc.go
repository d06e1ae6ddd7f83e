// Package session holds the client's authentication state.
//
// A Store keeps the current Credential (access token, refresh token, expiry)
// and the signed-in user's profile. It is the only piece of state shared by
// concurrent API calls: writes are last-write-wins and every Set or Clear is
// broadcast to subscribers.
//
// Two implementations are provided:
//
//   - MemoryStore: process-local, guarded by a mutex.
//   - PersistentStore: a MemoryStore that restores itself from, and writes
//     itself back to, the local state database. The saved blob can be
//     sealed with a passphrase.
//
// Tokens are opaque to this package. When the access token happens to be a
// JWT, ParseClaims exposes its payload for display; the signature is not
// verified because only the server can judge it.
package session
