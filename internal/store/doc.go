// Package store provides persistent storage for campus-gateway using SQLite.
//
// # Architecture
//
// Principals live in two partitions, the users and admins tables. Each
// partition enforces its own email uniqueness; the same address may hold an
// account in both. Every Store method that touches a single principal takes
// the Role naming the partition, and never consults the other one on a miss.
//
// Reads come in two projections: GetPrincipal and ListUsers exclude the
// password hash and refresh token so handler responses cannot leak them;
// GetPrincipalByEmail returns the full row for credential verification.
//
// The refresh-token column is the session state: a single outstanding token
// per principal, overwritten on every login and refresh, set to NULL on
// logout. NULL and empty string are distinct on purpose — an unset token
// matches nothing.
//
// SQLiteStore implements Store for production; MockStore is the in-memory
// equivalent for tests.
package store
