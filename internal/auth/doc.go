// Package auth implements the dual-role authentication core.
//
// # Tokens
//
// Two HS256-signed JWT kinds with independent secrets: a minutes-scale access
// token presented on every request, and a days-scale refresh token exchanged
// for a new pair when the access token expires. Both carry the principal id
// (sub) and role claims; the role is embedded at issuance from the partition
// that authenticated the credentials and is trusted at verification time to
// select the lookup partition. A token minted for one role can never resolve
// an id from the other partition.
//
// # Refresh rotation
//
// Each principal holds at most one registered refresh token. Issue overwrites
// it, so a login or refresh invalidates every previously issued refresh token
// for that principal. Refresh requires the presented token to byte-equal the
// stored value; a stale token fails with ErrTokenReuse. Logout unsets the
// stored value entirely.
//
// # Request flow
//
// Middleware extracts the access token (cookie first, then bearer header),
// verifies it, resolves the principal through the projected store read, and
// attaches an AuthContext for downstream handlers.
package auth
