// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity issuance and verification.

The core engine takes identities as trusted arguments; this package is
the transport-edge primitive that produces them.

# Identity Tokens

An identity token is "<identity>.<HMAC-SHA256(identity, salt)>" with the
signature URL-safe base64 encoded without padding:

	id, token, err := auth.IssueIdentity(salt)
	id, err := auth.VerifyIdentityToken(token, salt)

Tokens are deterministic from (identity, salt), so verification needs no
server-side state. Comparison is constant-time via hmac.Equal.

# Identities

Identities are random 16-byte hex strings:

	id, err := auth.GenerateIdentity()  // 32 hex characters

The identity string doubles as the derivation seed for vote-record
addresses, which is what makes "one vote per identity per proposal"
enforceable by address occupancy alone.
*/
package auth
