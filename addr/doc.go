// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package addr derives deterministic storage addresses from namespace tags
and seed bytes.

# Derivation

Derive is a pure function: identical inputs always produce the same
address, and distinct inputs collide only with Keccak-256 collision
probability.

	proposalAddr := addr.Derive("proposal", []byte(title))
	voteAddr := addr.Derive("vote", proposalAddr.Bytes(), []byte(voter))

Deterministic addressing is what makes the store's allocate-if-absent
primitive enforce uniqueness: a duplicate title or a second vote by the
same identity derives the same address as the first, and the allocation
fails because the slot is already occupied. No lock or scan is needed.

# Framing

The namespace and every seed are length-prefixed before hashing, so
shifting bytes between adjacent seeds changes the digest.

# Encoding

Addresses render as 64 lowercase hex characters. Parse is the inverse of
String, and Address implements encoding.TextMarshaler/TextUnmarshaler so
it round-trips through JSON.
*/
package addr
