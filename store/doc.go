// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the record substrate: a keyed store of proposals and
vote records whose creation primitive is atomic allocate-if-absent.

# Allocate-if-absent

CreateProposal and CreateVote write a record at a derived address only if
the address is empty, failing with ErrAddressOccupied otherwise. Combined
with deterministic address derivation (package addr), this one primitive
enforces both global uniqueness rules - one proposal per title, one vote
per (proposal, voter) - with no locks or scans above the Store interface.
Of two concurrent creations racing on the same address, exactly one
succeeds in every backend.

# Backends

  - memory: map guarded by a store-internal mutex; used in tests and as a
    throwaway backend.
  - badger: persistent KV store; get-then-set inside one transaction with
    conflict retry.
  - sqlite / postgres: database/sql with a PRIMARY KEY on the address
    column; constraint violations map to ErrAddressOccupied. The caller
    imports the driver (modernc.org/sqlite or lib/pq).

Open selects a backend by name:

	st, err := store.Open("badger", cfg.DataDir, "")

# Mutation

The only mutation is IncrementChoice: an atomic +1 on exactly one named
choice of one proposal. ErrUnknownChoice distinguishes a bad choice name
from a missing proposal (ErrNotFound).

Vote records are never mutated or deleted. Deleting a proposal does not
touch its vote records.
*/
package store
