// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the one-ballot API server.

One-ballot is a proposal voting service: any identity can create a
multi-choice proposal, every other identity can cast exactly one vote
during the proposal's time window, and the creator can reclaim the
proposal's storage 30 days after voting ends. Uniqueness - one proposal
per title, one vote per voter per proposal - is enforced purely by
deterministic address derivation plus an atomic allocate-if-absent store
primitive, with no locks above the storage layer.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	IDENTITY_SALT=secret go run main.go

Or with flags:

	go run main.go -p 3319 -s badger -d ./data --identity-salt secret

# Configuration

Required settings:

  - IDENTITY_SALT (--identity-salt): Secret for identity token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - STORE_BACKEND (-s): memory, badger, sqlite or postgres (default: badger)
  - DATA_DIR (-d): Badger data directory (default: ./data)
  - DATABASE_URL (-u): Connection string for sqlite/postgres backends

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: the proposal/vote state machine (the core)
  - addr: deterministic address derivation (Keccak-256)
  - store: allocate-if-absent record substrate (memory, badger, SQL)
  - clock: injectable trusted time source
  - auth: identity token issuance and verification
  - handlers: HTTP request handlers (identities, proposals, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - metrics: Prometheus counters and scrape endpoint
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
