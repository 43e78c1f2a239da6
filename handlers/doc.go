// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handlers

  - IdentityHandler: POST /identities (issue identity tokens)
  - ProposalHandler: create, list, get, delete proposals
  - VoteHandler: cast votes, look up the caller's own vote

Handlers authenticate the caller from the X-Identity-Token header, call
the voting engine, and translate engine errors to HTTP statuses:

  - input validation (choice count, dates, lengths)        → 400
  - unknown proposal or vote record                        → 404
  - non-creator deletion                                   → 403
  - duplicate title/vote, window and lifecycle violations  → 409
  - missing or invalid identity token                      → 401

Handlers own all logging and metrics; the engine stays silent and only
returns errors.
*/
package handlers
