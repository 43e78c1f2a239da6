// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateProposalRequest: title, description, choices, date_start, date_end
  - CastVoteRequest: choice

# Response Types

Types for JSON responses:

  - IssueIdentityResponse: identity, token
  - CreateProposalResponse: address
  - CastVoteResponse: vote_address, message
  - DeleteProposalResponse: refund_to, refund_bytes, message
  - ProposalSummary / ProposalDetail: read-side projections
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Identity: opaque, externally-verified caller principal
  - Proposal: titled ballot with 2-5 choices and a fixed voting window
  - Choice: named option with a running vote count
  - VoteRecord: immutable proof that an identity voted on a proposal
  - Refund: storage credited back on proposal deletion

# Constants

Validation limits:

	MaxStringBytes = 64
	MinChoices     = 2
	MaxChoices     = 5

Status values (always computed from time, never stored):

	StatusPending = "pending"
	StatusOpen    = "open"
	StatusClosed  = "closed"
*/
package models
