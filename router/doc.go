// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ method routing.

# Routes

Identity:

	POST /identities                     Issue an identity token

Proposals:

	POST   /proposals                    Create (caller becomes creator)
	GET    /proposals                    List summaries
	GET    /proposals/{address}          Proposal with current tallies
	DELETE /proposals/{address}          Delete after the grace period

Voting:

	POST /proposals/{address}/votes      Cast the caller's single vote
	GET  /proposals/{address}/votes/me   The caller's vote record

Operational:

	GET /health                          Liveness check
	GET /metrics                         Prometheus scrape endpoint

All state-changing routes require an X-Identity-Token header issued by
POST /identities. Handlers are wrapped with request logging middleware.
*/
package router
